package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/playlift/internal/formatter"
	"github.com/desertthunder/playlift/internal/models"
	"github.com/desertthunder/playlift/internal/shared"
	"github.com/desertthunder/playlift/internal/tasks"
	"github.com/urfave/cli/v3"
)

// playlistID resolves the target playlist from the --id or --url flag.
func playlistID(cmd *cli.Command) (string, error) {
	if id := cmd.String("id"); id != "" {
		return id, nil
	}
	if url := cmd.String("url"); url != "" {
		return shared.ExtractPlaylistID(url)
	}
	return "", fmt.Errorf("%w: --url or --id is required", shared.ErrMissingArgument)
}

// SpotifyPlaylist prints metadata for a single playlist.
func (r *Runner) SpotifyPlaylist(ctx context.Context, cmd *cli.Command) error {
	r.prepare(cmd)

	id, err := playlistID(cmd)
	if err != nil {
		return err
	}

	source, creds, err := r.resolveSource(cmd)
	if err != nil {
		return err
	}
	if err := source.Authenticate(ctx, creds); err != nil {
		return err
	}

	playlist, err := source.GetPlaylist(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlist, true)
	}

	if err := r.writePlain("%s", formatter.RenderPlaylistTable([]models.Playlist{*playlist})); err != nil {
		return err
	}
	if playlist.Description != "" {
		return r.writePlain("Description: %s\n", playlist.Description)
	}
	return nil
}

// SpotifyExport drains a playlist's full track listing and writes it in the
// requested format. JSON with no --output prints to stdout; every other
// format writes files named after the playlist ID unless --output says
// otherwise.
func (r *Runner) SpotifyExport(ctx context.Context, cmd *cli.Command) error {
	r.prepare(cmd)

	id, err := playlistID(cmd)
	if err != nil {
		return err
	}

	source, creds, err := r.resolveSource(cmd)
	if err != nil {
		return err
	}
	if err := source.Authenticate(ctx, creds); err != nil {
		return err
	}

	r.logger.Info("exporting playlist", "id", id)

	export, err := tasks.FetchPlaylistExport(ctx, source, id)
	if err != nil {
		return err
	}

	output := cmd.String("output")

	switch format := strings.ToLower(cmd.String("format")); format {
	case "json":
		if output == "" {
			return r.writeJSON(export, true)
		}
		file, err := formatter.WriteJSONExport(export, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Export saved to %s\n", file)
	case "csv":
		result, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Export saved to %s and %s\n", result.TracksFile, result.MetadataFile)
	case "markdown", "md":
		result, err := formatter.WriteMarkdownExport(export, output, cmd.String("cover"))
		if err != nil {
			return err
		}
		return r.writePlain("✓ Export saved to %s/\n", result.Directory)
	case "text", "txt":
		file, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Export saved to %s\n", file)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}
