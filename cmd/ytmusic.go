package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/playlift/internal/formatter"
	"github.com/desertthunder/playlift/internal/services"
	"github.com/desertthunder/playlift/internal/shared"
	"github.com/urfave/cli/v3"
)

// authedDestination resolves the destination service and authenticates it.
func (r *Runner) authedDestination(ctx context.Context, cmd *cli.Command) (services.DestinationService, error) {
	destination, creds := r.resolveDestination(cmd)
	if err := destination.Authenticate(ctx, creds); err != nil {
		return nil, err
	}
	return destination, nil
}

// YTMusicSearch searches YouTube Music for tracks.
func (r *Runner) YTMusicSearch(ctx context.Context, cmd *cli.Command) error {
	r.prepare(cmd)

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	destination, err := r.authedDestination(ctx, cmd)
	if err != nil {
		return err
	}

	r.logger.Info("searching youtube music", "query", query)

	tracks, err := destination.SearchTracks(ctx, query, cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, true)
	}

	if len(tracks) == 0 {
		return r.writePlain("No tracks found for %q\n", query)
	}
	return r.writePlain("%s", formatter.RenderTrackTable(tracks))
}

// YTMusicCreate creates a new playlist on YouTube Music.
func (r *Runner) YTMusicCreate(ctx context.Context, cmd *cli.Command) error {
	r.prepare(cmd)

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}
	public := cmd.Bool("public")

	destination, err := r.authedDestination(ctx, cmd)
	if err != nil {
		return err
	}

	r.logger.Info("creating youtube music playlist", "name", name, "public", public)

	playlist, err := destination.CreatePlaylist(ctx, name, cmd.String("description"), public)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlist, true)
	}

	r.writePlain("✓ Playlist created successfully\n")
	r.writePlain("Name: %s\n", playlist.Name)
	r.writePlain("ID: %s\n", playlist.ID)
	return r.writePlain("Visibility: %s\n", shared.VisibilityString(playlist.Public))
}

// YTMusicHeaders parses a browser cURL command and writes the headers file
// the YouTube Music client authenticates with.
func (r *Runner) YTMusicHeaders(ctx context.Context, cmd *cli.Command) error {
	r.prepare(cmd)

	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")
	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: --curl or --curl-file is required", shared.ErrMissingArgument)
	}
	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	var parsed *shared.CurlHeaders
	var err error
	if curlFile != "" {
		parsed, err = shared.ParseCurlFile(curlFile)
	} else {
		parsed, err = shared.ParseCurlCommand([]byte(curlCmd))
	}
	if err != nil {
		return err
	}

	headers := parsed.ToHeaderMap()
	if err := services.ValidateHeaders(headers); err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		output = r.configuredHeadersPath()
	}
	if output == "" {
		output = "headers.json"
	}

	if err := services.WriteHeadersFile(output, headers); err != nil {
		return err
	}

	r.logger.Info("headers saved", "file", output, "count", len(headers))
	return r.writePlain("✓ Headers written to %s\n", output)
}

// YTMusicHeadersTest validates a headers file against the fields the
// YouTube Music client requires.
func (r *Runner) YTMusicHeadersTest(ctx context.Context, cmd *cli.Command) error {
	r.prepare(cmd)

	path := cmd.String("file")
	if path == "" {
		path = r.configuredHeadersPath()
	}
	if path == "" {
		return fmt.Errorf("%w: no headers file configured", shared.ErrMissingArgument)
	}

	headers, err := services.LoadHeadersFile(path)
	if err != nil {
		return err
	}

	if err := services.ValidateHeaders(headers); err != nil {
		r.writePlain("✗ %s is not usable: %v\n", path, err)
		return err
	}

	return r.writePlain("✓ %s contains valid YouTube Music headers\n", path)
}
