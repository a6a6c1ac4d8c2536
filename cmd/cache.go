package main

import (
	"context"

	"github.com/desertthunder/playlift/internal/formatter"
	"github.com/desertthunder/playlift/internal/models"
	"github.com/desertthunder/playlift/internal/repositories"
	"github.com/desertthunder/playlift/internal/tasks"
	"github.com/urfave/cli/v3"
)

// CachePlaylist snapshots a Spotify playlist and its tracks into the local
// database. Re-running on the same playlist refreshes the stored rows.
func (r *Runner) CachePlaylist(ctx context.Context, cmd *cli.Command) error {
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

	r.logger.Info("snapshotting playlist", "id", id)

	export, err := tasks.FetchPlaylistExport(ctx, source, id)
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	playlistCache := repositories.NewPlaylistCacheAdapter(repositories.NewPlaylistRepository(db))
	if err := playlistCache.CachePlaylist(source.Name(), export.Playlist.ID, export.Playlist); err != nil {
		return err
	}

	trackCache := repositories.NewTrackCacheAdapter(repositories.NewTrackRepository(db))
	cached := 0
	for _, track := range export.PresentTracks() {
		if err := trackCache.CacheTrack(source.Name(), track.ID, track); err != nil {
			r.logger.Warn("failed to cache track", "title", track.Title, "error", err)
			continue
		}
		cached++
	}

	r.logger.Info("snapshot complete", "playlist", export.Playlist.Name, "tracks", cached)
	r.writePlain("✓ Cached playlist %s\n", export.Playlist.Name)
	return r.writePlain("Tracks cached: %d of %d\n", cached, len(export.PresentTracks()))
}

// CachePlaylists lists cached playlists.
func (r *Runner) CachePlaylists(ctx context.Context, cmd *cli.Command) error {
	r.prepare(cmd)

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	persisted, err := repositories.NewPlaylistRepository(db).List(listCriteria(cmd))
	if err != nil {
		return err
	}

	playlists := make([]models.Playlist, 0, len(persisted))
	for _, p := range persisted {
		playlists = append(playlists, p.Playlist())
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}
	if len(playlists) == 0 {
		return r.writePlain("No cached playlists\n")
	}
	return r.writePlain("%s", formatter.RenderPlaylistTable(playlists))
}

// CacheTracks lists cached tracks.
func (r *Runner) CacheTracks(ctx context.Context, cmd *cli.Command) error {
	r.prepare(cmd)

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	persisted, err := repositories.NewTrackRepository(db).List(listCriteria(cmd))
	if err != nil {
		return err
	}

	tracks := make([]models.Track, 0, len(persisted))
	for _, t := range persisted {
		tracks = append(tracks, t.Track())
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, true)
	}
	if len(tracks) == 0 {
		return r.writePlain("No cached tracks\n")
	}
	return r.writePlain("%s", formatter.RenderTrackTable(tracks))
}

func listCriteria(cmd *cli.Command) map[string]any {
	criteria := map[string]any{}
	if service := cmd.String("service"); service != "" {
		criteria["service"] = service
	}
	return criteria
}
