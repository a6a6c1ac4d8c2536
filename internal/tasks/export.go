package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/playlift/internal/models"
	"github.com/desertthunder/playlift/internal/services"
)

// FetchPlaylistExport drains a source playlist: one metadata call, then the
// paginated track listing until the source reports no further pages. The
// offset for each page is the number of entries accumulated so far, so
// absent slots keep their place in the count. Any page failure aborts the
// whole fetch; a partial listing is never returned.
func FetchPlaylistExport(ctx context.Context, src services.SourceService, playlistID string) (*models.PlaylistExport, error) {
	playlist, err := src.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	var entries []models.PlaylistEntry
	for {
		page, err := src.PlaylistTracksPage(ctx, playlistID, len(entries))
		if err != nil {
			return nil, err
		}

		entries = append(entries, page.Items...)

		if !page.HasNext {
			break
		}
		if len(page.Items) == 0 {
			return nil, fmt.Errorf("pagination made no progress at offset %d", len(entries))
		}
	}

	return &models.PlaylistExport{Playlist: *playlist, Entries: entries}, nil
}
