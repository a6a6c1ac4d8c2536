package repositories

import (
	"fmt"
	"strings"

	"github.com/desertthunder/playlift/internal/models"
)

// PlaylistCacheAdapter stores playlist snapshots with the same
// duplicate-absorbing behavior as TrackCacheAdapter. Re-caching a known
// playlist refreshes its snapshot instead of inserting.
type PlaylistCacheAdapter struct {
	repo *PlaylistRepository
}

// NewPlaylistCacheAdapter creates a PlaylistCacheAdapter over the given
// repository.
func NewPlaylistCacheAdapter(repo *PlaylistRepository) *PlaylistCacheAdapter {
	return &PlaylistCacheAdapter{repo: repo}
}

// CachePlaylist stores or refreshes a service's playlist snapshot.
func (a *PlaylistCacheAdapter) CachePlaylist(service, serviceID string, playlist models.Playlist) error {
	if existing, err := a.repo.GetByServiceID(service, serviceID); err == nil && existing != nil {
		existing.SetPlaylist(playlist)
		if err := a.repo.Update(existing); err != nil {
			return fmt.Errorf("failed to refresh cached playlist: %w", err)
		}
		return nil
	}

	persisted := models.NewPersistedPlaylist(0, service, serviceID, playlist)
	if err := a.repo.Create(persisted); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache playlist: %w", err)
	}

	return nil
}
