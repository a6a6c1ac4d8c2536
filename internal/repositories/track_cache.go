package repositories

import (
	"fmt"
	"strings"

	"github.com/desertthunder/playlift/internal/models"
)

// TrackCacheAdapter implements tasks.TrackCacher over a TrackRepository.
//
// The transfer engine calls CacheTrack for every match it resolves, so the
// adapter has to absorb repeats: a track already cached for its service is
// a no-op, including when two workers race past the existence check into
// the UNIQUE constraint.
type TrackCacheAdapter struct {
	repo *TrackRepository
}

// NewTrackCacheAdapter creates a TrackCacheAdapter over the given repository.
func NewTrackCacheAdapter(repo *TrackRepository) *TrackCacheAdapter {
	return &TrackCacheAdapter{repo: repo}
}

// CacheTrack stores a service's track, ignoring duplicates.
func (a *TrackCacheAdapter) CacheTrack(service, serviceID string, track models.Track) error {
	if existing, err := a.repo.GetByServiceID(service, serviceID); err == nil && existing != nil {
		return nil
	}

	persisted := models.NewPersistedTrack(0, service, serviceID, track)
	if err := a.repo.Create(persisted); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache track: %w", err)
	}

	return nil
}
