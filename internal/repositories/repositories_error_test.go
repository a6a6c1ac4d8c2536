package repositories

import (
	"errors"
	"testing"

	"github.com/desertthunder/playlift/internal/models"
	"github.com/desertthunder/playlift/internal/shared"
)

func TestTrackRepositoryErrors(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("DuplicateServiceID", func(t *testing.T) {
			db := setupTestDB(t)

			repo := NewTrackRepository(db)
			trackDTO := models.Track{
				ID:      "spotify123",
				Title:   "Test Song",
				Artists: []string{"Test Artist"},
				ISRC:    "USTEST1234567",
			}

			track1 := models.NewPersistedTrack(0, "spotify", "spotify123", trackDTO)
			if err := repo.Create(track1); err != nil {
				t.Fatalf("failed to create first track: %v", err)
			}

			track2 := models.NewPersistedTrack(0, "spotify", "spotify123", trackDTO)
			if err := repo.Create(track2); err == nil {
				t.Fatal("expected error when creating track with duplicate service+service_id")
			}
		})

		t.Run("ValidationError", func(t *testing.T) {
			db := setupTestDB(t)

			repo := NewTrackRepository(db)
			track := models.NewPersistedTrack(0, "spotify", "spotify123", models.Track{ID: "spotify123"})

			if err := repo.Create(track); err == nil {
				t.Fatal("expected validation error for track with empty title")
			}
		})
	})

	t.Run("NotFound errors", func(t *testing.T) {
		t.Run("GetByServiceID", func(t *testing.T) {
			db := setupTestDB(t)

			repo := NewTrackRepository(db)

			_, err := repo.GetByServiceID("spotify", "nonexistent")
			if !errors.Is(err, shared.ErrTrackNotFound) {
				t.Fatalf("expected ErrTrackNotFound, got %v", err)
			}
		})

		t.Run("GetByISRC", func(t *testing.T) {
			db := setupTestDB(t)

			repo := NewTrackRepository(db)

			_, err := repo.GetByISRC("NONEXISTENT")
			if !errors.Is(err, shared.ErrTrackNotFound) {
				t.Fatalf("expected ErrTrackNotFound, got %v", err)
			}
		})

		t.Run("Update", func(t *testing.T) {
			db := setupTestDB(t)

			repo := NewTrackRepository(db)
			track := models.NewPersistedTrack(0, "spotify", "spotify123", models.Track{
				ID:      "spotify123",
				Title:   "Test Song",
				Artists: []string{"Test Artist"},
			})
			track.SetID("nonexistent-id")

			if err := repo.Update(track); err == nil {
				t.Fatal("expected error when updating nonexistent track")
			}
		})

		t.Run("Delete", func(t *testing.T) {
			db := setupTestDB(t)

			repo := NewTrackRepository(db)

			if err := repo.Delete("nonexistent-id"); err == nil {
				t.Fatal("expected error when deleting nonexistent track")
			}
		})
	})

	t.Run("Delete twice", func(t *testing.T) {
		db := setupTestDB(t)

		repo := NewTrackRepository(db)
		track := models.NewPersistedTrack(0, "spotify", "sp1", models.Track{Title: "Song", Artists: []string{"A"}})
		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}

		if err := repo.Delete(track.ID()); err != nil {
			t.Fatalf("failed to delete track: %v", err)
		}
		if err := repo.Delete(track.ID()); err == nil {
			t.Fatal("expected error when deleting already deleted track")
		}
	})

	t.Run("Update after delete", func(t *testing.T) {
		db := setupTestDB(t)

		repo := NewTrackRepository(db)
		track := models.NewPersistedTrack(0, "spotify", "sp1", models.Track{Title: "Song", Artists: []string{"A"}})
		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}

		if err := repo.Delete(track.ID()); err != nil {
			t.Fatalf("failed to delete track: %v", err)
		}
		if err := repo.Update(track); err == nil {
			t.Fatal("expected error when updating deleted track")
		}
	})
}

func TestPlaylistRepositoryErrors(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("DuplicateServiceID", func(t *testing.T) {
			db := setupTestDB(t)

			repo := NewPlaylistRepository(db)
			playlistDTO := models.Playlist{
				ID:         "spotify123",
				Name:       "Test Playlist",
				TrackCount: 10,
			}

			playlist1 := models.NewPersistedPlaylist(0, "spotify", "spotify123", playlistDTO)
			if err := repo.Create(playlist1); err != nil {
				t.Fatalf("failed to create first playlist: %v", err)
			}

			playlist2 := models.NewPersistedPlaylist(0, "spotify", "spotify123", playlistDTO)
			if err := repo.Create(playlist2); err == nil {
				t.Fatal("expected error when creating playlist with duplicate service+service_id")
			}
		})

		t.Run("ValidationError", func(t *testing.T) {
			db := setupTestDB(t)

			repo := NewPlaylistRepository(db)
			playlist := models.NewPersistedPlaylist(0, "spotify", "spotify123", models.Playlist{})

			if err := repo.Create(playlist); err == nil {
				t.Fatal("expected validation error for playlist with empty name")
			}
		})
	})

	t.Run("NotFound errors", func(t *testing.T) {
		t.Run("GetByServiceID", func(t *testing.T) {
			db := setupTestDB(t)

			repo := NewPlaylistRepository(db)

			_, err := repo.GetByServiceID("spotify", "nonexistent")
			if !errors.Is(err, shared.ErrPlaylistNotFound) {
				t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
			}
		})

		t.Run("Update", func(t *testing.T) {
			db := setupTestDB(t)

			repo := NewPlaylistRepository(db)
			playlist := models.NewPersistedPlaylist(0, "spotify", "spotify123", models.Playlist{Name: "Test Playlist"})
			playlist.SetID("nonexistent-id")

			if err := repo.Update(playlist); err == nil {
				t.Fatal("expected error when updating nonexistent playlist")
			}
		})

		t.Run("Delete", func(t *testing.T) {
			db := setupTestDB(t)

			repo := NewPlaylistRepository(db)

			if err := repo.Delete("nonexistent-id"); err == nil {
				t.Fatal("expected error when deleting nonexistent playlist")
			}
		})
	})
}

func TestTrackCacheAdapter_CacheTrack_InvalidTrack(t *testing.T) {
	db := setupTestDB(t)

	repo := NewTrackRepository(db)
	adapter := NewTrackCacheAdapter(repo)

	if err := adapter.CacheTrack("spotify", "spotify123", models.Track{ID: "spotify123"}); err == nil {
		t.Fatal("expected error when caching a track with no title")
	}
}
