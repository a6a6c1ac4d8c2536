// package services defines the source and destination catalog contracts
//
// Spotify (source), YouTube Music (destination)
package services

import (
	"context"

	"github.com/desertthunder/playlift/internal/models"
)

// SourceService is the read side of a transfer: the catalog playlists are
// migrated from.
type SourceService interface {
	// Authenticate constructs a usable handle from the given credentials.
	// Returns an error if the credentials cannot possibly serve reads.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// GetPlaylist retrieves a playlist's metadata by catalog ID.
	GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error)

	// PlaylistTracksPage retrieves one page of a playlist's track listing
	// starting at the given offset. HasNext reports whether another page
	// follows.
	PlaylistTracksPage(ctx context.Context, playlistID string, offset int) (*models.TrackPage, error)

	// Name returns the service name (e.g., "Spotify")
	Name() string
}

// DestinationService is the write side of a transfer: the catalog matched
// tracks are assembled on.
type DestinationService interface {
	// Authenticate constructs a usable handle from the given credentials.
	// Returns an error if the credentials cannot possibly serve writes.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// SearchTracks runs one catalog search restricted to songs and returns
	// up to limit results in the catalog's own relevance order.
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error)

	// CreatePlaylist creates a new playlist and returns it with its
	// assigned catalog ID.
	CreatePlaylist(ctx context.Context, title, description string, public bool) (*models.Playlist, error)

	// AddTracks appends the given catalog track IDs to a playlist in one
	// batch call, preserving order.
	AddTracks(ctx context.Context, playlistID string, trackIDs []string) error

	// Name returns the service name (e.g., "YouTube Music")
	Name() string
}
