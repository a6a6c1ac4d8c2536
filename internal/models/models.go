// package models defines the data model for the playlist transfer service
package models

import (
	"fmt"
	"strings"
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Playlist represents a music playlist from any service.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TrackCount  int    `json:"track_count"`
	Public      bool   `json:"public"`
}

// Track represents a music track from any service.
//
// Artists holds every credited artist in credited order; most downstream
// consumers only care about the joined line or the primary artist.
type Track struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Artists  []string `json:"artists"`
	Album    string   `json:"album,omitempty"`
	Duration int      `json:"duration,omitempty"` // Duration in milliseconds
	ISRC     string   `json:"isrc,omitempty"`     // International Standard Recording Code for matching
}

// ArtistLine renders the credited artists as a single comma-separated string.
func (t Track) ArtistLine() string {
	return strings.Join(t.Artists, ", ")
}

// PrimaryArtist returns the first credited artist, or "" when uncredited.
func (t Track) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0]
}

// SplitArtistLine parses a comma-separated artist line back into list form.
func SplitArtistLine(line string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	parts := strings.Split(line, ",")
	artists := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			artists = append(artists, p)
		}
	}
	return artists
}

// PlaylistEntry is one slot in a playlist's track listing. A slot whose
// underlying track was removed from the catalog has Present == false and a
// zero Track.
type PlaylistEntry struct {
	Track   Track `json:"track"`
	Present bool  `json:"present"`
}

// TrackPage is one page of a paginated track listing.
type TrackPage struct {
	Items   []PlaylistEntry `json:"items"`
	HasNext bool            `json:"has_next"`
}

// PlaylistExport represents a playlist with its complete, ordered track
// listing, including absent slots.
type PlaylistExport struct {
	Playlist Playlist        `json:"playlist"`
	Entries  []PlaylistEntry `json:"entries"`
}

// PresentTracks returns the track for every present entry, in playlist order.
func (e *PlaylistExport) PresentTracks() []Track {
	tracks := make([]Track, 0, len(e.Entries))
	for _, entry := range e.Entries {
		if entry.Present {
			tracks = append(tracks, entry.Track)
		}
	}
	return tracks
}

// PersistedTrack is a cached track row. Implements [Model].
type PersistedTrack struct {
	id        string
	sequence  int
	service   string
	serviceID string
	track     Track
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPersistedTrack wraps a track DTO in a persistence envelope for the given
// service. The row ID is assigned by the repository on Create.
func NewPersistedTrack(sequence int, service, serviceID string, track Track) *PersistedTrack {
	now := time.Now()
	return &PersistedTrack{
		sequence:  sequence,
		service:   service,
		serviceID: serviceID,
		track:     track,
		createdAt: now,
		updatedAt: now,
	}
}

func (t *PersistedTrack) ID() string            { return t.id }
func (t *PersistedTrack) Sequence() int         { return t.sequence }
func (t *PersistedTrack) Service() string       { return t.service }
func (t *PersistedTrack) ServiceID() string     { return t.serviceID }
func (t *PersistedTrack) Title() string         { return t.track.Title }
func (t *PersistedTrack) Artist() string        { return t.track.ArtistLine() }
func (t *PersistedTrack) Album() string         { return t.track.Album }
func (t *PersistedTrack) Duration() int         { return t.track.Duration }
func (t *PersistedTrack) ISRC() string          { return t.track.ISRC }
func (t *PersistedTrack) Track() Track          { return t.track }
func (t *PersistedTrack) CreatedAt() time.Time  { return t.createdAt }
func (t *PersistedTrack) UpdatedAt() time.Time  { return t.updatedAt }
func (t *PersistedTrack) DeletedAt() *time.Time { return t.deletedAt }

func (t *PersistedTrack) SetID(id string)             { t.id = id }
func (t *PersistedTrack) SetUpdatedAt(ts time.Time)   { t.updatedAt = ts }
func (t *PersistedTrack) SetDeletedAt(ts *time.Time)  { t.deletedAt = ts }
func (t *PersistedTrack) SetCreatedAt(ts time.Time)   { t.createdAt = ts }
func (t *PersistedTrack) SetTrack(track Track)        { t.track = track }

// Validate checks the fields required by the tracks table.
func (t *PersistedTrack) Validate() error {
	if t.service == "" {
		return fmt.Errorf("track service is required")
	}
	if t.serviceID == "" {
		return fmt.Errorf("track service ID is required")
	}
	if t.track.Title == "" {
		return fmt.Errorf("track title is required")
	}
	return nil
}

// PersistedPlaylist is a cached playlist snapshot row. Implements [Model].
type PersistedPlaylist struct {
	id        string
	sequence  int
	service   string
	serviceID string
	playlist  Playlist
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPersistedPlaylist wraps a playlist DTO in a persistence envelope for the
// given service. The row ID is assigned by the repository on Create.
func NewPersistedPlaylist(sequence int, service, serviceID string, playlist Playlist) *PersistedPlaylist {
	now := time.Now()
	return &PersistedPlaylist{
		sequence:  sequence,
		service:   service,
		serviceID: serviceID,
		playlist:  playlist,
		createdAt: now,
		updatedAt: now,
	}
}

func (p *PersistedPlaylist) ID() string            { return p.id }
func (p *PersistedPlaylist) Sequence() int         { return p.sequence }
func (p *PersistedPlaylist) Service() string       { return p.service }
func (p *PersistedPlaylist) ServiceID() string     { return p.serviceID }
func (p *PersistedPlaylist) Name() string          { return p.playlist.Name }
func (p *PersistedPlaylist) Description() string   { return p.playlist.Description }
func (p *PersistedPlaylist) TrackCount() int       { return p.playlist.TrackCount }
func (p *PersistedPlaylist) Public() bool          { return p.playlist.Public }
func (p *PersistedPlaylist) Playlist() Playlist    { return p.playlist }
func (p *PersistedPlaylist) CreatedAt() time.Time  { return p.createdAt }
func (p *PersistedPlaylist) UpdatedAt() time.Time  { return p.updatedAt }
func (p *PersistedPlaylist) DeletedAt() *time.Time { return p.deletedAt }

func (p *PersistedPlaylist) SetID(id string)            { p.id = id }
func (p *PersistedPlaylist) SetUpdatedAt(ts time.Time)  { p.updatedAt = ts }
func (p *PersistedPlaylist) SetDeletedAt(ts *time.Time) { p.deletedAt = ts }
func (p *PersistedPlaylist) SetCreatedAt(ts time.Time)  { p.createdAt = ts }
func (p *PersistedPlaylist) SetPlaylist(pl Playlist)    { p.playlist = pl }

// Validate checks the fields required by the playlists table.
func (p *PersistedPlaylist) Validate() error {
	if p.service == "" {
		return fmt.Errorf("playlist service is required")
	}
	if p.serviceID == "" {
		return fmt.Errorf("playlist service ID is required")
	}
	if p.playlist.Name == "" {
		return fmt.Errorf("playlist name is required")
	}
	return nil
}
