package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/playlift/internal/models"
	"github.com/desertthunder/playlift/internal/shared"
)

// TrackRepository implements models.Repository[*models.PersistedTrack] over
// the tracks table.
//
// Rows are keyed by (service, service_id) so the same catalog track cached
// from Spotify and from YouTube Music stays distinct. The artist column
// stores the joined artist line; [models.SplitArtistLine] restores the list
// on read.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a TrackRepository over the given connection.
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

const trackColumns = "id, sequence, service, service_id, title, artist, album, duration, isrc, created_at, updated_at, deleted_at"

// Create inserts a track row with a generated ID and the next tracks
// sequence number.
func (r *TrackRepository) Create(track *models.PersistedTrack) error {
	sequence, err := NextSequence(r.db, "tracks")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	track.SetID(shared.GenerateID())

	if err := track.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO tracks (id, sequence, service, service_id, title, artist, album, duration, isrc, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		track.ID(),
		sequence,
		track.Service(),
		track.ServiceID(),
		track.Title(),
		track.Artist(),
		track.Album(),
		track.Duration(),
		track.ISRC(),
		track.CreatedAt(),
		track.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert track: %w", err)
	}

	return nil
}

// Get retrieves a track row by ID, excluding soft-deleted rows.
func (r *TrackRepository) Get(id string) (*models.PersistedTrack, error) {
	query := "SELECT " + trackColumns + " FROM tracks WHERE id = ? AND deleted_at IS NULL"
	return scanTrack(r.db.QueryRow(query, id))
}

// GetByServiceID retrieves the cached row for a service's catalog track.
func (r *TrackRepository) GetByServiceID(service, serviceID string) (*models.PersistedTrack, error) {
	query := "SELECT " + trackColumns + " FROM tracks WHERE service = ? AND service_id = ? AND deleted_at IS NULL"
	return scanTrack(r.db.QueryRow(query, service, serviceID))
}

// GetByISRC retrieves a cached track by ISRC across services. The recording
// code is service-independent, so any service's row satisfies the lookup.
func (r *TrackRepository) GetByISRC(isrc string) (*models.PersistedTrack, error) {
	query := "SELECT " + trackColumns + " FROM tracks WHERE isrc = ? AND deleted_at IS NULL LIMIT 1"
	return scanTrack(r.db.QueryRow(query, isrc))
}

// Update rewrites a track row's mutable fields.
func (r *TrackRepository) Update(track *models.PersistedTrack) error {
	if err := track.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	track.SetUpdatedAt(now)

	query := `
		UPDATE tracks
		SET title = ?, artist = ?, album = ?, duration = ?, isrc = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		track.Title(),
		track.Artist(),
		track.Album(),
		track.Duration(),
		track.ISRC(),
		now,
		track.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update track: %w", err)
	}

	return requireRow(result, "track", track.ID())
}

// Delete soft-deletes a track row by ID.
func (r *TrackRepository) Delete(id string) error {
	result, err := r.db.Exec("UPDATE tracks SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}

	return requireRow(result, "track", id)
}

// List retrieves cached tracks matching the criteria in insertion order.
// Supported criteria: "service", "isrc".
func (r *TrackRepository) List(criteria map[string]any) ([]*models.PersistedTrack, error) {
	query := "SELECT " + trackColumns + " FROM tracks WHERE deleted_at IS NULL"
	args := []any{}

	if service, ok := criteria["service"].(string); ok && service != "" {
		query += " AND service = ?"
		args = append(args, service)
	}
	if isrc, ok := criteria["isrc"].(string); ok && isrc != "" {
		query += " AND isrc = ?"
		args = append(args, isrc)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*models.PersistedTrack
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

// rowScanner abstracts over sql.Row and sql.Rows so the repositories share
// one scan path for single and multi row queries.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrack(row rowScanner) (*models.PersistedTrack, error) {
	var (
		id        string
		sequence  int
		service   string
		serviceID string
		title     string
		artist    string
		album     string
		duration  int
		isrc      string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &service, &serviceID, &title, &artist, &album, &duration, &isrc, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrTrackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}

	dto := models.Track{
		ID:       serviceID,
		Title:    title,
		Artists:  models.SplitArtistLine(artist),
		Album:    album,
		Duration: duration,
		ISRC:     isrc,
	}

	track := models.NewPersistedTrack(sequence, service, serviceID, dto)
	track.SetID(id)
	track.SetCreatedAt(createdAt)
	track.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		track.SetDeletedAt(&deletedAt.Time)
	}

	return track, nil
}

// requireRow converts a zero-row write into a not-found error.
func requireRow(result sql.Result, entity, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s not found or already deleted: %s", entity, id)
	}
	return nil
}
