package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/playlift/internal/models"
	"github.com/desertthunder/playlift/internal/shared"
)

// PlaylistRepository implements models.Repository[*models.PersistedPlaylist]
// over the playlists table, which holds snapshots of playlists seen on
// either service.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a PlaylistRepository over the given connection.
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

const playlistColumns = "id, sequence, service, service_id, name, description, track_count, public, created_at, updated_at, deleted_at"

// Create inserts a playlist snapshot with a generated ID and the next
// playlists sequence number.
func (r *PlaylistRepository) Create(playlist *models.PersistedPlaylist) error {
	sequence, err := NextSequence(r.db, "playlists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	playlist.SetID(shared.GenerateID())

	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO playlists (id, sequence, service, service_id, name, description, track_count, public, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		playlist.ID(),
		sequence,
		playlist.Service(),
		playlist.ServiceID(),
		playlist.Name(),
		playlist.Description(),
		playlist.TrackCount(),
		playlist.Public(),
		playlist.CreatedAt(),
		playlist.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	return nil
}

// Get retrieves a playlist snapshot by row ID, excluding soft-deleted rows.
func (r *PlaylistRepository) Get(id string) (*models.PersistedPlaylist, error) {
	query := "SELECT " + playlistColumns + " FROM playlists WHERE id = ? AND deleted_at IS NULL"
	return scanPlaylist(r.db.QueryRow(query, id))
}

// GetByServiceID retrieves the snapshot for a service's playlist.
func (r *PlaylistRepository) GetByServiceID(service, serviceID string) (*models.PersistedPlaylist, error) {
	query := "SELECT " + playlistColumns + " FROM playlists WHERE service = ? AND service_id = ? AND deleted_at IS NULL"
	return scanPlaylist(r.db.QueryRow(query, service, serviceID))
}

// Update rewrites a snapshot's mutable fields.
func (r *PlaylistRepository) Update(playlist *models.PersistedPlaylist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	playlist.SetUpdatedAt(now)

	query := `
		UPDATE playlists
		SET name = ?, description = ?, track_count = ?, public = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		playlist.Name(),
		playlist.Description(),
		playlist.TrackCount(),
		playlist.Public(),
		now,
		playlist.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	return requireRow(result, "playlist", playlist.ID())
}

// Delete soft-deletes a playlist snapshot by row ID.
func (r *PlaylistRepository) Delete(id string) error {
	result, err := r.db.Exec("UPDATE playlists SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	return requireRow(result, "playlist", id)
}

// List retrieves playlist snapshots matching the criteria in insertion
// order. Supported criteria: "service".
func (r *PlaylistRepository) List(criteria map[string]any) ([]*models.PersistedPlaylist, error) {
	query := "SELECT " + playlistColumns + " FROM playlists WHERE deleted_at IS NULL"
	args := []any{}

	if service, ok := criteria["service"].(string); ok && service != "" {
		query += " AND service = ?"
		args = append(args, service)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.PersistedPlaylist
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

func scanPlaylist(row rowScanner) (*models.PersistedPlaylist, error) {
	var (
		id          string
		sequence    int
		service     string
		serviceID   string
		name        string
		description string
		trackCount  int
		public      bool
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := row.Scan(&id, &sequence, &service, &serviceID, &name, &description, &trackCount, &public, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	dto := models.Playlist{
		ID:          serviceID,
		Name:        name,
		Description: description,
		TrackCount:  trackCount,
		Public:      public,
	}

	playlist := models.NewPersistedPlaylist(sequence, service, serviceID, dto)
	playlist.SetID(id)
	playlist.SetCreatedAt(createdAt)
	playlist.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		playlist.SetDeletedAt(&deletedAt.Time)
	}

	return playlist, nil
}
