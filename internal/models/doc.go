// Package models defines domain entities and persistence interfaces for the
// playlift transfer service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing external service data
//   - [Playlist] : Basic playlist metadata from music services
//   - [Track] : Song metadata with full artist credits and ISRC
//   - [PlaylistEntry] : One playlist slot; absent slots carry Present == false
//   - [TrackPage] : One page of a paginated track listing
//   - [PlaylistExport] : Playlist with its complete ordered track listing
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [PersistedPlaylist] : Cached playlist snapshots with service metadata
//   - [PersistedTrack] : Cached tracks for cross-service matching stats
//
// All persistent entities implement the Model interface providing ID
// generation, timestamps, validation, and soft delete support. The
// Repository[T] interface defines standard CRUD operations for database
// access.
package models
