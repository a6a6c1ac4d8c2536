// Package repositories implements SQLite persistence for the catalog cache.
//
// Each repository handles CRUD with atomic sequence generation for stable
// insertion ordering. All repositories support soft deletes via deleted_at
// timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [TrackRepository] : Cached tracks with ISRC-based cross-service lookups
//   - [PlaylistRepository] : Playlist snapshots with service-specific queries
//   - [TrackCacheAdapter] : Write-through adapter the transfer engine feeds
//   - [PlaylistCacheAdapter] : Snapshot adapter the export commands feed
//
// Sequence numbers order cache rows independent of UUIDs and creation
// timestamps. The [NextSequence] function atomically advances per-table
// counters held in dedicated sequence tables.
package repositories
