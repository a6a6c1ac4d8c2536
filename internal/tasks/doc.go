// Package tasks orchestrates playlist transfers between music services with
// real-time progress reporting.
//
// # Core Operation
//
// [TransferEngine.Transfer] runs one full source-to-destination transfer:
//
//  1. Extract the playlist ID from the locator URL
//  2. Authenticate the destination handle (before any source traffic)
//  3. Authenticate the source handle
//  4. Drain the full paginated source track listing ([FetchPlaylistExport])
//  5. Create the destination playlist (private, named after the source)
//  6. Match every present track against the destination catalog
//  7. Add all matched tracks in one batch
//  8. Return a [TransferReport]
//
// A failure in steps 1-5 or 7 aborts the transfer with one wrapped sentinel
// from the shared package; a track that finds no match in step 6 is a normal
// outcome recorded in [TransferReport.FailedTracks], never an error.
//
// # Matching
//
// The matcher issues exactly one songs-scoped search per track (title plus
// space-joined artists) and takes the first result. With
// [TransferOptions.Workers] above one, searches run on a bounded worker pool
// behind a shared rate limiter; results land in a position-indexed slice so
// the report is identical to a sequential run.
//
// # Progress Reporting
//
// All operations accept a progress channel. Sends use select with default,
// so a slow or absent consumer never stalls a transfer; a nil channel is
// valid. [ProgressUpdate] carries the phase, step counters, a display
// message, and optional data.
//
// # Track Caching
//
// The optional [TrackCacher] interface enables write-through persistence of
// matched tracks during transfers. Cache errors are logged and swallowed to
// avoid disrupting transfers, and cached data never influences matching.
//
// # Implementation
//
// [TransferEngine] depends on:
//   - [services.SourceService] : the playlist being read (Spotify)
//   - [services.DestinationService] : the catalog being written (YouTube Music)
//   - [TrackCacher] : optional persistence layer (repositories.TrackCacheAdapter)
package tasks
