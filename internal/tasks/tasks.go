// package tasks implements the playlist transfer engine.
//
// The core abstraction is TransferEngine, which orchestrates a single
// source-to-destination playlist transfer: locator extraction, paginated
// track retrieval, per-track catalog matching, and partial-failure
// aggregation. Operations emit progress updates via channels for
// non-blocking status reporting to the CLI and HTTP layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playlift/internal/models"
	"github.com/desertthunder/playlift/internal/services"
	"github.com/desertthunder/playlift/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultSearchRate  = 5.0
	defaultSearchLimit = 5
	maxSearchWorkers   = 10
)

// TransferOptions tunes how step-6 matching runs. Zero values fall back to
// the sequential single-worker defaults.
type TransferOptions struct {
	Workers     int     // Concurrent search workers (default 1, max 10)
	SearchRate  float64 // Destination searches per second (default 5)
	SearchLimit int     // Results requested per search (default 5)
}

// FailedTrack identifies a source track that could not be resolved on the
// destination catalog.
type FailedTrack struct {
	Name    string   `json:"name"`
	Artists []string `json:"artists"`
}

// TransferReport summarizes one finished transfer. TotalTracks counts every
// playlist slot including absent ones; TransferredCount and FailedTracks
// partition the present slots.
type TransferReport struct {
	PlaylistName     string        `json:"playlist_name"`
	TotalTracks      int           `json:"total_tracks"`
	TransferredCount int           `json:"transferred_count"`
	FailedTracks     []FailedTrack `json:"failed_tracks"`
	PlaylistID       string        `json:"ytm_playlist_id"`
}

// TrackCacher persists matched tracks during transfers. Implementations
// must tolerate repeats (the same track matched across runs).
type TrackCacher interface {
	CacheTrack(service, serviceID string, track models.Track) error
}

// TransferEngine runs source-to-destination playlist transfers. One Transfer
// call owns its accumulation exclusively; engines are cheap, so concurrent
// transfers should each get their own engine and service handles.
type TransferEngine struct {
	source      services.SourceService
	destination services.DestinationService
	opts        TransferOptions
	cache       TrackCacher
	logger      *log.Logger
}

// NewTransferEngine creates an engine over the given service handles,
// clamping the options to their supported ranges.
func NewTransferEngine(source services.SourceService, destination services.DestinationService, opts TransferOptions) *TransferEngine {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Workers > maxSearchWorkers {
		opts.Workers = maxSearchWorkers
	}
	if opts.SearchRate <= 0 {
		opts.SearchRate = defaultSearchRate
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = defaultSearchLimit
	}

	return &TransferEngine{
		source:      source,
		destination: destination,
		opts:        opts,
	}
}

// SetTrackCache attaches a write-through cache for matched tracks. The
// engine is fully functional without one.
func (e *TransferEngine) SetTrackCache(cache TrackCacher) {
	e.cache = cache
}

// SetLogger attaches a logger for per-track warnings.
func (e *TransferEngine) SetLogger(logger *log.Logger) {
	e.logger = logger
}

func (e *TransferEngine) warn(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never stalls a
// transfer behind a slow consumer.
func (e *TransferEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Transfer runs one full playlist transfer and returns its report.
//
// The steps run in a fixed order: extract the playlist ID from the locator,
// authenticate the destination (before any source traffic), authenticate the
// source, drain the full source track listing, create the destination
// playlist, match every present track, then add all matches in one batch.
// A failure at any step aborts with exactly one wrapped sentinel
// (ErrInvalidLocator, ErrDestinationAuth, ErrSourceAuth, ErrSourceRead,
// ErrDestinationWrite); per-track misses never abort and are aggregated
// into the report instead.
func (e *TransferEngine) Transfer(ctx context.Context, locator string, sourceCreds, destCreds map[string]string, progress chan<- ProgressUpdate) (*TransferReport, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: source service not initialized", shared.ErrServiceUnavailable)
	}
	if e.destination == nil {
		return nil, fmt.Errorf("%w: destination service not initialized", shared.ErrServiceUnavailable)
	}

	playlistID, err := shared.ExtractPlaylistID(locator)
	if err != nil {
		return nil, err
	}

	if err := e.destination.Authenticate(ctx, destCreds); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrDestinationAuth, e.destination.Name(), err)
	}

	if err := e.source.Authenticate(ctx, sourceCreds); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrSourceAuth, e.source.Name(), err)
	}

	e.sendProgress(progress, fetchSourceUpdate(e.source.Name()))

	export, err := FetchPlaylistExport(ctx, e.source, playlistID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSourceRead, err)
	}

	total := len(export.Entries)
	e.sendProgress(progress, foundPlaylistUpdate(export.Playlist.Name, total))

	e.sendProgress(progress, createPlaylistUpdate(e.destination.Name()))

	description := fmt.Sprintf("Transferred from %s playlist: %s", e.source.Name(), export.Playlist.Name)
	created, err := e.destination.CreatePlaylist(ctx, export.Playlist.Name, description, false)
	if err != nil {
		return nil, fmt.Errorf("%w: create playlist: %v", shared.ErrDestinationWrite, err)
	}

	e.sendProgress(progress, playlistCreatedUpdate(created))

	matches := e.matchEntries(ctx, export.Entries, progress)

	report := &TransferReport{
		PlaylistName: export.Playlist.Name,
		TotalTracks:  total,
		FailedTracks: []FailedTrack{},
		PlaylistID:   created.ID,
	}

	var pending []string
	for i, entry := range export.Entries {
		if !entry.Present {
			continue
		}

		match := matches[i]
		if match.Outcome == MatchFound {
			pending = append(pending, match.TrackID)
			report.TransferredCount++
			e.cacheMatch(match)
			continue
		}

		report.FailedTracks = append(report.FailedTracks, FailedTrack{
			Name:    entry.Track.Title,
			Artists: entry.Track.Artists,
		})
	}

	if len(pending) > 0 {
		e.sendProgress(progress, addTracksUpdate(len(pending)))
		if err := e.destination.AddTracks(ctx, created.ID, pending); err != nil {
			return nil, fmt.Errorf("%w: add tracks: %v", shared.ErrDestinationWrite, err)
		}
	}

	e.sendProgress(progress, completeUpdate(report))
	return report, nil
}

// matchEntries resolves every present entry against the destination catalog,
// returning a slice aligned with entries so the fold can run in original
// order regardless of how the searches were scheduled.
func (e *TransferEngine) matchEntries(ctx context.Context, entries []models.PlaylistEntry, progress chan<- ProgressUpdate) []MatchResult {
	limiter := rate.NewLimiter(rate.Limit(e.opts.SearchRate), 1)

	if e.opts.Workers > 1 {
		return e.matchEntriesPool(ctx, entries, limiter, progress)
	}

	present := countPresent(entries)
	results := make([]MatchResult, len(entries))

	step := 0
	for i, entry := range entries {
		if !entry.Present {
			continue
		}

		step++
		e.sendProgress(progress, searchTrackUpdate(step, present, entry.Track))

		if err := limiter.Wait(ctx); err != nil {
			results[i] = MatchResult{Outcome: MatchNotFound, Err: err}
			continue
		}

		results[i] = e.matchTrack(ctx, entry.Track)
		if results[i].Err != nil {
			e.warn("track search failed", "title", entry.Track.Title, "error", results[i].Err)
		}
	}

	return results
}

// cacheMatch write-through caches a found destination track. Cache failures
// are logged and swallowed so persistence problems never disrupt a transfer.
func (e *TransferEngine) cacheMatch(match MatchResult) {
	if e.cache == nil || match.Matched == nil {
		return
	}

	if err := e.cache.CacheTrack(e.destination.Name(), match.TrackID, *match.Matched); err != nil {
		e.warn("failed to cache matched track", "track_id", match.TrackID, "error", err)
	}
}

func countPresent(entries []models.PlaylistEntry) int {
	present := 0
	for _, entry := range entries {
		if entry.Present {
			present++
		}
	}
	return present
}
