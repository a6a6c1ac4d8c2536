package tasks

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/desertthunder/playlift/internal/models"
	"golang.org/x/time/rate"
)

type searchJob struct {
	index int
	track models.Track
}

// matchEntriesPool runs the matcher over a bounded worker pool. Every worker
// writes only its own slot of the results slice, so the fold downstream sees
// the same position-ordered results a sequential run would produce.
func (e *TransferEngine) matchEntriesPool(ctx context.Context, entries []models.PlaylistEntry, limiter *rate.Limiter, progress chan<- ProgressUpdate) []MatchResult {
	present := countPresent(entries)
	results := make([]MatchResult, len(entries))
	jobs := make(chan searchJob, present)

	var done atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < e.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for job := range jobs {
				select {
				case <-ctx.Done():
					results[job.index] = MatchResult{Outcome: MatchNotFound, Err: ctx.Err()}
					continue
				default:
				}

				if err := limiter.Wait(ctx); err != nil {
					results[job.index] = MatchResult{Outcome: MatchNotFound, Err: err}
					continue
				}

				res := e.matchTrack(ctx, job.track)
				results[job.index] = res

				step := int(done.Add(1))
				e.sendProgress(progress, searchTrackUpdate(step, present, job.track))
				if res.Err != nil {
					e.warn("track search failed", "title", job.track.Title, "error", res.Err)
				}
			}
		}()
	}

	for i, entry := range entries {
		if entry.Present {
			jobs <- searchJob{index: i, track: entry.Track}
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
