package tasks

import (
	"context"
	"strings"

	"github.com/desertthunder/playlift/internal/models"
)

// MatchOutcome labels the result of resolving one source track against the
// destination catalog.
type MatchOutcome int

const (
	MatchNotFound MatchOutcome = iota
	MatchFound
)

func (o MatchOutcome) String() string {
	switch o {
	case MatchFound:
		return "found"
	case MatchNotFound:
		return "not_found"
	default:
		return ""
	}
}

// MatchResult is the outcome of matching a single source track. Err records
// the lookup error behind a NotFound for logging; the report does not
// distinguish a failed lookup from an empty result set.
type MatchResult struct {
	Outcome MatchOutcome
	TrackID string        // Destination catalog ID when found
	Matched *models.Track // Full destination track when found
	Err     error
}

// BuildSearchQuery derives the destination search text for a source track:
// the title followed by every credited artist, space-joined.
func BuildSearchQuery(track models.Track) string {
	if len(track.Artists) == 0 {
		return track.Title
	}
	return track.Title + " " + strings.Join(track.Artists, " ")
}

// matchTrack runs exactly one destination search for a source track. The
// first result wins with no secondary scoring; a lookup error and an empty
// result set both come back as NotFound.
func (e *TransferEngine) matchTrack(ctx context.Context, track models.Track) MatchResult {
	results, err := e.destination.SearchTracks(ctx, BuildSearchQuery(track), e.opts.SearchLimit)
	if err != nil {
		return MatchResult{Outcome: MatchNotFound, Err: err}
	}
	if len(results) == 0 {
		return MatchResult{Outcome: MatchNotFound}
	}

	matched := results[0]
	return MatchResult{Outcome: MatchFound, TrackID: matched.ID, Matched: &matched}
}
