package tasks

import (
	"context"
	"fmt"
	"testing"

	"github.com/desertthunder/playlift/internal/models"
)

func TestBuildSearchQuery(t *testing.T) {
	cases := []struct {
		name  string
		track models.Track
		want  string
	}{
		{
			name:  "single artist",
			track: models.Track{Title: "One More Time", Artists: []string{"Daft Punk"}},
			want:  "One More Time Daft Punk",
		},
		{
			name:  "multiple artists joined by spaces",
			track: models.Track{Title: "Lose Yourself to Dance", Artists: []string{"Daft Punk", "Pharrell Williams"}},
			want:  "Lose Yourself to Dance Daft Punk Pharrell Williams",
		},
		{
			name:  "no artists",
			track: models.Track{Title: "Untitled"},
			want:  "Untitled",
		},
		{
			name:  "empty track",
			track: models.Track{},
			want:  "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildSearchQuery(tc.track); got != tc.want {
				t.Errorf("BuildSearchQuery() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMatchTrack(t *testing.T) {
	track := models.Track{ID: "sp1", Title: "Song 1", Artists: []string{"Artist 1"}}

	t.Run("first result wins", func(t *testing.T) {
		dest := &mockDestination{
			name: "YouTube Music",
			searchResults: map[string][]models.Track{
				"Song 1 Artist 1": {
					{ID: "yt_best", Title: "Song 1"},
					{ID: "yt_cover", Title: "Song 1 (Cover)"},
				},
			},
		}
		engine := NewTransferEngine(fiveTrackSource(), dest, TransferOptions{SearchLimit: 5})

		result := engine.matchTrack(context.Background(), track)
		if result.Outcome != MatchFound {
			t.Fatalf("Outcome = %s, want found", result.Outcome)
		}
		if result.TrackID != "yt_best" {
			t.Errorf("TrackID = %s, want yt_best", result.TrackID)
		}
		if result.Matched == nil || result.Matched.ID != "yt_best" {
			t.Errorf("Matched = %+v, want the first search result", result.Matched)
		}
		if len(dest.searchQueries) != 1 {
			t.Errorf("searches = %d, want exactly 1 per track", len(dest.searchQueries))
		}
	})

	t.Run("empty results", func(t *testing.T) {
		dest := &mockDestination{name: "YouTube Music"}
		engine := NewTransferEngine(fiveTrackSource(), dest, TransferOptions{})

		result := engine.matchTrack(context.Background(), track)
		if result.Outcome != MatchNotFound {
			t.Errorf("Outcome = %s, want not_found", result.Outcome)
		}
		if result.Err != nil {
			t.Errorf("an empty result set is a miss, not an error: %v", result.Err)
		}
	})

	t.Run("search error", func(t *testing.T) {
		dest := &mockDestination{
			name:       "YouTube Music",
			searchErrs: map[string]error{"Song 1 Artist 1": fmt.Errorf("timeout")},
		}
		engine := NewTransferEngine(fiveTrackSource(), dest, TransferOptions{})

		result := engine.matchTrack(context.Background(), track)
		if result.Outcome != MatchNotFound {
			t.Errorf("Outcome = %s, want not_found", result.Outcome)
		}
		if result.Err == nil {
			t.Error("the underlying search error should be preserved on the result")
		}
	})
}

func TestMatchOutcome_String(t *testing.T) {
	cases := []struct {
		outcome MatchOutcome
		want    string
	}{
		{MatchFound, "found"},
		{MatchNotFound, "not_found"},
		{MatchOutcome(99), ""},
	}

	for _, tc := range cases {
		if got := tc.outcome.String(); got != tc.want {
			t.Errorf("MatchOutcome(%d).String() = %q, want %q", int(tc.outcome), got, tc.want)
		}
	}
}
