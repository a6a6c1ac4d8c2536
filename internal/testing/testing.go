// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/playlift/internal/models"
)

// StubSource is a canned test double satisfying [services.SourceService].
// Pages are served in order, one per call, regardless of the offset asked for.
type StubSource struct {
	ServiceName string
	Playlist    *models.Playlist
	Pages       []*models.TrackPage
	AuthErr     error
	PlaylistErr error
	PageErr     error

	AuthCalls int
	pageCalls int
}

func (s *StubSource) Authenticate(ctx context.Context, credentials map[string]string) error {
	s.AuthCalls++
	return s.AuthErr
}

func (s *StubSource) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	if s.PlaylistErr != nil {
		return nil, s.PlaylistErr
	}
	if s.Playlist != nil {
		return s.Playlist, nil
	}
	return &models.Playlist{ID: playlistID, Name: "Stub Playlist"}, nil
}

func (s *StubSource) PlaylistTracksPage(ctx context.Context, playlistID string, offset int) (*models.TrackPage, error) {
	if s.PageErr != nil {
		return nil, s.PageErr
	}
	if s.pageCalls >= len(s.Pages) {
		return &models.TrackPage{}, nil
	}
	page := s.Pages[s.pageCalls]
	s.pageCalls++
	return page, nil
}

func (s *StubSource) Name() string {
	if s.ServiceName == "" {
		return "Stub Source"
	}
	return s.ServiceName
}

// StubDestination is a canned test double satisfying
// [services.DestinationService]. Created playlists get sequential IDs
// (dest_playlist_1, dest_playlist_2, ...) and added tracks are recorded
// per playlist ID.
type StubDestination struct {
	ServiceName   string
	SearchResults map[string][]models.Track
	AuthErr       error
	SearchErr     error
	CreateErr     error
	AddErr        error

	mu        sync.Mutex
	AuthCalls int
	Created   []*models.Playlist
	Added     map[string][]string
}

func (d *StubDestination) Authenticate(ctx context.Context, credentials map[string]string) error {
	d.AuthCalls++
	return d.AuthErr
}

func (d *StubDestination) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if d.SearchErr != nil {
		return nil, d.SearchErr
	}
	results := d.SearchResults[query]
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (d *StubDestination) CreatePlaylist(ctx context.Context, title, description string, public bool) (*models.Playlist, error) {
	if d.CreateErr != nil {
		return nil, d.CreateErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	playlist := &models.Playlist{
		ID:          fmt.Sprintf("dest_playlist_%d", len(d.Created)+1),
		Name:        title,
		Description: description,
		Public:      public,
	}
	d.Created = append(d.Created, playlist)
	return playlist, nil
}

func (d *StubDestination) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if d.AddErr != nil {
		return d.AddErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Added == nil {
		d.Added = make(map[string][]string)
	}
	d.Added[playlistID] = append(d.Added[playlistID], trackIDs...)
	return nil
}

func (d *StubDestination) Name() string {
	if d.ServiceName == "" {
		return "Stub Destination"
	}
	return d.ServiceName
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
