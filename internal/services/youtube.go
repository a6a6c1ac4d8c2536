// YouTube Music implementation of [DestinationService]
//
// Communicates with the internal youtubei/v1 API that the music.youtube.com
// web client uses, authenticating with browser request headers captured by
// the user. Request and response shapes follow what the WEB_REMIX client
// sends over the wire.
package services

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/playlift/internal/models"
	"github.com/desertthunder/playlift/internal/shared"
)

const (
	ytmBaseURL       = "https://music.youtube.com/youtubei/v1"
	ytmOrigin        = "https://music.youtube.com"
	ytmClientName    = "WEB_REMIX"
	ytmClientVersion = "1.20250101.01.00"

	// searchParamsSongs scopes a search request to the Songs shelf so the
	// response carries playable catalog tracks rather than videos or albums.
	searchParamsSongs = "EgWKAQIIAWoMEA4QChADEAQQCRAF"

	pageTypeArtist = "MUSIC_PAGE_TYPE_ARTIST"
	pageTypeAlbum  = "MUSIC_PAGE_TYPE_ALBUM"
)

// YouTubeService implements [DestinationService] against the youtubei API.
type YouTubeService struct {
	headers    map[string]string
	sapisid    string
	httpClient *http.Client
	baseURL    string
	origin     string

	// now is swapped out in tests to pin the SAPISIDHASH timestamp.
	now func() time.Time
}

// NewYouTubeService creates a new YouTube Music service instance. The
// headers map may be nil; Authenticate can load one from a headers file.
func NewYouTubeService(headers map[string]string) *YouTubeService {
	return &YouTubeService{
		headers:    headers,
		httpClient: http.DefaultClient,
		baseURL:    ytmBaseURL,
		origin:     ytmOrigin,
		now:        time.Now,
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube Music"
}

// Authenticate validates the stored browser headers, loading them first
// from credentials["headers_path"] when given. The SAPISID cookie they
// carry signs every later request, so a missing or malformed header set
// fails here rather than on the first write.
func (y *YouTubeService) Authenticate(_ context.Context, credentials map[string]string) error {
	if path := credentials["headers_path"]; path != "" {
		headers, err := LoadHeadersFile(path)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
		}
		y.headers = headers
	}

	if len(y.headers) == 0 {
		return fmt.Errorf("%w: no YouTube Music headers provided", shared.ErrMissingCredentials)
	}

	if err := ValidateHeaders(y.headers); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	y.sapisid = sapisidFromCookie(y.headers["Cookie"])
	return nil
}

// ValidateHeaders checks that a captured header set can authenticate
// youtubei requests: a Cookie with a SAPISID (or __Secure-3PAPISID) value
// and a User-Agent matching the browser session the cookie came from.
func ValidateHeaders(headers map[string]string) error {
	cookie := headers["Cookie"]
	if cookie == "" {
		return fmt.Errorf("%w: missing Cookie header", shared.ErrInvalidHeaders)
	}

	if sapisidFromCookie(cookie) == "" {
		return fmt.Errorf("%w: Cookie has no SAPISID value", shared.ErrInvalidHeaders)
	}

	if headers["User-Agent"] == "" {
		return fmt.Errorf("%w: missing User-Agent header", shared.ErrInvalidHeaders)
	}

	return nil
}

// LoadHeadersFile reads a JSON headers file (header name to value) and
// canonicalizes the keys so lookups like "Cookie" work regardless of how
// the capture tool cased them.
func LoadHeadersFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read headers file: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: headers file is not a JSON object of strings: %v", shared.ErrInvalidHeaders, err)
	}

	headers := make(map[string]string, len(raw))
	for k, v := range raw {
		headers[http.CanonicalHeaderKey(k)] = v
	}

	return headers, nil
}

// WriteHeadersFile persists a header set as indented JSON with canonical
// keys, permissioned for the cookie secrets it contains.
func WriteHeadersFile(path string, headers map[string]string) error {
	canonical := make(map[string]string, len(headers))
	for k, v := range headers {
		canonical[http.CanonicalHeaderKey(k)] = v
	}

	data, err := json.MarshalIndent(canonical, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode headers: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write headers file: %w", err)
	}

	return nil
}

// sapisidFromCookie extracts the SAPISID value from a Cookie header,
// falling back to __Secure-3PAPISID which carries the same secret.
func sapisidFromCookie(cookie string) string {
	var fallback string
	for _, part := range strings.Split(cookie, ";") {
		name, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch name {
		case "SAPISID":
			return value
		case "__Secure-3PAPISID":
			fallback = value
		}
	}
	return fallback
}

// authorizationHeader builds the SAPISIDHASH value youtubei expects: the
// request timestamp and a SHA-1 over "timestamp sapisid origin".
func authorizationHeader(sapisid, origin string, now time.Time) string {
	ts := now.Unix()
	sum := sha1.Sum(fmt.Appendf(nil, "%d %s %s", ts, sapisid, origin))
	return fmt.Sprintf("SAPISIDHASH %d_%x", ts, sum)
}

// doRequest performs an authenticated POST against the youtubei API. The
// body fields are merged into the WEB_REMIX client context envelope.
func (y *YouTubeService) doRequest(ctx context.Context, endpoint string, body map[string]any, result any) error {
	if y.sapisid == "" {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	payload := map[string]any{
		"context": map[string]any{
			"client": map[string]any{
				"clientName":    ytmClientName,
				"clientVersion": ytmClientVersion,
				"hl":            "en",
			},
		},
	}
	for k, v := range body {
		payload[k] = v
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, y.baseURL+endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range y.headers {
		// Accept-Encoding from the captured session would disable the
		// transport's transparent gzip handling.
		switch k {
		case "Accept-Encoding", "Host", "Content-Length":
			continue
		}
		req.Header.Set(k, v)
	}

	req.Header.Set("Authorization", authorizationHeader(y.sapisid, y.origin, y.now()))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", y.origin)
	req.Header.Set("X-Origin", y.origin)

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("%w: youtubei error (status %d): %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("%w: youtubei error: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search response shapes, pared down to the fields the track mapping reads.

type flexRun struct {
	Text               string `json:"text"`
	NavigationEndpoint *struct {
		BrowseEndpoint struct {
			BrowseID                              string `json:"browseId"`
			BrowseEndpointContextSupportedConfigs struct {
				BrowseEndpointContextMusicConfig struct {
					PageType string `json:"pageType"`
				} `json:"browseEndpointContextMusicConfig"`
			} `json:"browseEndpointContextSupportedConfigs"`
		} `json:"browseEndpoint"`
	} `json:"navigationEndpoint"`
}

func (r flexRun) pageType() string {
	if r.NavigationEndpoint == nil {
		return ""
	}
	return r.NavigationEndpoint.BrowseEndpoint.BrowseEndpointContextSupportedConfigs.BrowseEndpointContextMusicConfig.PageType
}

type listItemRenderer struct {
	PlaylistItemData struct {
		VideoID string `json:"videoId"`
	} `json:"playlistItemData"`
	FlexColumns []struct {
		MusicResponsiveListItemFlexColumnRenderer struct {
			Text struct {
				Runs []flexRun `json:"runs"`
			} `json:"text"`
		} `json:"musicResponsiveListItemFlexColumnRenderer"`
	} `json:"flexColumns"`
}

func (r listItemRenderer) columnRuns(i int) []flexRun {
	if i >= len(r.FlexColumns) {
		return nil
	}
	return r.FlexColumns[i].MusicResponsiveListItemFlexColumnRenderer.Text.Runs
}

type musicShelf struct {
	Contents []struct {
		MusicResponsiveListItemRenderer *listItemRenderer `json:"musicResponsiveListItemRenderer"`
	} `json:"contents"`
}

type ytmSearchResponse struct {
	Contents struct {
		TabbedSearchResultsRenderer struct {
			Tabs []struct {
				TabRenderer struct {
					Content struct {
						SectionListRenderer struct {
							Contents []struct {
								MusicShelfRenderer *musicShelf `json:"musicShelfRenderer"`
							} `json:"contents"`
						} `json:"sectionListRenderer"`
					} `json:"content"`
				} `json:"tabRenderer"`
			} `json:"tabs"`
		} `json:"tabbedSearchResultsRenderer"`
	} `json:"contents"`
}

// DestinationService interface implementation

// SearchTracks runs a songs-scoped search and maps the result shelf into
// neutral track DTOs, at most limit of them.
func (y *YouTubeService) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	body := map[string]any{
		"query":  query,
		"params": searchParamsSongs,
	}

	var resp ytmSearchResponse
	if err := y.doRequest(ctx, "/search", body, &resp); err != nil {
		return nil, err
	}

	var tracks []models.Track
	for _, tab := range resp.Contents.TabbedSearchResultsRenderer.Tabs {
		for _, section := range tab.TabRenderer.Content.SectionListRenderer.Contents {
			if section.MusicShelfRenderer == nil {
				continue
			}
			for _, item := range section.MusicShelfRenderer.Contents {
				if item.MusicResponsiveListItemRenderer == nil {
					continue
				}
				track, ok := mapYTMusicItem(*item.MusicResponsiveListItemRenderer)
				if !ok {
					continue
				}
				tracks = append(tracks, track)
				if limit > 0 && len(tracks) >= limit {
					return tracks, nil
				}
			}
		}
	}

	return tracks, nil
}

// mapYTMusicItem converts one search result row into a track DTO. The
// first flex column holds the title, the second interleaves artist and
// album links with the duration text.
func mapYTMusicItem(item listItemRenderer) (models.Track, bool) {
	videoID := item.PlaylistItemData.VideoID
	if videoID == "" {
		return models.Track{}, false
	}

	track := models.Track{ID: videoID}

	if runs := item.columnRuns(0); len(runs) > 0 {
		track.Title = runs[0].Text
	}

	for _, run := range item.columnRuns(1) {
		switch run.pageType() {
		case pageTypeArtist:
			track.Artists = append(track.Artists, run.Text)
		case pageTypeAlbum:
			track.Album = run.Text
		default:
			if d := parseDurationText(run.Text); d > 0 {
				track.Duration = d
			}
		}
	}

	return track, track.Title != ""
}

// parseDurationText converts a "m:ss" or "h:mm:ss" label to milliseconds,
// returning 0 for anything that is not a duration.
func parseDurationText(text string) int {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}

	seconds := 0
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0
		}
		seconds = seconds*60 + n
	}

	return seconds * 1000
}

// CreatePlaylist creates a playlist on YouTube Music and returns it with
// the ID the API assigned.
func (y *YouTubeService) CreatePlaylist(ctx context.Context, title, description string, public bool) (*models.Playlist, error) {
	privacy := "PRIVATE"
	if public {
		privacy = "PUBLIC"
	}

	body := map[string]any{
		"title":         title,
		"description":   description,
		"privacyStatus": privacy,
	}

	var resp struct {
		PlaylistID string `json:"playlistId"`
	}
	if err := y.doRequest(ctx, "/playlist/create", body, &resp); err != nil {
		return nil, err
	}

	if resp.PlaylistID == "" {
		return nil, fmt.Errorf("%w: playlist/create returned no playlist ID", shared.ErrAPIRequest)
	}

	return &models.Playlist{
		ID:          resp.PlaylistID,
		Name:        title,
		Description: description,
		Public:      public,
	}, nil
}

// AddTracks appends the given video IDs to a playlist in one edit request,
// preserving their order.
func (y *YouTubeService) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if len(trackIDs) == 0 {
		return nil
	}

	actions := make([]map[string]any, len(trackIDs))
	for i, id := range trackIDs {
		actions[i] = map[string]any{
			"action":       "ACTION_ADD_VIDEO",
			"addedVideoId": id,
		}
	}

	body := map[string]any{
		// Browse IDs carry a VL prefix that the edit endpoint rejects.
		"playlistId": strings.TrimPrefix(playlistID, "VL"),
		"actions":    actions,
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := y.doRequest(ctx, "/browse/edit_playlist", body, &resp); err != nil {
		return err
	}

	if resp.Status != "STATUS_SUCCEEDED" {
		return fmt.Errorf("%w: edit_playlist returned status %q", shared.ErrAPIRequest, resp.Status)
	}

	return nil
}
