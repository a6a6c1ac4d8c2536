// Utilities for parsing playlist locators.
package shared

import (
	"fmt"
	"regexp"
	"strings"
)

const playlistMarker = "spotify.com/playlist/"

var playlistIDPattern = regexp.MustCompile(`playlist/([A-Za-z0-9]+)`)

// ExtractPlaylistID pulls the catalog identifier out of a Spotify playlist
// URL, e.g. "https://open.spotify.com/playlist/4dnxoZHyjg7A31vH1pIZXR?si=x"
// yields "4dnxoZHyjg7A31vH1pIZXR".
//
// Any string is accepted as input. The locator must contain the
// spotify.com/playlist/ path marker followed by an alphanumeric identifier
// segment; the first such segment wins and everything after it (query
// parameters, trailing path) is ignored. No length or checksum validation is
// applied to the identifier itself.
func ExtractPlaylistID(locator string) (string, error) {
	if !strings.Contains(locator, playlistMarker) {
		return "", fmt.Errorf("%w: not a Spotify playlist URL: %q", ErrInvalidLocator, locator)
	}

	match := playlistIDPattern.FindStringSubmatch(locator)
	if len(match) < 2 {
		return "", fmt.Errorf("%w: no playlist ID in %q", ErrInvalidLocator, locator)
	}

	return match[1], nil
}
