// Package services defines the [SourceService] and [DestinationService]
// contracts for music catalog providers and implements them for Spotify
// (source) and YouTube Music (destination).
//
// # Service Interfaces
//
// A source is read from: playlist metadata and a paginated track listing.
// A destination is written to: track search, playlist creation, and batch
// track insertion. The transfer engine only sees these two interfaces, so
// either side can be swapped or faked in tests.
//
// # Spotify Implementation
//
// [SpotifyService] authenticates with the OAuth2 client-credentials flow,
// which grants read access to public catalog resources without a user
// login. The token exchange runs eagerly in Authenticate so bad secrets
// surface before any catalog read.
//
// # YouTube Music Implementation
//
// [YouTubeService] talks directly to the youtubei/v1 API used by the
// music.youtube.com web client. Requests are signed with a SAPISIDHASH
// derived from the SAPISID cookie in a browser header capture; the
// captured headers are replayed on every request so the session looks
// like the browser it came from.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrMissingCredentials] : constructor or Authenticate input incomplete
//   - [shared.ErrAuthFailed] : token exchange or header validation failed
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrAPIRequest] : HTTP request failed or API returned an error body
//   - [shared.ErrPlaylistNotFound] : playlist ID not found
//   - [shared.ErrInvalidHeaders] : header capture unusable for signing
//
// # API Mappings
//
// Both services convert provider JSON into the neutral [models.Track] and
// [models.Playlist] DTOs: Spotify carries the full credited artist list
// and ISRC from external_ids; YouTube Music results are reassembled from
// the flex columns of the songs shelf.
package services
