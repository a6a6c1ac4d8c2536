package shared

import "fmt"

var (
	// Transfer errors, one per failure mode of a playlist transfer. The
	// engine wraps every terminal failure in exactly one of these so
	// callers can branch with [errors.Is] without inspecting provider
	// payloads.
	ErrInvalidLocator   = fmt.Errorf("invalid playlist locator")
	ErrSourceAuth       = fmt.Errorf("source authentication failed")
	ErrDestinationAuth  = fmt.Errorf("destination authentication failed")
	ErrSourceRead       = fmt.Errorf("source read failed")
	ErrDestinationWrite = fmt.Errorf("destination write failed")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidHeaders     = fmt.Errorf("invalid browser headers")

	// Authentication and service errors
	ErrAuthFailed         = fmt.Errorf("authentication failed")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")
	ErrTrackNotFound      = fmt.Errorf("track not found")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
