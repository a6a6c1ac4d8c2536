package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/playlift/internal/services"
	"github.com/desertthunder/playlift/internal/shared"
	"github.com/desertthunder/playlift/internal/tasks"
)

// TransferRequest is the POST /api/transfer body. Credentials omitted from
// the body fall back to the server's configuration.
type TransferRequest struct {
	SpotifyURL          string            `json:"spotify_url"`
	SpotifyClientID     string            `json:"spotify_client_id,omitempty"`
	SpotifyClientSecret string            `json:"spotify_client_secret,omitempty"`
	YTMusicHeaders      map[string]string `json:"ytmusic_headers,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// transferStatus maps transfer failure sentinels onto HTTP status codes:
// unusable locators are client errors, authentication failures are 401s, and
// upstream read/write failures surface as bad gateways.
func transferStatus(err error) int {
	switch {
	case errors.Is(err, shared.ErrInvalidLocator), errors.Is(err, shared.ErrMissingArgument):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrSourceAuth), errors.Is(err, shared.ErrDestinationAuth), errors.Is(err, shared.ErrMissingCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrSourceRead), errors.Is(err, shared.ErrDestinationWrite):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// TransferHandler serves POST /api/transfer: it builds per-request service
// handles, runs one engine transfer, and returns the report as JSON.
type TransferHandler struct {
	config *shared.Config
	logger *log.Logger

	// buildEngine is swapped out in tests to run transfers against stub
	// services.
	buildEngine func(req *TransferRequest) (*tasks.TransferEngine, map[string]string, map[string]string, error)
}

// NewTransferHandler creates a transfer handler whose default engine wiring
// uses Spotify as the source and YouTube Music as the destination.
func NewTransferHandler(config *shared.Config, logger *log.Logger) *TransferHandler {
	h := &TransferHandler{config: config, logger: logger}
	h.buildEngine = h.defaultEngine
	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *TransferHandler) Routes() []string {
	return []string{"POST /api/transfer"}
}

// defaultEngine assembles a fresh engine and credential maps for one request,
// preferring request credentials over configured ones.
func (h *TransferHandler) defaultEngine(req *TransferRequest) (*tasks.TransferEngine, map[string]string, map[string]string, error) {
	sourceCreds := map[string]string{
		"client_id":     req.SpotifyClientID,
		"client_secret": req.SpotifyClientSecret,
	}
	if sourceCreds["client_id"] == "" {
		sourceCreds["client_id"] = h.config.Credentials.Spotify.ClientID
	}
	if sourceCreds["client_secret"] == "" {
		sourceCreds["client_secret"] = h.config.Credentials.Spotify.ClientSecret
	}

	source, err := services.NewSpotifyService(sourceCreds)
	if err != nil {
		return nil, nil, nil, err
	}

	destination := services.NewYouTubeService(req.YTMusicHeaders)
	destCreds := map[string]string{}
	if len(req.YTMusicHeaders) == 0 {
		destCreds["headers_path"] = h.config.Credentials.YouTube.HeadersPath
	}

	engine := tasks.NewTransferEngine(source, destination, tasks.TransferOptions{
		Workers:     h.config.Transfer.Workers,
		SearchRate:  h.config.Transfer.SearchRate,
		SearchLimit: h.config.Transfer.SearchLimit,
	})
	engine.SetLogger(h.logger)

	return engine, sourceCreds, destCreds, nil
}

// ServeHTTP runs one transfer for the request body and writes the report,
// mapping taxonomy sentinels to status codes on failure.
func (h *TransferHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err))
		return
	}

	if req.SpotifyURL == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: spotify_url", shared.ErrMissingArgument))
		return
	}

	engine, sourceCreds, destCreds, err := h.buildEngine(&req)
	if err != nil {
		writeError(w, transferStatus(err), err)
		return
	}

	report, err := engine.Transfer(r.Context(), req.SpotifyURL, sourceCreds, destCreds, nil)
	if err != nil {
		h.logger.Error("transfer failed", "error", err)
		writeError(w, transferStatus(err), err)
		return
	}

	h.logger.Info("transfer complete",
		"playlist", report.PlaylistName,
		"transferred", report.TransferredCount,
		"failed", len(report.FailedTracks),
	)
	writeJSON(w, http.StatusOK, report)
}

// HeadersTestRequest is the POST /api/headers/test body.
type HeadersTestRequest struct {
	Headers map[string]string `json:"headers"`
}

// HeadersTestResponse reports whether a captured header set can authenticate
// YouTube Music requests.
type HeadersTestResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// HeadersHandler serves POST /api/headers/test: it validates a captured
// browser header set without touching the network.
type HeadersHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (h *HeadersHandler) Routes() []string {
	return []string{"POST /api/headers/test"}
}

func (h *HeadersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req HeadersTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err))
		return
	}

	if err := services.ValidateHeaders(req.Headers); err != nil {
		writeJSON(w, http.StatusOK, HeadersTestResponse{Valid: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, HeadersTestResponse{Valid: true})
}

// HealthHandler serves GET /api/health for liveness checks.
type HealthHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"GET /api/health"}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
