// Package handlers exposes the HTTP surface over the fetch orchestrator.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"pancake-service/internal/domain/shows"
	"pancake-service/internal/orchestrator"
	"pancake-service/internal/poller"
	"pancake-service/internal/search"
	"pancake-service/internal/seats"
)

// ShowService is the orchestrator surface the handlers consume.
type ShowService interface {
	ResolveMarket(ctx context.Context, nameOrID string) (string, error)
	Markets(ctx context.Context) ([]shows.MarketSummary, error)
	Search(ctx context.Context, marketID string, params orchestrator.SearchParams) ([]shows.Show, error)
	Statuses() []string
	Classification(sessionID string) (seats.Availability, bool)
	Classifications() map[string]seats.Availability
}

// PollerStatus reports readiness of the background refresh loop.
type PollerStatus interface {
	Status() poller.Status
}

// Handler serves the show, market, and availability endpoints.
type Handler struct {
	service       ShowService
	poller        PollerStatus
	defaultMarket string
	version       string
}

// New constructs a Handler.
func New(service ShowService, pollerStatus PollerStatus, defaultMarket, version string) *Handler {
	return &Handler{
		service:       service,
		poller:        pollerStatus,
		defaultMarket: defaultMarket,
		version:       version,
	}
}

// Routes registers all endpoints on a fresh mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/shows", h.Shows)
	mux.HandleFunc("/shows/by-location", h.ShowsByLocation)
	mux.HandleFunc("/markets", h.Markets)
	mux.HandleFunc("/availability/", h.Availability)
	mux.HandleFunc("/statuses", h.Statuses)
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/ready", h.Ready)
	return mux
}

type availabilityResponse struct {
	SessionID    string `json:"session_id"`
	Availability string `json:"availability"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readyResponse struct {
	Ready               bool   `json:"ready"`
	ConsecutiveFailures int    `json:"consecutive_failures"`
	LastError           string `json:"last_error,omitempty"`
}

type statusesResponse struct {
	Statuses []string `json:"statuses"`
}

// Shows handles GET /shows: the flat search result for a market.
func (h *Handler) Shows(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	marketID, params, ok := h.searchInput(w, r)
	if !ok {
		return
	}

	list, err := h.service.Search(r.Context(), marketID, params)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "feed unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, shows.MarketShows{
		MarketID: marketID,
		Query:    params.Query,
		Shows:    list,
	})
}

type locationResponse struct {
	MarketID string                 `json:"market_id"`
	Query    string                 `json:"query"`
	Groups   []search.LocationGroup `json:"groups"`
}

// ShowsByLocation handles GET /shows/by-location: the same result set grouped
// by film title and cinema.
func (h *Handler) ShowsByLocation(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	marketID, params, ok := h.searchInput(w, r)
	if !ok {
		return
	}

	list, err := h.service.Search(r.Context(), marketID, params)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "feed unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, locationResponse{
		MarketID: marketID,
		Query:    params.Query,
		Groups:   search.ByLocation(list),
	})
}

// Markets handles GET /markets: the market directory.
func (h *Handler) Markets(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	summaries, err := h.service.Markets(r.Context())
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "market directory unavailable")
		return
	}
	if summaries == nil {
		summaries = []shows.MarketSummary{}
	}
	writeJSON(w, r, http.StatusOK, summaries)
}

// Availability handles GET /availability/{sessionID}: the probed seat
// classification for one session.
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	sessionID := strings.TrimPrefix(r.URL.Path, "/availability/")
	if sessionID == "" {
		writeJSON(w, r, http.StatusOK, h.service.Classifications())
		return
	}
	if strings.Contains(sessionID, "/") {
		writeError(w, r, http.StatusBadRequest, "session id required")
		return
	}

	availability, ok := h.service.Classification(sessionID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown session")
		return
	}
	writeJSON(w, r, http.StatusOK, availabilityResponse{
		SessionID:    sessionID,
		Availability: string(availability),
	})
}

// Statuses handles GET /statuses: the session's progress log.
func (h *Handler) Statuses(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	entries := h.service.Statuses()
	if entries == nil {
		entries = []string{}
	}
	writeJSON(w, r, http.StatusOK, statusesResponse{Statuses: entries})
}

// Health handles GET /health: liveness only.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Version: h.version})
}

// Ready handles GET /ready: readiness gated on the poller's recent health.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if h.poller == nil {
		writeJSON(w, r, http.StatusOK, readyResponse{Ready: true})
		return
	}

	status := h.poller.Status()
	resp := readyResponse{
		Ready:               status.IsReady(),
		ConsecutiveFailures: status.ConsecutiveFailures,
		LastError:           status.LastError,
	}
	code := http.StatusOK
	if !resp.Ready {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, r, code, resp)
}

// searchInput resolves the market and search parameters shared by the show
// endpoints. Reports false after writing an error response.
func (h *Handler) searchInput(w http.ResponseWriter, r *http.Request) (string, orchestrator.SearchParams, bool) {
	query := r.URL.Query()

	market := strings.TrimSpace(query.Get("m"))
	if market == "" {
		market = h.defaultMarket
	}
	marketID, err := h.service.ResolveMarket(r.Context(), market)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "unknown market")
		return "", orchestrator.SearchParams{}, false
	}

	params := orchestrator.SearchParams{Query: query.Get("q")}
	if raw := query.Get("n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "n must be a positive integer")
			return "", orchestrator.SearchParams{}, false
		}
		params.RequiredSeats = n
	}
	params.MinimumRowLabel = strings.ToUpper(strings.TrimSpace(query.Get("row")))

	return marketID, params, true
}
