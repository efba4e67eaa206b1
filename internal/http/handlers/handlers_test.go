package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pancake-service/internal/domain/shows"
	"pancake-service/internal/orchestrator"
	"pancake-service/internal/poller"
	"pancake-service/internal/seats"
)

type stubService struct {
	searchFn        func(marketID string, params orchestrator.SearchParams) ([]shows.Show, error)
	marketsFn       func() ([]shows.MarketSummary, error)
	statuses        []string
	classifications map[string]seats.Availability

	lastMarket string
	lastParams orchestrator.SearchParams
}

func (s *stubService) ResolveMarket(ctx context.Context, nameOrID string) (string, error) {
	switch nameOrID {
	case "0000", "Austin", "austin":
		return "0000", nil
	case "1600":
		return "1600", nil
	}
	return "", errors.New("unknown market")
}

func (s *stubService) Markets(ctx context.Context) ([]shows.MarketSummary, error) {
	if s.marketsFn != nil {
		return s.marketsFn()
	}
	return []shows.MarketSummary{{Name: "Austin", ID: "0000"}}, nil
}

func (s *stubService) Search(ctx context.Context, marketID string, params orchestrator.SearchParams) ([]shows.Show, error) {
	s.lastMarket = marketID
	s.lastParams = params
	if s.searchFn != nil {
		return s.searchFn(marketID, params)
	}
	return []shows.Show{}, nil
}

func (s *stubService) Statuses() []string { return s.statuses }

func (s *stubService) Classification(sessionID string) (seats.Availability, bool) {
	avail, ok := s.classifications[sessionID]
	return avail, ok
}

func (s *stubService) Classifications() map[string]seats.Availability {
	if s.classifications == nil {
		return map[string]seats.Availability{}
	}
	return s.classifications
}

type stubPoller struct{ status poller.Status }

func (s stubPoller) Status() poller.Status { return s.status }

func get(t *testing.T, h *Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestShows(t *testing.T) {
	svc := &stubService{searchFn: func(marketID string, params orchestrator.SearchParams) ([]shows.Show, error) {
		return []shows.Show{{Title: "Master Pancake: The Room", Status: shows.StatusOnSale}}, nil
	}}
	h := New(svc, nil, "0000", "test")

	rec := get(t, h, "/shows?q=pancake")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode[shows.MarketShows](t, rec)
	if body.MarketID != "0000" || len(body.Shows) != 1 {
		t.Errorf("body = %+v", body)
	}
	if svc.lastParams.Query != "pancake" {
		t.Errorf("query = %q", svc.lastParams.Query)
	}
}

func TestShowsDefaultsMarket(t *testing.T) {
	svc := &stubService{}
	h := New(svc, nil, "0000", "test")

	if rec := get(t, h, "/shows"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.lastMarket != "0000" {
		t.Errorf("market = %q, want the configured default", svc.lastMarket)
	}
}

func TestShowsResolvesMarketName(t *testing.T) {
	svc := &stubService{}
	h := New(svc, nil, "0000", "test")

	if rec := get(t, h, "/shows?m=austin"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.lastMarket != "0000" {
		t.Errorf("market = %q", svc.lastMarket)
	}
}

func TestShowsUnknownMarket(t *testing.T) {
	h := New(&stubService{}, nil, "0000", "test")
	if rec := get(t, h, "/shows?m=nowhere"); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestShowsSeatParams(t *testing.T) {
	svc := &stubService{}
	h := New(svc, nil, "0000", "test")

	if rec := get(t, h, "/shows?n=4&row=f"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.lastParams.RequiredSeats != 4 {
		t.Errorf("RequiredSeats = %d", svc.lastParams.RequiredSeats)
	}
	if svc.lastParams.MinimumRowLabel != "F" {
		t.Errorf("MinimumRowLabel = %q, want uppercased", svc.lastParams.MinimumRowLabel)
	}
}

func TestShowsRejectsBadSeatCount(t *testing.T) {
	h := New(&stubService{}, nil, "0000", "test")
	for _, raw := range []string{"zero", "0", "-2"} {
		if rec := get(t, h, "/shows?n="+raw); rec.Code != http.StatusBadRequest {
			t.Errorf("n=%q status = %d, want 400", raw, rec.Code)
		}
	}
}

func TestShowsFeedUnavailable(t *testing.T) {
	svc := &stubService{searchFn: func(string, orchestrator.SearchParams) ([]shows.Show, error) {
		return nil, errors.New("connection refused")
	}}
	h := New(svc, nil, "0000", "test")

	if rec := get(t, h, "/shows"); rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestShowsMethodNotAllowed(t *testing.T) {
	h := New(&stubService{}, nil, "0000", "test")
	req := httptest.NewRequest(http.MethodPost, "/shows", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodGet {
		t.Errorf("Allow = %q", allow)
	}
}

func TestShowsByLocationGroups(t *testing.T) {
	svc := &stubService{searchFn: func(string, orchestrator.SearchParams) ([]shows.Show, error) {
		return []shows.Show{
			{Title: "Master Pancake: The Room", Cinema: "Alamo Drafthouse Ritz", Time: "7:00p"},
			{Title: "Master Pancake: The Room", Cinema: "Alamo Drafthouse Ritz", Time: "10:00p"},
		}, nil
	}}
	h := New(svc, nil, "0000", "test")

	rec := get(t, h, "/shows/by-location")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode[locationResponse](t, rec)
	if len(body.Groups) != 1 || len(body.Groups[0].Shows) != 2 {
		t.Errorf("groups = %+v", body.Groups)
	}
}

func TestMarkets(t *testing.T) {
	h := New(&stubService{}, nil, "0000", "test")
	rec := get(t, h, "/markets")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode[[]shows.MarketSummary](t, rec)
	if len(body) != 1 || body[0].ID != "0000" {
		t.Errorf("markets = %v", body)
	}
}

func TestMarketsUnavailable(t *testing.T) {
	svc := &stubService{marketsFn: func() ([]shows.MarketSummary, error) {
		return nil, errors.New("directory down")
	}}
	h := New(svc, nil, "0000", "test")
	if rec := get(t, h, "/markets"); rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestAvailabilityKnownSession(t *testing.T) {
	svc := &stubService{classifications: map[string]seats.Availability{"55555": seats.SoldOut}}
	h := New(svc, nil, "0000", "test")

	rec := get(t, h, "/availability/55555")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode[availabilityResponse](t, rec)
	if body.SessionID != "55555" || body.Availability != "sold-out" {
		t.Errorf("body = %+v", body)
	}
}

func TestAvailabilityUnknownSession(t *testing.T) {
	h := New(&stubService{}, nil, "0000", "test")
	if rec := get(t, h, "/availability/99999"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestAvailabilityListsAll(t *testing.T) {
	svc := &stubService{classifications: map[string]seats.Availability{
		"1": seats.Available,
		"2": seats.SoldOut,
	}}
	h := New(svc, nil, "0000", "test")

	rec := get(t, h, "/availability/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode[map[string]string](t, rec)
	if len(body) != 2 || body["2"] != "sold-out" {
		t.Errorf("body = %v", body)
	}
}

func TestStatuses(t *testing.T) {
	svc := &stubService{statuses: []string{"Fetching Market Data... done."}}
	h := New(svc, nil, "0000", "test")

	rec := get(t, h, "/statuses")
	body := decode[statusesResponse](t, rec)
	if len(body.Statuses) != 1 || body.Statuses[0] != "Fetching Market Data... done." {
		t.Errorf("body = %+v", body)
	}
}

func TestStatusesEmptyIsList(t *testing.T) {
	h := New(&stubService{}, nil, "0000", "test")
	rec := get(t, h, "/statuses")
	body := decode[statusesResponse](t, rec)
	if body.Statuses == nil {
		t.Error("statuses should serialize as an empty list, not null")
	}
}

func TestHealth(t *testing.T) {
	h := New(&stubService{}, nil, "0000", "1.2.3")
	rec := get(t, h, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode[healthResponse](t, rec)
	if body.Status != "ok" || body.Version != "1.2.3" {
		t.Errorf("body = %+v", body)
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name     string
		status   poller.Status
		wantCode int
	}{
		{
			name:     "ready after success",
			status:   poller.Status{LastSuccess: time.Now()},
			wantCode: http.StatusOK,
		},
		{
			name:     "not ready before first success",
			status:   poller.Status{},
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name:     "not ready after repeated failures",
			status:   poller.Status{LastSuccess: time.Now(), ConsecutiveFailures: 5, LastError: "feed down"},
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := New(&stubService{}, stubPoller{status: tc.status}, "0000", "test")
			if rec := get(t, h, "/ready"); rec.Code != tc.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantCode)
			}
		})
	}
}
