package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/execdash/internal/analytics"
	"github.com/emiliopalmerini/execdash/internal/domain"
)

const defaultDateRange = 30

// Metric labels used in error responses.
const (
	metricKPIs      = "executive KPIs"
	metricRevenue   = "revenue data"
	metricChannels  = "channel data"
	metricMarketing = "marketing data"
	metricInventory = "inventory data"
	metricFunnel    = "funnel data"
	metricStatus    = "warehouse status"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	days := intParam(r, "dateRange", defaultDateRange, s.limits.MaxWindowDays)

	kpis, err := s.svc.ExecutiveKPIs(r.Context(), days)
	if err != nil {
		s.fail(w, r, metricKPIs, err)
		return
	}
	writeJSON(w, http.StatusOK, kpis)
}

func (s *Server) handleRevenue(w http.ResponseWriter, r *http.Request) {
	days := intParam(r, "dateRange", defaultDateRange, s.limits.MaxWindowDays)

	points, err := s.svc.RevenueComparison(r.Context(), days)
	if err != nil {
		s.fail(w, r, metricRevenue, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(points))
}

func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r, "limit", analytics.DefaultChannelLimit, s.limits.MaxChannels)

	channels, err := s.svc.TopChannels(r.Context(), limit)
	if err != nil {
		s.fail(w, r, metricChannels, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(channels))
}

func (s *Server) handleMarketing(w http.ResponseWriter, r *http.Request) {
	metrics, err := s.svc.MarketingPerformance(r.Context())
	if err != nil {
		s.fail(w, r, metricMarketing, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(metrics))
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	inventory, err := s.svc.InventoryValue(r.Context())
	if err != nil {
		s.fail(w, r, metricInventory, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(inventory))
}

func (s *Server) handleFunnel(w http.ResponseWriter, r *http.Request) {
	stages, err := s.svc.ConversionFunnel(r.Context())
	if err != nil {
		s.fail(w, r, metricFunnel, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(stages))
}

func (s *Server) handleWarehouseStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.svc.WarehouseStatus(r.Context())
	if err != nil {
		s.fail(w, r, metricStatus, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// fail logs err with the request logger and answers 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, metric string, err error) {
	ev := zerolog.Ctx(r.Context()).Error().Err(err).Str("metric", metric)
	var qe *domain.QueryError
	if errors.As(err, &qe) {
		ev = ev.Str("op", qe.Op).Interface("params", qe.Params)
	}
	ev.Msg("request failed")

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "Failed to fetch " + metric,
		Details: err.Error(),
	})
}

// intParam reads a positive integer query parameter. Missing, malformed or
// non-positive values yield def; values above ceiling are clamped.
func intParam(r *http.Request, name string, def, ceiling int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v <= 0 {
		v = def
	}
	if ceiling > 0 && v > ceiling {
		v = ceiling
	}
	return v
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
