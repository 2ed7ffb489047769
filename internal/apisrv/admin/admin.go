package admin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/nutrishop/shop-manager/internal/analytics"
	"github.com/nutrishop/shop-manager/internal/dependency"
	"github.com/nutrishop/shop-manager/internal/dto"
	gerr "github.com/nutrishop/shop-manager/internal/errors"
	"github.com/nutrishop/shop-manager/internal/metrics"
)

// Server implements handlers for admin.
type Server struct {
	analytics dependency.Analytics
	metrics   *metrics.Collector
}

// New creates a new server with admin handlers. m may be nil.
func New(a dependency.Analytics, m *metrics.Collector) *Server {
	return &Server{
		analytics: a,
		metrics:   m,
	}
}

// Routes mounts the admin report endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/analytics", s.GetAnalytics)
	r.Get("/stats", s.GetStats)
}

func (s *Server) observe(report string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.ObserveReport(report, start, err)
	}
}

// GetAnalytics serves the range based analytics report.
func (s *Server) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := r.URL.Query().Get("range")
	rng, ok := analytics.ParseRange(token)
	if !ok {
		slog.Default().DebugContext(ctx, "range normalized to default",
			slog.String("range", token),
			slog.String("default", string(rng)),
		)
	}

	start := time.Now()
	rep, err := s.analytics.Analytics(ctx, rng)
	s.observe(metrics.ReportAnalytics, start, err)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't compute analytics",
			slog.String("range", string(rng)),
			slog.String("err", err.Error()),
		)
		gerr.Render(w, r, gerr.ErrAnalyticsFailed)
		return
	}
	render.JSON(w, r, dto.ConvertEntityAnalyticsToDto(rep))
}

// GetStats serves the this month versus last month dashboard.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	rep, err := s.analytics.Stats(ctx)
	s.observe(metrics.ReportStats, start, err)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't compute stats",
			slog.String("err", err.Error()),
		)
		gerr.Render(w, r, gerr.ErrStatsFailed)
		return
	}
	render.JSON(w, r, dto.ConvertEntityStatsToDto(rep))
}
