package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "medialens/internal/errors"
	"medialens/internal/services"
)

// DashboardHandler serves the derived chart tables to the dashboard
// frontend.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/meta", h.GetMeta)
	r.Get("/summary", h.GetSummary)
	r.Get("/heatmap", h.GetHeatmap)
	r.Get("/tone-series", h.GetToneSeries)
	r.Get("/monthly-tone", h.GetMonthlyTone)
	r.Get("/rankings", h.GetRankings)
	r.Get("/deviations", h.GetDeviations)

	r.Route("/topic-share/{outlet}", func(r chi.Router) {
		r.Use(h.OutletCtx)
		r.Get("/", h.GetTopicShare)
	})
	r.Route("/topics/{topic}/deep-dive", func(r chi.Router) {
		r.Use(h.TopicCtx)
		r.Get("/", h.GetDeepDive)
	})

	return r
}

// OutletCtx validates the outlet URL parameter.
func (h *DashboardHandler) OutletCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "outlet") == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("outlet", "Outlet is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TopicCtx validates the topic URL parameter.
func (h *DashboardHandler) TopicCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "topic") == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("topic", "Topic is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// parseQuery extracts the dashboard parameters from the query string.
// Absent parameters default to the full dataset; parameters that are present
// but empty mean an explicitly empty selection.
func (h *DashboardHandler) parseQuery(r *http.Request) (services.DashboardQuery, error) {
	var q services.DashboardQuery
	values := r.URL.Query()

	if raw := values.Get("from"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return q, apierrors.ErrValidation("from", "must be an integer year")
		}
		q.YearFrom = year
	}
	if raw := values.Get("to"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return q, apierrors.ErrValidation("to", "must be an integer year")
		}
		q.YearTo = year
	}
	if values.Has("outlets") {
		q.Outlets = splitList(values.Get("outlets"))
	}
	if values.Has("topics") {
		q.Topics = splitList(values.Get("topics"))
	}
	if raw := values.Get("window"); raw != "" {
		window, err := strconv.Atoi(raw)
		if err != nil {
			return q, apierrors.ErrValidation("window", "must be an integer day count")
		}
		q.Window = window
	}

	return h.service.Normalize(q), nil
}

// splitList parses a comma-separated selection. An empty string is an empty
// selection, not "everything".
func splitList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetMeta handles GET /api/dashboard/meta.
func (h *DashboardHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Meta(r.Context()))
}

// GetSummary handles GET /api/dashboard/summary.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	stats, err := h.service.Summary(r.Context(), q)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, stats)
}

// GetHeatmap handles GET /api/dashboard/heatmap.
func (h *DashboardHandler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	cells, err := h.service.Heatmap(r.Context(), q)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, cells)
}

// GetToneSeries handles GET /api/dashboard/tone-series.
func (h *DashboardHandler) GetToneSeries(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	points, err := h.service.ToneSeries(r.Context(), q)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, points)
}

// GetMonthlyTone handles GET /api/dashboard/monthly-tone.
func (h *DashboardHandler) GetMonthlyTone(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	points, err := h.service.MonthlyTone(r.Context(), q)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, points)
}

// GetTopicShare handles GET /api/dashboard/topic-share/{outlet}.
func (h *DashboardHandler) GetTopicShare(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	shares, err := h.service.TopicShare(r.Context(), q, chi.URLParam(r, "outlet"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, shares)
}

// GetDeepDive handles GET /api/dashboard/topics/{topic}/deep-dive.
func (h *DashboardHandler) GetDeepDive(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	dive, err := h.service.DeepDive(r.Context(), q, chi.URLParam(r, "topic"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, dive)
}

// GetRankings handles GET /api/dashboard/rankings.
func (h *DashboardHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	ranks, err := h.service.Rankings(r.Context(), q)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, ranks)
}

// GetDeviations handles GET /api/dashboard/deviations.
func (h *DashboardHandler) GetDeviations(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	devs, err := h.service.Deviations(r.Context(), q)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, devs)
}
