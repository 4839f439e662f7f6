package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"medialens/internal/analytics"
	"medialens/internal/dataset"
	apierrors "medialens/internal/errors"
	"medialens/pkg/contracts/domain"
)

// DashboardQuery carries the four user-controlled parameters of every
// dashboard interaction: year range, outlet selection, topic selection and
// smoothing window.
type DashboardQuery struct {
	YearFrom int      `json:"year_from" validate:"required"`
	YearTo   int      `json:"year_to" validate:"required,gtefield=YearFrom"`
	Outlets  []string `json:"outlets"`
	Topics   []string `json:"topics"`
	Window   int      `json:"window" validate:"smoothing_window"`
}

// Meta describes the selectable parameter space to the frontend.
type Meta struct {
	Outlets    []string `json:"outlets"`
	Topics     []string `json:"topics"`
	Years      []int    `json:"years"`
	Windows    []int    `json:"windows"`
	SnapshotID string   `json:"snapshot_id"`
	LoadedAt   string   `json:"loaded_at"`
}

// DashboardService derives chart tables from the immutable Store per
// interaction. The Store is loaded once at startup; every method here
// recomputes its view from scratch, so there is no state to invalidate.
type DashboardService struct {
	store    *dataset.Store
	logger   *slog.Logger
	validate *validator.Validate
}

// NewDashboardService creates a dashboard service over a loaded store.
func NewDashboardService(store *dataset.Store, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	v := validator.New()
	// Window must be one of the discrete smoothing options.
	v.RegisterValidation("smoothing_window", func(fl validator.FieldLevel) bool {
		return domain.ValidSmoothingWindow(int(fl.Field().Int()))
	})
	return &DashboardService{
		store:    store,
		logger:   logger.With(slog.String("component", "dashboard_service")),
		validate: v,
	}
}

// Normalize fills defaults for unset query fields: the full observed year
// range, all outlets, all topics, no smoothing. Explicitly empty selections
// are preserved; an empty selection legitimately yields an empty chart.
func (s *DashboardService) Normalize(q DashboardQuery) DashboardQuery {
	first, last := s.store.YearBounds()
	if q.YearFrom == 0 {
		q.YearFrom = first
	}
	if q.YearTo == 0 {
		q.YearTo = last
	}
	if q.Outlets == nil {
		q.Outlets = s.store.Outlets()
	}
	if q.Topics == nil {
		q.Topics = s.store.Topics()
	}
	if q.Window == 0 {
		q.Window = 1
	}
	return q
}

func (s *DashboardService) validateQuery(q DashboardQuery) error {
	if err := s.validate.Struct(q); err != nil {
		var details []apierrors.ValidationError
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				details = append(details, apierrors.ValidationError{
					Field:   fe.Field(),
					Message: fmt.Sprintf("failed %q validation", fe.Tag()),
				})
			}
		}
		return apierrors.NewWithDetails(400, "VALIDATION_FAILED", "invalid dashboard query", details)
	}
	return nil
}

func (s *DashboardService) filter(q DashboardQuery) analytics.Filter {
	return analytics.Filter{
		YearFrom: q.YearFrom,
		YearTo:   q.YearTo,
		Outlets:  q.Outlets,
		Topics:   q.Topics,
	}
}

// Meta returns the selectable parameter space.
func (s *DashboardService) Meta(ctx context.Context) Meta {
	return Meta{
		Outlets:    s.store.Outlets(),
		Topics:     s.store.Topics(),
		Years:      s.store.Years(),
		Windows:    domain.SmoothingWindows,
		SnapshotID: s.store.SnapshotID(),
		LoadedAt:   s.store.LoadedAt().Format("2006-01-02T15:04:05Z"),
	}
}

// Summary computes the hero metrics for the current filter.
func (s *DashboardService) Summary(ctx context.Context, q DashboardQuery) (domain.SummaryStats, error) {
	if err := s.validateQuery(q); err != nil {
		return domain.SummaryStats{}, err
	}
	f := s.filter(q)
	tone := f.ToneVolume(s.store.Tone())
	volume := f.ToneVolume(s.store.Volume())
	share := f.TopicShare(s.store.TopicShare())

	years := make(map[int]struct{})
	for _, r := range tone {
		years[r.Year] = struct{}{}
	}

	stats := domain.SummaryStats{
		Outlets:    len(q.Outlets),
		Topics:     len(q.Topics),
		Years:      len(years),
		ToneRows:   len(tone),
		VolumeRows: len(volume),
		ShareRows:  len(share),
	}
	for y := range years {
		if stats.FirstYear == 0 || y < stats.FirstYear {
			stats.FirstYear = y
		}
		if y > stats.LastYear {
			stats.LastYear = y
		}
	}
	return stats, nil
}

// Heatmap computes the year x topic cell statistics.
func (s *DashboardService) Heatmap(ctx context.Context, q DashboardQuery) ([]domain.TopicYearCell, error) {
	if err := s.validateQuery(q); err != nil {
		return nil, err
	}
	tone := s.filter(q).ToneVolume(s.store.Tone())
	cells := analytics.TopicYearStats(tone)

	s.logger.DebugContext(ctx, "heatmap computed",
		slog.Int("rows_in", len(tone)),
		slog.Int("cells", len(cells)))
	return cells, nil
}

// ToneSeries computes the smoothed per-outlet tone trend.
func (s *DashboardService) ToneSeries(ctx context.Context, q DashboardQuery) ([]domain.SeriesPoint, error) {
	if err := s.validateQuery(q); err != nil {
		return nil, err
	}
	tone := s.filter(q).ToneVolume(s.store.Tone())
	smoothed := analytics.Smooth(tone, q.Window)
	return analytics.ToneSeriesByOutlet(smoothed), nil
}

// MonthlyTone computes the month-level tone roll-up per outlet.
func (s *DashboardService) MonthlyTone(ctx context.Context, q DashboardQuery) ([]domain.SeriesPoint, error) {
	if err := s.validateQuery(q); err != nil {
		return nil, err
	}
	tone := s.filter(q).ToneVolume(s.store.Tone())
	return analytics.MonthlyToneByOutlet(tone), nil
}

// TopicShare computes one outlet's monthly topic-share breakdown.
func (s *DashboardService) TopicShare(ctx context.Context, q DashboardQuery, outlet string) ([]domain.MonthlyShare, error) {
	if err := s.validateQuery(q); err != nil {
		return nil, err
	}
	if !contains(s.store.Outlets(), outlet) {
		return nil, apierrors.NotFoundError(fmt.Sprintf("outlet %q", outlet))
	}
	share := s.filter(q).TopicShare(s.store.TopicShare())
	return analytics.MonthlyTopicShare(share, outlet), nil
}

// DeepDive computes the per-topic outlet comparison: smoothed tone series
// plus mean volume per (year, outlet).
func (s *DashboardService) DeepDive(ctx context.Context, q DashboardQuery, topic string) (domain.DeepDive, error) {
	if err := s.validateQuery(q); err != nil {
		return domain.DeepDive{}, err
	}
	if !contains(s.store.Topics(), topic) {
		return domain.DeepDive{}, apierrors.NotFoundError(fmt.Sprintf("topic %q", topic))
	}

	f := s.filter(q)
	tone := analytics.ForTopic(f.ToneVolume(s.store.Tone()), topic)
	volume := analytics.ForTopic(f.ToneVolume(s.store.Volume()), topic)

	return domain.DeepDive{
		Topic:        topic,
		ToneSeries:   analytics.ToneSeriesByOutlet(analytics.Smooth(tone, q.Window)),
		VolumeByYear: analytics.YearlyOutletTone(volume),
	}, nil
}

// Rankings computes the yearly outlet tone means with competition ranks.
func (s *DashboardService) Rankings(ctx context.Context, q DashboardQuery) ([]domain.OutletYearRank, error) {
	if err := s.validateQuery(q); err != nil {
		return nil, err
	}
	tone := s.filter(q).ToneVolume(s.store.Tone())
	return analytics.RankOutlets(analytics.YearlyOutletTone(tone)), nil
}

// Deviations computes each outlet's tone deviation from the topic average.
func (s *DashboardService) Deviations(ctx context.Context, q DashboardQuery) ([]domain.OutletDeviation, error) {
	if err := s.validateQuery(q); err != nil {
		return nil, err
	}
	tone := s.filter(q).ToneVolume(s.store.Tone())
	return analytics.OutletDeviations(tone), nil
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}
