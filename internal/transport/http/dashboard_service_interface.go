package http

import (
	"context"

	"medialens/internal/services"
	"medialens/pkg/contracts/domain"
)

// DashboardServiceInterface is what the dashboard handler needs from the
// service layer; tests substitute a stub.
type DashboardServiceInterface interface {
	Normalize(q services.DashboardQuery) services.DashboardQuery
	Meta(ctx context.Context) services.Meta
	Summary(ctx context.Context, q services.DashboardQuery) (domain.SummaryStats, error)
	Heatmap(ctx context.Context, q services.DashboardQuery) ([]domain.TopicYearCell, error)
	ToneSeries(ctx context.Context, q services.DashboardQuery) ([]domain.SeriesPoint, error)
	MonthlyTone(ctx context.Context, q services.DashboardQuery) ([]domain.SeriesPoint, error)
	TopicShare(ctx context.Context, q services.DashboardQuery, outlet string) ([]domain.MonthlyShare, error)
	DeepDive(ctx context.Context, q services.DashboardQuery, topic string) (domain.DeepDive, error)
	Rankings(ctx context.Context, q services.DashboardQuery) ([]domain.OutletYearRank, error)
	Deviations(ctx context.Context, q services.DashboardQuery) ([]domain.OutletDeviation, error)
}
