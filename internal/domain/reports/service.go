// Package reports computes sales aggregates for dashboards.
package reports

import (
	"context"
	"time"

	"berostock/internal/core/appctx"
	"berostock/internal/core/types"
)

// Totals are aggregate sale figures over a period.
type Totals struct {
	Count  int64       `json:"count"`
	Sales  types.Money `json:"total_sales"`
	Profit types.Money `json:"total_profit"`
}

// SummaryStore answers aggregate queries over the sale records.
type SummaryStore interface {
	// TotalBetween aggregates sales whose date_of_sale falls in
	// [from, to).
	TotalBetween(ctx context.Context, from, to time.Time) (*Totals, error)
}

// Summary holds daily and month-to-date figures. Profit values are
// only set for privileged callers.
type Summary struct {
	Date          string       `json:"date"`
	DailyCount    int64        `json:"daily_count"`
	DailySales    types.Money  `json:"daily_sales"`
	DailyProfit   *types.Money `json:"daily_profit,omitempty"`
	MonthlyCount  int64        `json:"monthly_count"`
	MonthlySales  types.Money  `json:"monthly_sales"`
	MonthlyProfit *types.Money `json:"monthly_profit,omitempty"`
}

// Service computes sales summaries.
type Service struct {
	store SummaryStore
	now   func() time.Time
}

func NewService(store SummaryStore) *Service {
	return &Service{store: store, now: time.Now}
}

// Summary returns today's and the current month's totals. Day and
// month boundaries are taken in UTC.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	daily, err := s.store.TotalBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	monthly, err := s.store.TotalBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Date:         dayStart.Format("2006-01-02"),
		DailyCount:   daily.Count,
		DailySales:   daily.Sales,
		MonthlyCount: monthly.Count,
		MonthlySales: monthly.Sales,
	}
	if appctx.GetRole(ctx).IsPrivileged() {
		dailyProfit := daily.Profit
		monthlyProfit := monthly.Profit
		summary.DailyProfit = &dailyProfit
		summary.MonthlyProfit = &monthlyProfit
	}
	return summary, nil
}
