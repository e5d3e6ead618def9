package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"berostock/internal/domain/reports"
)

var _ reports.SummaryStore = (*ReportRepo)(nil)

// ReportRepo answers aggregate queries over the sale records.
type ReportRepo struct {
	txManager *TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// TotalBetween aggregates sales with date_of_sale in [from, to).
func (r *ReportRepo) TotalBetween(ctx context.Context, from, to time.Time) (*reports.Totals, error) {
	sql, args, err := squirrel.Select(
		"COUNT(*)",
		"COALESCE(SUM(total_price), 0)",
		"COALESCE(SUM(total_profit), 0)",
	).
		From(saleTable).
		Where(squirrel.GtOrEq{"date_of_sale": from}).
		Where(squirrel.Lt{"date_of_sale": to}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build aggregates: %w", err)
	}

	var totals reports.Totals
	querier := r.txManager.GetQuerier(ctx)
	err = querier.QueryRow(ctx, sql, args...).
		Scan(&totals.Count, &totals.Sales, &totals.Profit)
	if err != nil {
		return nil, fmt.Errorf("aggregate sales: %w", err)
	}
	return &totals, nil
}
