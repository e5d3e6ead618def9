package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"berostock/internal/core/apperror"
	"berostock/internal/core/id"
	"berostock/internal/domain/sales"
)

const (
	saleTable     = "doc_sales"
	saleLineTable = "doc_sale_lines"
)

var saleColumns = []string{
	"id", "sale_id", "created_by", "customer_name",
	"total_price", "total_profit", "mode_of_payment",
	"version", "date_of_sale", "updated_at",
}

var saleLineColumns = []string{
	"line_id", "sale_ref", "line_no", "product_id", "quantity",
	"cost_price", "selling_price", "amount", "profit",
}

var _ sales.SaleStore = (*SaleRepo)(nil)

// SaleRepo implements sales.SaleStore. Sale headers and lines live in
// separate tables; every write of a sale rewrites its full line set.
type SaleRepo struct {
	txManager *TxManager
}

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txManager *TxManager) *SaleRepo {
	return &SaleRepo{txManager: txManager}
}

// saleLineRow carries the parent reference alongside the line for
// scanning batched line queries.
type saleLineRow struct {
	SaleRef id.ID `db:"sale_ref"`
	sales.SaleLine
}

func (r *SaleRepo) baseSelect() squirrel.SelectBuilder {
	return squirrel.Select(saleColumns...).
		From(saleTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *SaleRepo) Create(ctx context.Context, sale *sales.Sale) error {
	sql, args, err := squirrel.Insert(saleTable).
		Columns(saleColumns...).
		Values(
			sale.ID, sale.SaleID, sale.CreatedBy, sale.CustomerName,
			sale.TotalPrice, sale.TotalProfit, sale.PaymentMode,
			sale.Version, sale.DateOfSale, sale.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", saleTable, err)
	}

	return r.insertLines(ctx, sale)
}

func (r *SaleRepo) insertLines(ctx context.Context, sale *sales.Sale) error {
	if len(sale.Lines) == 0 {
		return nil
	}

	q := squirrel.Insert(saleLineTable).
		Columns(saleLineColumns...).
		PlaceholderFormat(squirrel.Dollar)
	for _, line := range sale.Lines {
		q = q.Values(
			line.LineID, sale.ID, line.LineNo, line.ProductID, line.Quantity,
			line.CostPrice, line.SellingPrice, line.Amount, line.Profit,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", saleLineTable, err)
	}
	return nil
}

// GetByRef resolves a read reference: the sale's storage key or public
// identifier, falling back to the most recent sale containing a
// matching product.
func (r *SaleRepo) GetByRef(ctx context.Context, ref id.ID) (*sales.Sale, error) {
	sale, err := r.GetByKey(ctx, ref)
	if err != nil {
		if apperror.IsNotFound(err) {
			return r.getByProductRef(ctx, ref)
		}
		return nil, err
	}
	return sale, nil
}

// GetByKey matches the sale's storage key or public identifier only.
// Mutations resolve through it so a product reference never selects a
// sale to change.
func (r *SaleRepo) GetByKey(ctx context.Context, ref id.ID) (*sales.Sale, error) {
	sql, args, err := r.baseSelect().
		Where(squirrel.Or{
			squirrel.Eq{"id": ref},
			squirrel.Eq{"sale_id": ref},
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var sale sales.Sale
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &sale, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale", ref.String())
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	if err := r.loadLines(ctx, []*sales.Sale{&sale}); err != nil {
		return nil, err
	}
	return &sale, nil
}

// getByProductRef is the lookup fallback: a reference that matches no
// sale key may be a product reference, resolving to the most recent
// sale containing that product.
func (r *SaleRepo) getByProductRef(ctx context.Context, ref id.ID) (*sales.Sale, error) {
	sql, args, err := r.baseSelect().
		Where(squirrel.Expr(
			"id IN (SELECT l.sale_ref FROM "+saleLineTable+" l"+
				" JOIN "+productTable+" p ON l.product_id = p.id"+
				" WHERE p.id = ? OR p.product_id = ?)",
			ref, ref,
		)).
		OrderBy("date_of_sale DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var sale sales.Sale
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &sale, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale", ref.String())
		}
		return nil, fmt.Errorf("get sale by product: %w", err)
	}

	if err := r.loadLines(ctx, []*sales.Sale{&sale}); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *SaleRepo) loadLines(ctx context.Context, items []*sales.Sale) error {
	if len(items) == 0 {
		return nil
	}

	refs := make([]id.ID, len(items))
	byRef := make(map[id.ID]*sales.Sale, len(items))
	for i, sale := range items {
		refs[i] = sale.ID
		byRef[sale.ID] = sale
	}

	sql, args, err := squirrel.Select(saleLineColumns...).
		From(saleLineTable).
		Where(squirrel.Eq{"sale_ref": refs}).
		OrderBy("sale_ref", "line_no").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build select lines: %w", err)
	}

	var rows []saleLineRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return fmt.Errorf("load sale lines: %w", err)
	}
	for _, row := range rows {
		sale := byRef[row.SaleRef]
		sale.Lines = append(sale.Lines, row.SaleLine)
	}
	return nil
}

func (r *SaleRepo) Update(ctx context.Context, sale *sales.Sale) error {
	sql, args, err := squirrel.Update(saleTable).
		Set("customer_name", sale.CustomerName).
		Set("total_price", sale.TotalPrice).
		Set("total_profit", sale.TotalProfit).
		Set("mode_of_payment", sale.PaymentMode).
		Set("version", sale.Version).
		Set("updated_at", sale.UpdatedAt).
		Where(squirrel.Eq{"id": sale.ID}).
		Where(squirrel.Eq{"version": sale.Version - 1}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", saleTable, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(saleTable, sale.ID)
	}

	if err := r.deleteLines(ctx, sale.ID); err != nil {
		return err
	}
	return r.insertLines(ctx, sale)
}

func (r *SaleRepo) deleteLines(ctx context.Context, saleID id.ID) error {
	sql, args, err := squirrel.Delete(saleLineTable).
		Where(squirrel.Eq{"sale_ref": saleID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete lines: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete %s: %w", saleLineTable, err)
	}
	return nil
}

func (r *SaleRepo) Delete(ctx context.Context, saleID id.ID) error {
	if err := r.deleteLines(ctx, saleID); err != nil {
		return err
	}

	sql, args, err := squirrel.Delete(saleTable).
		Where(squirrel.Eq{"id": saleID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", saleTable, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("sale", saleID.String())
	}
	return nil
}

func (r *SaleRepo) List(ctx context.Context, filter sales.ListFilter) (*sales.ListResult, error) {
	result := &sales.ListResult{}
	conds := buildSaleFilter(filter)
	querier := r.txManager.GetQuerier(ctx)

	countSQL, countArgs, err := squirrel.Select("COUNT(*)").
		From(saleTable).
		Where(conds).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.Total); err != nil {
		return nil, fmt.Errorf("count sales: %w", err)
	}

	q := r.baseSelect().
		Where(conds).
		OrderBy("date_of_sale DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
		if filter.Page > 1 {
			q = q.Offset(uint64((filter.Page - 1) * filter.Limit))
		}
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var items []*sales.Sale
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if err := r.loadLines(ctx, items); err != nil {
		return nil, err
	}
	result.Sales = items
	return result, nil
}

func (r *SaleRepo) All(ctx context.Context, filter sales.ListFilter) ([]*sales.Sale, error) {
	sql, args, err := r.baseSelect().
		Where(buildSaleFilter(filter)).
		OrderBy("date_of_sale DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var items []*sales.Sale
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if err := r.loadLines(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func buildSaleFilter(filter sales.ListFilter) squirrel.And {
	conds := squirrel.And{}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"customer_name": pattern},
			squirrel.Expr(
				"id IN (SELECT l.sale_ref FROM "+saleLineTable+" l JOIN "+productTable+" p ON l.product_id = p.id WHERE p.name ILIKE ?)",
				pattern,
			),
		})
	}
	if filter.PaymentMode != "" {
		conds = append(conds, squirrel.Eq{"mode_of_payment": filter.PaymentMode})
	}
	if !id.IsNil(filter.CreatedBy) {
		conds = append(conds, squirrel.Eq{"created_by": filter.CreatedBy})
	}
	if !id.IsNil(filter.ProductID) {
		// The reference may be either the product's storage key or its
		// public identifier.
		conds = append(conds, squirrel.Expr(
			"id IN (SELECT l.sale_ref FROM "+saleLineTable+" l JOIN "+productTable+" p ON l.product_id = p.id WHERE p.id = ? OR p.product_id = ?)",
			filter.ProductID, filter.ProductID,
		))
	}
	if filter.DateFrom != nil {
		conds = append(conds, squirrel.GtOrEq{"date_of_sale": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		conds = append(conds, squirrel.Lt{"date_of_sale": *filter.DateTo})
	}
	return conds
}
