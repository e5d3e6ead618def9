package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"berostock/internal/core/apperror"
	"berostock/internal/core/id"
	"berostock/internal/domain/catalog/product"
)

const productTable = "cat_products"

var productColumns = []string{
	"id", "product_id", "created_by", "name", "quantity",
	"cost_price", "selling_price", "supplier", "category",
	"description", "image_url", "deletion_mark", "version",
	"created_at", "updated_at",
}

var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	txManager *TxManager
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *TxManager) *ProductRepo {
	return &ProductRepo{txManager: txManager}
}

func (r *ProductRepo) baseSelect() squirrel.SelectBuilder {
	return squirrel.Select(productColumns...).
		From(productTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	sql, args, err := squirrel.Insert(productTable).
		Columns(productColumns...).
		Values(
			p.ID, p.PublicID, p.CreatedBy, p.Name, p.Quantity,
			p.CostPrice, p.SellingPrice, p.Supplier, p.Category,
			p.Description, p.ImageURL, p.DeletionMark, p.Version,
			p.CreatedAt, p.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", productTable, err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	return r.getOne(ctx, squirrel.Eq{"id": productID}, productID.String())
}

func (r *ProductRepo) GetByPublicID(ctx context.Context, publicID id.ID) (*product.Product, error) {
	return r.getOne(ctx, squirrel.Eq{"product_id": publicID}, publicID.String())
}

func (r *ProductRepo) getOne(ctx context.Context, where squirrel.Eq, ref string) (*product.Product, error) {
	sql, args, err := r.baseSelect().
		Where(where).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var p product.Product
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", ref)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) GetByIDs(ctx context.Context, ids []id.ID) (map[id.ID]*product.Product, error) {
	result := make(map[id.ID]*product.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var items []*product.Product
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	for _, p := range items {
		result[p.ID] = p
	}
	return result, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	sql, args, err := squirrel.Update(productTable).
		Set("name", p.Name).
		Set("quantity", p.Quantity).
		Set("cost_price", p.CostPrice).
		Set("selling_price", p.SellingPrice).
		Set("supplier", p.Supplier).
		Set("category", p.Category).
		Set("description", p.Description).
		Set("image_url", p.ImageURL).
		Set("deletion_mark", p.DeletionMark).
		Set("version", p.Version).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID}).
		Where(squirrel.Eq{"version": p.Version - 1}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", productTable, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(productTable, p.ID)
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, productID id.ID) error {
	sql, args, err := squirrel.Update(productTable).
		Set("deletion_mark", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": productID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", productTable, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context, filter product.ListFilter) (product.ListResult, error) {
	result := product.ListResult{Limit: filter.Limit, Offset: filter.Offset}

	base := r.buildProductFilter(filter)

	countSQL, countArgs, err := squirrel.Select("COUNT(*)").
		From(productTable).
		Where(base).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count products: %w", err)
	}

	orderBy := "created_at DESC"
	if filter.OrderBy != "" {
		orderBy = filter.OrderBy
	}

	q := r.baseSelect().Where(base).OrderBy(orderBy)
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build select: %w", err)
	}

	var items []*product.Product
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return result, fmt.Errorf("list products: %w", err)
	}
	result.Items = items
	return result, nil
}

func (r *ProductRepo) buildProductFilter(filter product.ListFilter) squirrel.And {
	conds := squirrel.And{squirrel.Eq{"deletion_mark": false}}
	if filter.Search != "" {
		conds = append(conds, squirrel.ILike{"name": "%" + filter.Search + "%"})
	}
	if filter.Category != nil {
		conds = append(conds, squirrel.Eq{"category": *filter.Category})
	}
	if filter.Supplier != nil {
		conds = append(conds, squirrel.Eq{"supplier": *filter.Supplier})
	}
	if filter.DateFrom != nil {
		conds = append(conds, squirrel.GtOrEq{"created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		conds = append(conds, squirrel.Lt{"created_at": *filter.DateTo})
	}
	return conds
}

// DecrementStock subtracts qty, refusing to take stock below zero. The
// condition and the write happen in one statement so concurrent sales
// cannot oversell.
func (r *ProductRepo) DecrementStock(ctx context.Context, productID id.ID, qty int64) (bool, error) {
	sql, args, err := squirrel.Update(productTable).
		Set("quantity", squirrel.Expr("quantity - ?", qty)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": productID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.GtOrEq{"quantity": qty}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build decrement: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProductRepo) IncrementStock(ctx context.Context, productID id.ID, qty int64) (bool, error) {
	sql, args, err := squirrel.Update(productTable).
		Set("quantity", squirrel.Expr("quantity + ?", qty)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": productID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build increment: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("increment stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
