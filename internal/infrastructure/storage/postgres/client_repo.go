package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"berostock/internal/core/apperror"
	"berostock/internal/core/id"
	"berostock/internal/domain/catalog/client"
)

const clientTable = "cat_clients"

var clientColumns = []string{
	"id", "name", "email", "phone", "address",
	"deletion_mark", "version", "created_at", "updated_at",
}

var _ client.Repository = (*ClientRepo)(nil)

// ClientRepo implements client.Repository.
type ClientRepo struct {
	txManager *TxManager
}

// NewClientRepo creates a new client repository.
func NewClientRepo(txManager *TxManager) *ClientRepo {
	return &ClientRepo{txManager: txManager}
}

func (r *ClientRepo) baseSelect() squirrel.SelectBuilder {
	return squirrel.Select(clientColumns...).
		From(clientTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *ClientRepo) Create(ctx context.Context, c *client.Client) error {
	sql, args, err := squirrel.Insert(clientTable).
		Columns(clientColumns...).
		Values(
			c.ID, c.Name, c.Email, c.Phone, c.Address,
			c.DeletionMark, c.Version, c.CreatedAt, c.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", clientTable, err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, clientID id.ID) (*client.Client, error) {
	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"id": clientID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var c client.Client
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("client", clientID.String())
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (*client.Client, error) {
	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var c client.Client
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("client", email)
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

func (r *ClientRepo) Update(ctx context.Context, c *client.Client) error {
	sql, args, err := squirrel.Update(clientTable).
		Set("name", c.Name).
		Set("email", c.Email).
		Set("phone", c.Phone).
		Set("address", c.Address).
		Set("deletion_mark", c.DeletionMark).
		Set("version", c.Version).
		Set("updated_at", c.UpdatedAt).
		Where(squirrel.Eq{"id": c.ID}).
		Where(squirrel.Eq{"version": c.Version - 1}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", clientTable, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(clientTable, c.ID)
	}
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, clientID id.ID) error {
	sql, args, err := squirrel.Update(clientTable).
		Set("deletion_mark", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": clientID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", clientTable, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("client", clientID.String())
	}
	return nil
}

func (r *ClientRepo) List(ctx context.Context, filter client.ListFilter) (client.ListResult, error) {
	result := client.ListResult{Limit: filter.Limit, Offset: filter.Offset}

	conds := squirrel.And{squirrel.Eq{"deletion_mark": false}}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	countSQL, countArgs, err := squirrel.Select("COUNT(*)").
		From(clientTable).
		Where(conds).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count clients: %w", err)
	}

	q := r.baseSelect().Where(conds).OrderBy("name ASC")
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

	var items []*client.Client
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return result, fmt.Errorf("list clients: %w", err)
	}
	result.Items = items
	return result, nil
}
