package sales

import (
	"context"
	"time"

	"berostock/internal/core/apperror"
	"berostock/internal/core/appctx"
	"berostock/internal/core/id"
	"berostock/internal/core/tx"
	"berostock/internal/core/types"
	"berostock/internal/domain/catalog/product"
	"berostock/pkg/logger"
)

// Pagination bounds for sale listings.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 20
)

// ListFilter narrows a sale listing.
type ListFilter struct {
	Page        int
	Limit       int
	Search      string
	PaymentMode PaymentMode
	CreatedBy   id.ID
	ProductID   id.ID
	DateFrom    *time.Time
	DateTo      *time.Time
}

// ListResult is a page of sales plus the matching count over the
// whole filtered set.
type ListResult struct {
	Sales []*Sale
	Total int64
}

// SaleStore persists sale records together with their lines.
type SaleStore interface {
	Create(ctx context.Context, sale *Sale) error

	// GetByRef accepts the sale's storage key, its public identifier,
	// or a product reference contained in its lines. A product
	// reference resolves to the most recent matching sale.
	GetByRef(ctx context.Context, ref id.ID) (*Sale, error)

	// GetByKey accepts the sale's storage key or public identifier
	// only. Update and Delete resolve through it so a product
	// reference cannot select a sale to mutate.
	GetByKey(ctx context.Context, ref id.ID) (*Sale, error)

	Update(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, saleID id.ID) error
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	All(ctx context.Context, filter ListFilter) ([]*Sale, error)
}

// UserDirectory resolves user ids to display names for the sold_by
// field.
type UserDirectory interface {
	GetNames(ctx context.Context, ids []id.ID) (map[id.ID]string, error)
}

// Auditor records sale mutations. Recording is best effort; a failed
// audit write never fails the sale.
type Auditor interface {
	Record(ctx context.Context, action string, saleID id.ID, payload any) error
}

// Service implements the sale lifecycle. Every mutation runs inside a
// single transaction so stock adjustments and the sale record commit
// or roll back together.
type Service struct {
	sales     SaleStore
	inventory InventoryStore
	reserver  *Reserver
	users     UserDirectory
	auditor   Auditor
	txManager tx.Manager
}

func NewService(
	sales SaleStore,
	inventory InventoryStore,
	users UserDirectory,
	auditor Auditor,
	txManager tx.Manager,
) *Service {
	return &Service{
		sales:     sales,
		inventory: inventory,
		reserver:  NewReserver(inventory),
		users:     users,
		auditor:   auditor,
		txManager: txManager,
	}
}

// CreateInput is a sale creation request.
type CreateInput struct {
	CustomerName string
	PaymentMode  string
	Items        []LineItem
}

// Create reserves stock for every requested item and records the sale.
func (s *Service) Create(ctx context.Context, input CreateInput) (*SaleView, error) {
	user, userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	mode, err := ParsePaymentMode(input.PaymentMode)
	if err != nil {
		return nil, err
	}

	sale := NewSale(userID, input.CustomerName, mode)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		lines, err := s.reserver.Reserve(ctx, input.Items)
		if err != nil {
			return err
		}
		sale.SetLines(lines)
		if err := sale.Validate(ctx); err != nil {
			return err
		}
		if err := s.sales.Create(ctx, sale); err != nil {
			return err
		}
		s.audit(ctx, "sale.create", sale)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale recorded",
		"sale_id", sale.SaleID,
		"lines", len(sale.Lines),
		"total", sale.TotalPrice,
	)

	return s.project(ctx, sale, user.Role)
}

// GetByRef returns a single sale by storage key or public identifier,
// projected for the caller's role.
func (s *Service) GetByRef(ctx context.Context, ref string) (*SaleView, error) {
	saleRef, err := id.Parse(ref)
	if err != nil {
		return nil, apperror.NewNotFound("sale", ref)
	}
	sale, err := s.sales.GetByRef(ctx, saleRef)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, sale, appctx.GetRole(ctx))
}

// UpdateInput carries a sale update. Items, when present, replace the
// sale's lines entirely.
type UpdateInput struct {
	CustomerName *string
	PaymentMode  *string
	Items        []LineItem
}

// Update restores the stock held by the sale's current lines, reserves
// the replacement lines and rewrites the record, all in one
// transaction. Totals are recomputed from current catalog prices.
func (s *Service) Update(ctx context.Context, ref string, input UpdateInput) (*SaleView, error) {
	user, userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	saleRef, err := id.Parse(ref)
	if err != nil {
		return nil, apperror.NewNotFound("sale", ref)
	}

	var sale *Sale
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		sale, err = s.sales.GetByKey(ctx, saleRef)
		if err != nil {
			return err
		}
		if err := authorizeMutation(user, userID, sale); err != nil {
			return err
		}

		if input.CustomerName != nil {
			name := *input.CustomerName
			if name == "" {
				name = DefaultCustomerName
			}
			sale.CustomerName = name
		}
		if input.PaymentMode != nil {
			mode, err := ParsePaymentMode(*input.PaymentMode)
			if err != nil {
				return err
			}
			sale.PaymentMode = mode
		}

		if input.Items != nil {
			if err := s.reserver.Restore(ctx, sale.Lines); err != nil {
				return err
			}
			lines, err := s.reserver.Reserve(ctx, input.Items)
			if err != nil {
				return err
			}
			sale.SetLines(lines)
		}

		if err := sale.Validate(ctx); err != nil {
			return err
		}
		sale.Touch()
		if err := s.sales.Update(ctx, sale); err != nil {
			return err
		}
		s.audit(ctx, "sale.update", sale)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale updated", "sale_id", sale.SaleID, "version", sale.Version)

	return s.project(ctx, sale, user.Role)
}

// Delete removes a sale and returns its reserved quantities to stock.
// Lines whose product no longer exists are skipped.
func (s *Service) Delete(ctx context.Context, ref string) error {
	user, userID, err := currentUser(ctx)
	if err != nil {
		return err
	}

	saleRef, err := id.Parse(ref)
	if err != nil {
		return apperror.NewNotFound("sale", ref)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.sales.GetByKey(ctx, saleRef)
		if err != nil {
			return err
		}
		if err := authorizeMutation(user, userID, sale); err != nil {
			return err
		}
		if err := s.reserver.Restore(ctx, sale.Lines); err != nil {
			return err
		}
		if err := s.sales.Delete(ctx, sale.ID); err != nil {
			return err
		}
		s.audit(ctx, "sale.delete", sale)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "sale deleted", "sale_ref", saleRef)
	return nil
}

// ListOutput is a projected page of sales. TotalSales and TotalProfit
// are summed over the returned page; TotalProfit is only set for
// privileged callers.
type ListOutput struct {
	Sales       []SaleView
	Total       int64
	Page        int
	Pages       int
	TotalSales  types.Money
	TotalProfit *types.Money
}

// List returns a projected page of sales. Limits above MaxPageLimit
// are rejected rather than clamped.
func (s *Service) List(ctx context.Context, filter ListFilter) (*ListOutput, error) {
	if filter.Limit > MaxPageLimit {
		return nil, apperror.NewValidation("limit cannot exceed 20").WithDetail("limit", filter.Limit)
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageLimit
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	result, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	role := appctx.GetRole(ctx)
	views, err := s.projectAll(ctx, result.Sales, role)
	if err != nil {
		return nil, err
	}

	// ceil(total/limit); an empty result set has zero pages.
	pages := (int(result.Total) + filter.Limit - 1) / filter.Limit

	totalSales := types.Zero()
	totalProfit := types.Zero()
	for _, sale := range result.Sales {
		totalSales = totalSales.Add(sale.TotalPrice)
		totalProfit = totalProfit.Add(sale.TotalProfit)
	}

	out := &ListOutput{
		Sales:      views,
		Total:      result.Total,
		Page:       filter.Page,
		Pages:      pages,
		TotalSales: totalSales,
	}
	if role.IsPrivileged() {
		out.TotalProfit = &totalProfit
	}
	return out, nil
}

// ExportRow is one sale line flattened for CSV export. Cost and profit
// are only present for privileged callers.
type ExportRow struct {
	SaleID       id.ID
	CustomerName string
	ProductID    id.ID
	ProductName  string
	Quantity     int64
	SellingPrice types.Money
	Amount       types.Money
	PaymentMode  PaymentMode
	SoldBy       string
	DateOfSale   time.Time
	CostPrice    *types.Money
	Profit       *types.Money
}

// Export flattens every sale matching the filter into one row per
// line item.
func (s *Service) Export(ctx context.Context, filter ListFilter) ([]ExportRow, error) {
	filter.Page = 0
	filter.Limit = 0

	sales, err := s.sales.All(ctx, filter)
	if err != nil {
		return nil, err
	}

	products, soldBy, err := s.lookups(ctx, sales)
	if err != nil {
		return nil, err
	}

	privileged := appctx.GetRole(ctx).IsPrivileged()
	rows := make([]ExportRow, 0, len(sales))
	for _, sale := range sales {
		for _, line := range sale.Lines {
			row := ExportRow{
				SaleID:       sale.SaleID,
				CustomerName: sale.CustomerName,
				ProductID:    line.ProductID,
				Quantity:     line.Quantity,
				SellingPrice: line.SellingPrice,
				Amount:       line.Amount,
				PaymentMode:  sale.PaymentMode,
				SoldBy:       soldBy[sale.CreatedBy],
				DateOfSale:   sale.DateOfSale,
			}
			if p, ok := products[line.ProductID]; ok {
				row.ProductID = p.PublicID
				row.ProductName = p.Name
			}
			if privileged {
				cost := line.CostPrice
				profit := line.Profit
				row.CostPrice = &cost
				row.Profit = &profit
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *Service) project(ctx context.Context, sale *Sale, role appctx.Role) (*SaleView, error) {
	views, err := s.projectAll(ctx, []*Sale{sale}, role)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) projectAll(ctx context.Context, sales []*Sale, role appctx.Role) ([]SaleView, error) {
	products, soldBy, err := s.lookups(ctx, sales)
	if err != nil {
		return nil, err
	}
	views := make([]SaleView, 0, len(sales))
	for _, sale := range sales {
		views = append(views, Project(sale, products, soldBy[sale.CreatedBy], role))
	}
	return views, nil
}

// lookups gathers the product snapshots and seller names a projection
// needs, one query each for the whole batch.
func (s *Service) lookups(ctx context.Context, sales []*Sale) (map[id.ID]*product.Product, map[id.ID]string, error) {
	productIDs := make([]id.ID, 0)
	userIDs := make([]id.ID, 0)
	seenProducts := make(map[id.ID]struct{})
	seenUsers := make(map[id.ID]struct{})
	for _, sale := range sales {
		if _, ok := seenUsers[sale.CreatedBy]; !ok {
			seenUsers[sale.CreatedBy] = struct{}{}
			userIDs = append(userIDs, sale.CreatedBy)
		}
		for _, line := range sale.Lines {
			if _, ok := seenProducts[line.ProductID]; !ok {
				seenProducts[line.ProductID] = struct{}{}
				productIDs = append(productIDs, line.ProductID)
			}
		}
	}

	products, err := s.inventory.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, nil, err
	}
	soldBy, err := s.users.GetNames(ctx, userIDs)
	if err != nil {
		return nil, nil, err
	}
	return products, soldBy, nil
}

func (s *Service) audit(ctx context.Context, action string, sale *Sale) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Record(ctx, action, sale.ID, sale); err != nil {
		logger.Warn(ctx, "audit record failed", "action", action, "sale_id", sale.ID, "error", err)
	}
}

func currentUser(ctx context.Context) (*appctx.UserContext, id.ID, error) {
	user := appctx.GetUser(ctx)
	if user == nil {
		return nil, id.Nil(), apperror.NewUnauthorized("authentication required")
	}
	userID, err := id.Parse(user.UserID)
	if err != nil {
		return nil, id.Nil(), apperror.NewUnauthorized("invalid user identity")
	}
	return user, userID, nil
}

func authorizeMutation(user *appctx.UserContext, userID id.ID, sale *Sale) error {
	if user.Role.IsPrivileged() || sale.CreatedBy == userID {
		return nil
	}
	return apperror.NewForbidden("you can only modify your own sales")
}
