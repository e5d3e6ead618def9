package postgres

import (
	"testing"
	"time"

	"github.com/Masterminds/squirrel"

	"berostock/internal/core/id"
	"berostock/internal/domain/sales"
)

func TestBuildSaleFilter(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	creator := id.New()
	productID := id.New()

	tests := []struct {
		name     string
		filter   sales.ListFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "empty filter matches everything",
			filter:   sales.ListFilter{},
			wantSQL:  "SELECT id FROM doc_sales WHERE (1=1)",
			wantArgs: nil,
		},
		{
			name:     "search matches customer or product name",
			filter:   sales.ListFilter{Search: "Ada"},
			wantSQL:  "SELECT id FROM doc_sales WHERE ((customer_name ILIKE $1 OR id IN (SELECT l.sale_ref FROM doc_sale_lines l JOIN cat_products p ON l.product_id = p.id WHERE p.name ILIKE $2)))",
			wantArgs: []any{"%Ada%", "%Ada%"},
		},
		{
			name:     "payment mode",
			filter:   sales.ListFilter{PaymentMode: sales.PaymentCash},
			wantSQL:  "SELECT id FROM doc_sales WHERE (mode_of_payment = $1)",
			wantArgs: []any{sales.PaymentCash},
		},
		{
			// squirrel unwraps driver.Valuer values, so the UUID
			// surfaces as its string form.
			name:     "creator",
			filter:   sales.ListFilter{CreatedBy: creator},
			wantSQL:  "SELECT id FROM doc_sales WHERE (created_by = $1)",
			wantArgs: []any{creator.String()},
		},
		{
			name:     "product filter matches storage key or public id",
			filter:   sales.ListFilter{ProductID: productID},
			wantSQL:  "SELECT id FROM doc_sales WHERE (id IN (SELECT l.sale_ref FROM doc_sale_lines l JOIN cat_products p ON l.product_id = p.id WHERE p.id = $1 OR p.product_id = $2))",
			wantArgs: []any{productID, productID},
		},
		{
			name:     "date range is half open",
			filter:   sales.ListFilter{DateFrom: &from, DateTo: &to},
			wantSQL:  "SELECT id FROM doc_sales WHERE (date_of_sale >= $1 AND date_of_sale < $2)",
			wantArgs: []any{from, to},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := squirrel.Select("id").
				From(saleTable).
				Where(buildSaleFilter(tt.filter)).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}

			if sql != tt.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tt.wantSQL, sql)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("args count mismatch\nwant: %d\ngot:  %d", len(tt.wantArgs), len(args))
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("arg %d mismatch\nwant: %v\ngot:  %v", i, tt.wantArgs[i], args[i])
				}
			}
		})
	}
}
