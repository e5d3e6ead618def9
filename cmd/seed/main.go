// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"berostock/internal/core/id"
	"berostock/internal/domain/catalog/product"
	"berostock/internal/infrastructure/storage/postgres"
	"berostock/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	adminID, err := seedAdminUser(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoProducts(ctx, pool, log, adminID); err != nil {
			log.Fatalw("failed to seed demo products", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@berostock.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	// Check if admin already exists
	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM sys_users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return existingID, nil
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now().UTC()

	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO sys_users (
			id, email, password_hash, first_name, last_name,
			role, is_active, failed_login_attempts, version,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, 'System', 'Admin', 'admin', true, 0, 1, $4, $4)
	`, userID, adminEmail, string(passwordHash), now)
	if err != nil {
		return id.Nil(), fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created",
		"email", adminEmail,
		"user_id", userID,
	)

	return userID, nil
}

func seedDemoProducts(ctx context.Context, pool *postgres.Pool, log *logger.Logger, adminID id.ID) error {
	log.Info("seeding demo products...")

	type productSeed struct {
		name      string
		quantity  int64
		costPrice string
		supplier  product.Supplier
		category  string
	}

	seeds := []productSeed{
		{"LG 43 Inch Smart TV", 25, "185000", product.SupplierFouani, "Electronics"},
		{"Hisense Chest Freezer 200L", 12, "142500", product.SupplierSomotex, "Appliances"},
		{"Binatone Standing Fan 16\"", 60, "18200", product.SupplierSomotex, "Appliances"},
		{"Oraimo Power Bank 20000mAh", 80, "9500", product.SupplierGuangzhou, "Accessories"},
		{"Sony Home Theater System", 8, "210000", product.SupplierFouani, "Electronics"},
		{"LED Bulb 9W (pack of 10)", 150, "5600", product.SupplierGuangzhou, "Lighting"},
	}

	for _, s := range seeds {
		// Skip products that were already seeded.
		var existing id.ID
		err := pool.Pool.QueryRow(ctx,
			`SELECT id FROM cat_products WHERE name = $1 AND deletion_mark = FALSE`,
			s.name,
		).Scan(&existing)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("check product exists: %w", err)
		}

		cost, err := decimal.NewFromString(s.costPrice)
		if err != nil {
			return fmt.Errorf("parse cost price for %s: %w", s.name, err)
		}

		p := product.New(adminID, s.name, s.quantity, cost, s.supplier)
		category := s.category
		p.Category = &category

		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO cat_products (
				id, product_id, created_by, name, quantity,
				cost_price, selling_price, supplier, category,
				description, image_url, deletion_mark, version,
				created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`, p.ID, p.PublicID, p.CreatedBy, p.Name, p.Quantity,
			p.CostPrice, p.SellingPrice, p.Supplier, p.Category,
			p.Description, p.ImageURL, p.DeletionMark, p.Version,
			p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", s.name, err)
		}

		log.Infow("product seeded", "name", s.name, "supplier", s.supplier)
	}

	return nil
}
