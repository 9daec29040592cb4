// Package main seeds a tenant database with the default department,
// a starter chart of accounts, and optional demo documents posted
// through the regular document lifecycle.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"

	appctx "moneta/internal/core/context"
	"moneta/internal/core/id"
	"moneta/internal/core/tenant"
	"moneta/internal/core/types"
	"moneta/internal/domain/documents/purchase_invoice"
	"moneta/internal/domain/documents/purchase_receipt"
	"moneta/internal/domain/documents/receivable_payment"
	"moneta/internal/domain/documents/sales_invoice"
	"moneta/internal/domain/posting"
	"moneta/internal/domain/registers/stock"
	infranumerator "moneta/internal/infrastructure/numerator"
	"moneta/internal/infrastructure/storage/postgres"
	"moneta/internal/infrastructure/storage/postgres/document_repo"
	"moneta/internal/infrastructure/storage/postgres/register_repo"
	"moneta/pkg/logger"
)

const demoOrganizationID = "demo"

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

	seeded, err := seedMasterData(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed master data", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		// Demo documents go through the regular lifecycle so their
		// journals and stock movements are posted for real.
		docCtx := tenant.WithPool(ctx, pool.Unwrap())
		docCtx = tenant.WithTxManager(docCtx, postgres.NewTxManagerFromRawPool(pool.Unwrap()))
		docCtx = appctx.WithUser(docCtx, &appctx.UserContext{UserID: "seed"})
		docCtx = logger.WithLogger(docCtx, log)

		if err := seedDemoDocuments(docCtx, seeded, log); err != nil {
			log.Fatalw("failed to seed demo documents", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// seedIDs collects the master data the demo documents reference.
type seedIDs struct {
	cashAccount       id.ID
	payableAccount    id.ID
	receivableAccount id.ID
	vendor            id.ID
	customer          id.ID
	product           id.ID
}

func seedMasterData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (seedIDs, error) {
	var out seedIDs

	// 1. Default department. The posting engine assigns it to every
	// journal leg that carries no department of its own.
	_, err := pool.Pool.Exec(ctx, `
		INSERT INTO cat_departments (id, code, name, is_folder, deletion_mark, version,
			created_at, updated_at, created_by, updated_by)
		VALUES ($1, 'DEP-0', 'Default', false, false, 1, now(), now(), 'seed', 'seed')
		ON CONFLICT (id) DO NOTHING
	`, posting.WellKnownDefaultDepartmentID)
	if err != nil {
		return out, fmt.Errorf("seed default department: %w", err)
	}

	// 2. Starter chart of accounts.
	accounts := []struct {
		code       string
		name       string
		class      string
		isCashBank bool
		target     *id.ID
	}{
		{"1000", "Cash", "asset", true, &out.cashAccount},
		{"1200", "Accounts Receivable", "asset", false, &out.receivableAccount},
		{"1300", "Inventory", "asset", false, nil},
		{"1400", "Goods Received Not Invoiced", "asset", false, nil},
		{"2000", "Accounts Payable", "liability", false, &out.payableAccount},
		{"3000", "Equity", "equity", false, nil},
		{"4000", "Sales Revenue", "revenue", false, nil},
		{"5000", "Cost of Goods Sold", "expense", false, nil},
		{"5100", "Operating Expenses", "expense", false, nil},
	}

	accountIDs := make(map[string]id.ID, len(accounts))
	for _, a := range accounts {
		accountID, err := upsertCatalogRow(ctx, pool, `
			INSERT INTO cat_accounts (id, code, name, class, is_cash_bank, is_folder, deletion_mark, version,
				created_at, updated_at, created_by, updated_by)
			VALUES ($1, $2, $3, $4, $5, false, false, 1, now(), now(), 'seed', 'seed')
			ON CONFLICT (code) DO NOTHING
		`, `SELECT id FROM cat_accounts WHERE code = $1`, a.code, a.name, a.class, a.isCashBank)
		if err != nil {
			return out, fmt.Errorf("seed account %s: %w", a.code, err)
		}
		accountIDs[a.code] = accountID
		if a.target != nil {
			*a.target = accountID
		}
	}

	// 3. One category with full posting mappings.
	categoryID, err := upsertCatalogRow(ctx, pool, `
		INSERT INTO cat_categories (id, code, name, purchase_account_id, sales_account_id,
			inventory_account_id, purchase_receipt_account_id, sales_delivery_account_id,
			is_folder, deletion_mark, version, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, false, 1, now(), now(), 'seed', 'seed')
		ON CONFLICT (code) DO NOTHING
	`, `SELECT id FROM cat_categories WHERE code = $1`,
		"CAT-1", "General Goods",
		accountIDs["5000"], accountIDs["4000"], accountIDs["1300"],
		accountIDs["1400"], accountIDs["1400"])
	if err != nil {
		return out, fmt.Errorf("seed category: %w", err)
	}

	// 4. A stock-tracked product in that category.
	out.product, err = upsertCatalogRow(ctx, pool, `
		INSERT INTO cat_products (id, code, name, category_id, is_stock_tracking,
			default_price, default_cost, unit, is_folder, deletion_mark, version,
			created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, true, 150.00, 100.00, 'pcs', false, false, 1, now(), now(), 'seed', 'seed')
		ON CONFLICT (code) DO NOTHING
	`, `SELECT id FROM cat_products WHERE code = $1`,
		"PRD-1", "Widget", categoryID)
	if err != nil {
		return out, fmt.Errorf("seed product: %w", err)
	}

	// 5. A vendor and a customer.
	out.vendor, err = upsertCatalogRow(ctx, pool, `
		INSERT INTO cat_contacts (id, code, name, is_vendor, is_customer, is_folder, deletion_mark, version,
			created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, true, false, false, false, 1, now(), now(), 'seed', 'seed')
		ON CONFLICT (code) DO NOTHING
	`, `SELECT id FROM cat_contacts WHERE code = $1`,
		"VEN-1", "Acme Supplies")
	if err != nil {
		return out, fmt.Errorf("seed vendor: %w", err)
	}

	out.customer, err = upsertCatalogRow(ctx, pool, `
		INSERT INTO cat_contacts (id, code, name, is_vendor, is_customer, is_folder, deletion_mark, version,
			created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, false, true, false, false, 1, now(), now(), 'seed', 'seed')
		ON CONFLICT (code) DO NOTHING
	`, `SELECT id FROM cat_contacts WHERE code = $1`,
		"CUS-1", "Globex Retail")
	if err != nil {
		return out, fmt.Errorf("seed customer: %w", err)
	}

	log.Info("master data seeded")
	return out, nil
}

// upsertCatalogRow inserts a catalog row keyed by code and returns the
// row's id whether it was just inserted or already present.
func upsertCatalogRow(ctx context.Context, pool *postgres.Pool, insertSQL, selectSQL string, args ...any) (id.ID, error) {
	rowID := id.New()
	insertArgs := append([]any{rowID}, args...)
	tag, err := pool.Pool.Exec(ctx, insertSQL, insertArgs...)
	if err != nil {
		return id.Nil(), err
	}
	if tag.RowsAffected() > 0 {
		return rowID, nil
	}

	// Conflict: fetch the existing row by its code (the second arg).
	err = pool.Pool.QueryRow(ctx, selectSQL, args[0]).Scan(&rowID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return id.Nil(), fmt.Errorf("row conflicted but not found by code %v", args[0])
		}
		return id.Nil(), err
	}
	return rowID, nil
}

func seedDemoDocuments(ctx context.Context, seeded seedIDs, log *logger.Logger) error {
	gen := infranumerator.NewFromContext()

	guard, err := posting.NewGuard(nil)
	if err != nil {
		return err
	}
	journalRepo := register_repo.NewJournalRepo()
	engine := posting.NewEngine(
		journalRepo,
		register_repo.NewAccountResolver(),
		nil,
		guard,
		posting.DefaultConfig(),
	)
	stockSvc := stock.NewService(register_repo.NewStockRepo())

	// 1. Receive 10 widgets at cost.
	receiptSvc := purchase_receipt.NewService(document_repo.NewPurchaseReceiptRepo(), engine, gen, stockSvc)
	receipt := purchase_receipt.NewPurchaseReceipt(demoOrganizationID, seeded.vendor)
	receipt.AddLine(seeded.product, types.NewQuantityFromFloat64(10), types.MustMoney("100.00"))
	if err := receiptSvc.Create(ctx, receipt); err != nil {
		return fmt.Errorf("create purchase receipt: %w", err)
	}

	// 2. Invoice the receipt: settles the accrual, opens the payable.
	purchaseInvoiceSvc := purchase_invoice.NewService(document_repo.NewPurchaseInvoiceRepo(), engine, gen)
	purchaseInvoice := purchase_invoice.NewPurchaseInvoice(demoOrganizationID, seeded.vendor, seeded.payableAccount)
	purchaseInvoice.IsReceipt = true
	purchaseInvoice.AddLine(seeded.product, types.NewQuantityFromFloat64(10), types.MustMoney("100.00"))
	if err := purchaseInvoiceSvc.Create(ctx, purchaseInvoice); err != nil {
		return fmt.Errorf("create purchase invoice: %w", err)
	}

	// 3. Bill the customer for 4 widgets.
	salesInvoiceSvc := sales_invoice.NewService(document_repo.NewSalesInvoiceRepo(), engine, gen)
	salesInvoice := sales_invoice.NewSalesInvoice(demoOrganizationID, seeded.customer, seeded.receivableAccount)
	salesInvoice.AddLine(seeded.product, types.NewQuantityFromFloat64(4), types.MustMoney("150.00"))
	if err := salesInvoiceSvc.Create(ctx, salesInvoice); err != nil {
		return fmt.Errorf("create sales invoice: %w", err)
	}

	// 4. Collect half of the receivable.
	paymentSvc := receivable_payment.NewService(document_repo.NewReceivablePaymentRepo(), engine, gen)
	payment := receivable_payment.NewReceivablePayment(demoOrganizationID, seeded.customer, seeded.cashAccount)
	payment.Allocate(salesInvoice.ID, types.MustMoney("300.00"))
	if err := paymentSvc.Create(ctx, payment); err != nil {
		return fmt.Errorf("create receivable payment: %w", err)
	}

	log.Infow("demo documents posted",
		"purchase_receipt", receipt.Number,
		"purchase_invoice", purchaseInvoice.Number,
		"sales_invoice", salesInvoice.Number,
		"receivable_payment", payment.Number,
	)
	return nil
}
