// Package v1 wires the HTTP API: middleware chain, handler
// construction, and route registration.
package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"moneta/internal/core/tenant"
	"moneta/internal/domain/catalogs/account"
	"moneta/internal/domain/catalogs/category"
	"moneta/internal/domain/catalogs/contact"
	"moneta/internal/domain/catalogs/department"
	"moneta/internal/domain/catalogs/product"
	"moneta/internal/domain/catalogs/project"
	"moneta/internal/domain/documents/cash_transfer"
	"moneta/internal/domain/documents/expense"
	"moneta/internal/domain/documents/income"
	"moneta/internal/domain/documents/payable_payment"
	"moneta/internal/domain/documents/purchase_invoice"
	"moneta/internal/domain/documents/purchase_receipt"
	"moneta/internal/domain/documents/receivable_payment"
	"moneta/internal/domain/documents/sales_delivery"
	"moneta/internal/domain/documents/sales_invoice"
	"moneta/internal/domain/insights"
	"moneta/internal/domain/ledger"
	"moneta/internal/domain/posting"
	"moneta/internal/domain/registers/stock"
	"moneta/internal/domain/settlement"
	"moneta/internal/infrastructure/http/v1/handlers"
	"moneta/internal/infrastructure/http/v1/middleware"
	infranumerator "moneta/internal/infrastructure/numerator"
	"moneta/internal/infrastructure/storage/postgres"
	"moneta/internal/infrastructure/storage/postgres/catalog_repo"
	"moneta/internal/infrastructure/storage/postgres/document_repo"
	"moneta/internal/infrastructure/storage/postgres/register_repo"
	"moneta/internal/infrastructure/storage/postgres/report_repo"
	"moneta/pkg/logger"
)

// RouterConfig carries the process-level dependencies of the API.
// Everything tenant-scoped is resolved per request from the context.
type RouterConfig struct {
	Logger         *logger.Logger
	TenantRegistry *tenant.Registry
	TenantManager  *tenant.Manager
	MetaPool       *pgxpool.Pool

	// GuardRules are compiled once at startup; an empty set means
	// every document may post.
	GuardRules []posting.Rule

	Version string
}

// NewRouter builds the gin engine with all routes mounted.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.Trace(),
		middleware.Logger(log),
		middleware.ErrorHandler(),
	)

	// --- shared services ---

	gen := infranumerator.NewFromContext()

	auditStore, err := postgres.NewAuditStore(log)
	if err != nil {
		return nil, fmt.Errorf("create audit store: %w", err)
	}
	guard, err := posting.NewGuard(cfg.GuardRules)
	if err != nil {
		return nil, fmt.Errorf("compile guard rules: %w", err)
	}

	journalRepo := register_repo.NewJournalRepo()
	engine := posting.NewEngine(
		journalRepo,
		register_repo.NewAccountResolver(),
		auditStore,
		guard,
		posting.DefaultConfig(),
	)
	stockSvc := stock.NewService(register_repo.NewStockRepo())

	// --- handlers ---

	accountH := handlers.NewAccountHandler(account.NewService(catalog_repo.NewAccountRepo(), gen))
	categoryH := handlers.NewCategoryHandler(category.NewService(catalog_repo.NewCategoryRepo(), gen))
	productH := handlers.NewProductHandler(product.NewService(catalog_repo.NewProductRepo(), gen))
	contactH := handlers.NewContactHandler(contact.NewService(catalog_repo.NewContactRepo(), gen))
	departmentH := handlers.NewDepartmentHandler(department.NewService(catalog_repo.NewDepartmentRepo(), gen))
	projectH := handlers.NewProjectHandler(project.NewService(catalog_repo.NewProjectRepo(), gen))

	purchaseReceiptH := handlers.NewPurchaseReceiptHandler(
		purchase_receipt.NewService(document_repo.NewPurchaseReceiptRepo(), engine, gen, stockSvc))
	purchaseInvoiceH := handlers.NewPurchaseInvoiceHandler(
		purchase_invoice.NewService(document_repo.NewPurchaseInvoiceRepo(), engine, gen))
	salesDeliveryH := handlers.NewSalesDeliveryHandler(
		sales_delivery.NewService(document_repo.NewSalesDeliveryRepo(), engine, gen, stockSvc))
	salesInvoiceH := handlers.NewSalesInvoiceHandler(
		sales_invoice.NewService(document_repo.NewSalesInvoiceRepo(), engine, gen))
	expenseH := handlers.NewExpenseHandler(
		expense.NewService(document_repo.NewExpenseRepo(), engine, gen))
	incomeH := handlers.NewIncomeHandler(
		income.NewService(document_repo.NewIncomeRepo(), engine, gen))
	cashTransferH := handlers.NewCashTransferHandler(
		cash_transfer.NewService(document_repo.NewCashTransferRepo(), engine, gen))
	payablePaymentH := handlers.NewPayablePaymentHandler(
		payable_payment.NewService(document_repo.NewPayablePaymentRepo(), engine, gen))
	receivablePaymentH := handlers.NewReceivablePaymentHandler(
		receivable_payment.NewService(document_repo.NewReceivablePaymentRepo(), engine, gen))

	ledgerH := handlers.NewLedgerHandler(ledger.NewService(journalRepo, log))
	settlementH := handlers.NewSettlementHandler(settlement.NewService(report_repo.NewSettlementRepo(), nil))
	insightsH := handlers.NewInsightsHandler(insights.NewService(report_repo.NewInsightsRepo()))
	stockH := handlers.NewStockHandler(stockSvc)
	auditH := handlers.NewAuditHandler(auditStore)
	healthH := handlers.NewHealthHandler(cfg.MetaPool, cfg.TenantManager, cfg.Version)

	// --- routes ---

	health := r.Group("/health")
	{
		health.GET("/live", healthH.Live)
		health.GET("/ready", healthH.Ready)
		health.GET("/info", healthH.Info)
	}

	api := r.Group("/api/v1",
		middleware.TenantDB(cfg.TenantRegistry, cfg.TenantManager),
		middleware.UserContext(),
	)

	catalogs := api.Group("/catalogs")
	{
		accounts := catalogs.Group("/accounts")
		RegisterCatalogRoutes(accounts, accountH)
		accounts.GET("/class/:class", accountH.ListByClass)
		accounts.GET("/cash-bank", accountH.ListCashBank)

		RegisterCatalogRoutes(catalogs.Group("/categories"), categoryH)

		products := catalogs.Group("/products")
		RegisterCatalogRoutes(products, productH)
		products.GET("/sku/:sku", productH.FindBySKU)
		products.GET("/category/:categoryId", productH.ListByCategory)

		contacts := catalogs.Group("/contacts")
		RegisterCatalogRoutes(contacts, contactH)
		contacts.GET("/vendors", contactH.ListVendors)
		contacts.GET("/customers", contactH.ListCustomers)

		RegisterCatalogRoutes(catalogs.Group("/departments"), departmentH)
		RegisterCatalogRoutes(catalogs.Group("/projects"), projectH)
	}

	documents := api.Group("/documents")
	{
		RegisterDocumentRoutes(documents.Group("/purchase-receipts"), purchaseReceiptH)
		RegisterDocumentRoutes(documents.Group("/purchase-invoices"), purchaseInvoiceH)
		RegisterDocumentRoutes(documents.Group("/sales-deliveries"), salesDeliveryH)
		RegisterDocumentRoutes(documents.Group("/sales-invoices"), salesInvoiceH)
		RegisterDocumentRoutes(documents.Group("/expenses"), expenseH)
		RegisterDocumentRoutes(documents.Group("/incomes"), incomeH)
		RegisterDocumentRoutes(documents.Group("/cash-transfers"), cashTransferH)

		payablePayments := documents.Group("/payable-payments")
		RegisterDocumentRoutes(payablePayments, payablePaymentH)
		payablePayments.GET("/by-invoice/:invoiceId", payablePaymentH.ListByInvoice)

		receivablePayments := documents.Group("/receivable-payments")
		RegisterDocumentRoutes(receivablePayments, receivablePaymentH)
		receivablePayments.GET("/by-invoice/:invoiceId", receivablePaymentH.ListByInvoice)
	}

	registers := api.Group("/registers")
	{
		journals := registers.Group("/journals")
		journals.GET("", ledgerH.List)
		journals.GET("/lines", ledgerH.Lines)
		journals.GET("/scan-unbalanced", ledgerH.ScanUnbalanced)
		journals.GET("/number/:number", ledgerH.GetByReferenceNo)
		journals.GET("/source/:sourceType/:sourceId", ledgerH.GetBySource)
		journals.GET("/:id", ledgerH.GetByID)
		journals.GET("/:id/totals", ledgerH.Totals)

		stockRoutes := registers.Group("/stock")
		stockRoutes.GET("/balances", stockH.Balances)
		stockRoutes.GET("/movements", stockH.Movements)
		stockRoutes.GET("/:productId/balance", stockH.Balance)
		stockRoutes.GET("/:productId/turnover", stockH.Turnover)

		registers.GET("/audit", auditH.History)
	}

	reports := api.Group("/reports")
	{
		settlementRoutes := reports.Group("/settlement")
		settlementRoutes.GET("/:invoiceType/aged", settlementH.AgedInvoices)
		settlementRoutes.GET("/:invoiceType/by-contact", settlementH.OutstandingByContact)
		settlementRoutes.GET("/:invoiceType/:invoiceId/outstanding", settlementH.Outstanding)
		settlementRoutes.GET("/:invoiceType/:invoiceId/allocations", settlementH.AgedAllocations)

		insightsRoutes := reports.Group("/insights")
		insightsRoutes.GET("/summary", insightsH.Summary)
		insightsRoutes.GET("/compare", insightsH.Compare)
	}

	return r, nil
}
