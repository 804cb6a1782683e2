// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/auth"
	"tallerpro/internal/domain/catalogs/account"
	"tallerpro/internal/domain/catalogs/client"
	"tallerpro/internal/domain/catalogs/location"
	"tallerpro/internal/domain/catalogs/product"
	"tallerpro/internal/domain/catalogs/staff"
	"tallerpro/internal/domain/catalogs/supplier"
	"tallerpro/internal/domain/catalogs/vehicle"
	"tallerpro/internal/domain/documents/appointment"
	"tallerpro/internal/domain/documents/expense"
	"tallerpro/internal/domain/documents/invoice"
	"tallerpro/internal/domain/documents/loan"
	"tallerpro/internal/domain/documents/pettycash"
	"tallerpro/internal/domain/documents/purchase"
	"tallerpro/internal/domain/documents/quote"
	"tallerpro/internal/domain/documents/stocktake"
	"tallerpro/internal/domain/documents/timeentry"
	"tallerpro/internal/domain/documents/workorder"
	"tallerpro/internal/domain/posting"
	"tallerpro/internal/domain/registers/stock"
	"tallerpro/internal/domain/reports"
	"tallerpro/internal/infrastructure/http/v1/handlers"
	"tallerpro/internal/infrastructure/http/v1/middleware"
	"tallerpro/internal/infrastructure/storage/postgres"
	"tallerpro/internal/infrastructure/storage/postgres/catalog_repo"
	"tallerpro/internal/infrastructure/storage/postgres/document_repo"
	"tallerpro/internal/infrastructure/storage/postgres/register_repo"
	"tallerpro/internal/infrastructure/storage/postgres/report_repo"
	"tallerpro/pkg/logger"
	"tallerpro/pkg/numerator"
)

// RouterConfig holds everything the HTTP layer needs.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager runs repository operations in transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator generates document and catalog codes
	Numerator *numerator.Service

	// Audit records entity change history. Optional; nil disables the trail.
	Audit *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		// Everything else requires a valid JWT; RequestScope then
		// resolves the acting user and the optional location header.
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))
		protected.Use(middleware.RequestScope())

		registerCatalogRoutes(protected, cfg)
		registerDocumentRoutes(protected, cfg)
		registerRegisterRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	// Public auth endpoints (no JWT required)
	publicAuth := rg.Group("/auth")

	// Protected auth endpoints (JWT required)
	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))
	protectedAuth.Use(middleware.RequestScope())

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers the master data endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	txm := cfg.TxManager

	clientRepo := catalog_repo.NewClientRepo(txm)
	vehicleRepo := catalog_repo.NewVehicleRepo(txm)
	staffRepo := catalog_repo.NewStaffRepo(txm)
	locationRepo := catalog_repo.NewLocationRepo(txm)
	accountRepo := catalog_repo.NewAccountRepo(txm)

	// --- CLIENTS ---
	clientService := client.NewService(clientRepo, txm, cfg.Numerator)
	registerAuditHooks(cfg.Audit, "client", clientService.Hooks())
	clientHandler := handlers.NewClientHandler(baseHandler, clientService)
	clients := rg.Group("/clients")
	RegisterCatalogRoutes(clients, clientHandler, auth.PermManageCatalogs)
	clients.GET("/by-document/:number", clientHandler.GetByDocument)

	// --- VEHICLES ---
	vehicleService := vehicle.NewService(vehicleRepo, clientRepo, txm)
	vehicleHandler := handlers.NewVehicleHandler(baseHandler, vehicleService)
	vehicles := rg.Group("/vehicles")
	RegisterCatalogRoutes(vehicles, vehicleHandler, auth.PermManageCatalogs)
	vehicles.GET("/by-plate/:plate", vehicleHandler.GetByPlate)
	clients.GET("/:id/vehicles", vehicleHandler.ListByClient)

	// --- STAFF ---
	staffService := staff.NewService(staffRepo, txm, cfg.Numerator)
	staffHandler := handlers.NewStaffHandler(baseHandler, staffService)
	RegisterCatalogRoutes(rg.Group("/staff"), staffHandler, auth.PermManagePayroll)

	// --- PRODUCTS ---
	{
		repo := catalog_repo.NewProductRepo(txm)
		service := product.NewService(repo, txm, cfg.Numerator)
		handler := handlers.NewProductHandler(baseHandler, service)
		products := rg.Group("/products")
		RegisterCatalogRoutes(products, handler, auth.PermManageInventory)
		products.GET("/by-barcode/:barcode", handler.GetByBarcode)
	}

	// --- SUPPLIERS ---
	{
		repo := catalog_repo.NewSupplierRepo(txm)
		service := supplier.NewService(repo, txm, cfg.Numerator)
		handler := handlers.NewSupplierHandler(baseHandler, service)
		suppliers := rg.Group("/suppliers")
		RegisterCatalogRoutes(suppliers, handler, auth.PermManageCatalogs)
		suppliers.GET("/by-nit/:nit", handler.GetByNIT)
	}

	// --- LOCATIONS ---
	locationService := location.NewService(locationRepo, txm)
	locationHandler := handlers.NewLocationHandler(baseHandler, locationService)
	locations := rg.Group("/locations")
	RegisterCatalogRoutes(locations, locationHandler, auth.PermManageCatalogs)
	locations.GET("/:id/staff", staffHandler.ListByLocation)

	// --- FINANCIAL ACCOUNTS ---
	accountService := account.NewService(accountRepo, txm)
	accountHandler := handlers.NewAccountHandler(baseHandler, accountService)
	RegisterCatalogRoutes(rg.Group("/accounts"), accountHandler, auth.PermManageFinance)
	locations.GET("/:id/accounts", accountHandler.ListByLocation)
}

// registerDocumentRoutes registers the operational document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	txm := cfg.TxManager

	// Repos shared across document services
	clientRepo := catalog_repo.NewClientRepo(txm)
	vehicleRepo := catalog_repo.NewVehicleRepo(txm)
	staffRepo := catalog_repo.NewStaffRepo(txm)
	supplierRepo := catalog_repo.NewSupplierRepo(txm)
	accountRepo := catalog_repo.NewAccountRepo(txm)
	workOrderRepo := document_repo.NewWorkOrderRepo(txm)
	quoteRepo := document_repo.NewQuoteRepo(txm)

	// Stock movements and the posting engine behind purchases/invoices
	stockRepo := register_repo.NewStockRepo(txm)
	stockService := stock.NewService(stockRepo)
	postingEngine := posting.NewEngine(stockService, txm)

	requireLocation := middleware.RequireLocation()

	// --- WORK ORDERS ---
	workOrderService := workorder.NewService(workOrderRepo, clientRepo, vehicleRepo, cfg.Numerator, txm)
	registerAuditHooks(cfg.Audit, "work_order", workOrderService.Hooks())
	workOrderHandler := handlers.NewWorkOrderHandler(baseHandler, workOrderService)

	workOrders := rg.Group("/work-orders")
	workOrders.GET("", workOrderHandler.List)
	workOrders.GET("/:id", workOrderHandler.Get)
	workOrders.POST("", requireLocation, middleware.RequirePermission(auth.PermWorkOrderCreate), workOrderHandler.Create)
	workOrders.POST("/:id/advance", middleware.RequirePermission(auth.PermWorkOrderAdvance), workOrderHandler.Advance)
	workOrders.POST("/:id/retreat", middleware.RequirePermission(auth.PermWorkOrderRetreat), workOrderHandler.Retreat)
	workOrders.POST("/:id/require-attention", middleware.RequirePermission(auth.PermWorkOrderUpdate), workOrderHandler.RequireAttention)
	workOrders.POST("/:id/cancel", middleware.RequirePermission(auth.PermWorkOrderCancel), workOrderHandler.Cancel)
	workOrders.POST("/:id/assign-technician", middleware.RequirePermission(auth.PermWorkOrderAssign), workOrderHandler.AssignTechnician)
	workOrders.POST("/:id/waiting-parts", middleware.RequirePermission(auth.PermWorkOrderUpdate), workOrderHandler.SetWaitingParts)

	// --- QUOTES ---
	quoteService := quote.NewService(quoteRepo, workOrderRepo, cfg.Numerator, txm)
	registerAuditHooks(cfg.Audit, "quote", quoteService.Hooks())
	quoteHandler := handlers.NewQuoteHandler(baseHandler, quoteService)

	quotes := rg.Group("/quotes")
	quotes.GET("", quoteHandler.List)
	quotes.GET("/:id", quoteHandler.Get)
	quotes.POST("", requireLocation, middleware.RequirePermission(auth.PermQuoteCreate), quoteHandler.Create)
	quotes.PUT("/:id", middleware.RequirePermission(auth.PermQuoteCreate), quoteHandler.Update)
	quotes.POST("/:id/send", middleware.RequirePermission(auth.PermQuoteCreate), quoteHandler.Send)
	quotes.POST("/:id/mark-reviewed", middleware.RequirePermission(auth.PermQuoteApprove), quoteHandler.MarkReviewed)
	quotes.POST("/:id/approve", middleware.RequirePermission(auth.PermQuoteApprove), quoteHandler.Approve)
	quotes.POST("/:id/reject", middleware.RequirePermission(auth.PermQuoteApprove), quoteHandler.Reject)
	workOrders.GET("/:id/quotes", quoteHandler.ListByWorkOrder)

	// --- INVOICES ---
	invoiceService := invoice.NewService(
		document_repo.NewInvoiceRepo(txm),
		quoteRepo,
		workOrderRepo,
		stockService,
		postingEngine,
		cfg.Numerator,
		txm,
	)
	invoiceHandler := handlers.NewInvoiceHandler(baseHandler, invoiceService)

	invoices := rg.Group("/invoices")
	invoices.GET("", invoiceHandler.List)
	invoices.GET("/:id", invoiceHandler.Get)
	invoices.POST("/convert", requireLocation, middleware.RequirePermission(auth.PermQuoteInvoice), invoiceHandler.Convert)
	invoices.POST("/:id/pay", middleware.RequirePermission(auth.PermInvoicePay), invoiceHandler.Pay)
	invoices.POST("/:id/cancel", middleware.RequirePermission(auth.PermInvoiceCancel), invoiceHandler.Cancel)
	invoices.POST("/:id/factoring", middleware.RequirePermission(auth.PermManageFinance), invoiceHandler.ApplyFactoring)
	invoices.POST("/:id/release-retention", middleware.RequirePermission(auth.PermManageFinance), invoiceHandler.ReleaseRetention)
	invoices.POST("/sweep-overdue", middleware.RequirePermission(auth.PermManageFinance), invoiceHandler.SweepOverdue)
	workOrders.GET("/:id/invoices", invoiceHandler.ListByWorkOrder)

	// Billing badge for the Kanban board
	billingHandler := handlers.NewBillingHandler(baseHandler, invoiceService, quoteService)
	workOrders.GET("/:id/billing-status", billingHandler.WorkOrderStatus)

	// --- PURCHASES ---
	purchaseService := purchase.NewService(document_repo.NewPurchaseRepo(txm), supplierRepo, postingEngine, cfg.Numerator, txm)
	purchaseHandler := handlers.NewPurchaseHandler(baseHandler, purchaseService)

	purchases := rg.Group("/purchases")
	purchases.GET("", purchaseHandler.List)
	purchases.GET("/:id", purchaseHandler.Get)
	purchases.POST("", requireLocation, middleware.RequirePermission(auth.PermPurchaseCreate), purchaseHandler.Create)
	purchases.PUT("/:id", middleware.RequirePermission(auth.PermPurchaseCreate), purchaseHandler.Update)
	purchases.POST("/:id/post", middleware.RequirePermission(auth.PermPurchasePost), purchaseHandler.Post)
	purchases.POST("/:id/unpost", middleware.RequirePermission(auth.PermPurchasePost), purchaseHandler.Unpost)
	purchases.DELETE("/:id", middleware.RequirePermission(auth.PermPurchaseCreate), purchaseHandler.Delete)

	// --- STOCKTAKES ---
	stocktakeService := stocktake.NewService(document_repo.NewStocktakeRepo(txm), stockService, postingEngine, cfg.Numerator, txm)
	stocktakeHandler := handlers.NewStocktakeHandler(baseHandler, stocktakeService)

	stocktakes := rg.Group("/stocktakes", middleware.RequirePermission(auth.PermManageInventory))
	stocktakes.GET("", stocktakeHandler.List)
	stocktakes.GET("/:id", stocktakeHandler.Get)
	stocktakes.GET("/:id/variance", stocktakeHandler.Variance)
	stocktakes.POST("", requireLocation, stocktakeHandler.Create)
	stocktakes.POST("/:id/prepare", stocktakeHandler.PrepareSheet)
	stocktakes.POST("/:id/start", stocktakeHandler.Start)
	stocktakes.POST("/:id/counts", stocktakeHandler.RecordCount)
	stocktakes.POST("/:id/complete", stocktakeHandler.Complete)
	stocktakes.POST("/:id/cancel", stocktakeHandler.Cancel)
	stocktakes.POST("/:id/post", stocktakeHandler.Post)
	stocktakes.POST("/:id/unpost", stocktakeHandler.Unpost)
	stocktakes.DELETE("/:id", stocktakeHandler.Delete)

	// --- PETTY CASH ---
	pettyCashService := pettycash.NewService(document_repo.NewPettyCashRepo(txm), accountRepo, cfg.Numerator, txm)
	pettyCashHandler := handlers.NewPettyCashHandler(baseHandler, pettyCashService)

	pettyCash := rg.Group("/petty-cash", middleware.RequirePermission(auth.PermManageFinance))
	pettyCash.GET("", pettyCashHandler.List)
	pettyCash.GET("/:id", pettyCashHandler.Get)
	pettyCash.POST("", requireLocation, pettyCashHandler.Create)
	pettyCash.PUT("/:id", pettyCashHandler.Update)
	pettyCash.DELETE("/:id", pettyCashHandler.Delete)

	// --- OPERATING EXPENSES ---
	expenseService := expense.NewService(document_repo.NewExpenseRepo(txm), accountRepo, cfg.Numerator, txm)
	expenseHandler := handlers.NewExpenseHandler(baseHandler, expenseService)

	expenses := rg.Group("/expenses", middleware.RequirePermission(auth.PermManageFinance))
	expenses.GET("", expenseHandler.List)
	expenses.GET("/:id", expenseHandler.Get)
	expenses.POST("", requireLocation, expenseHandler.Create)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	// --- LOANS ---
	loanService := loan.NewService(document_repo.NewLoanRepo(txm), staffRepo, cfg.Numerator, txm)
	loanHandler := handlers.NewLoanHandler(baseHandler, loanService)

	loans := rg.Group("/loans", middleware.RequirePermission(auth.PermManageFinance))
	loans.GET("", loanHandler.List)
	loans.GET("/:id", loanHandler.Get)
	loans.POST("", requireLocation, loanHandler.Create)
	loans.POST("/:id/payments", loanHandler.RegisterPayment)

	// --- TIME ENTRIES ---
	timeEntryService := timeentry.NewService(document_repo.NewTimeEntryRepo(txm), staffRepo, cfg.Numerator, txm)
	timeEntryHandler := handlers.NewTimeEntryHandler(baseHandler, timeEntryService)

	timeEntries := rg.Group("/time-entries")
	timeEntries.GET("", middleware.RequirePermission(auth.PermManagePayroll), timeEntryHandler.List)
	timeEntries.GET("/:id", middleware.RequirePermission(auth.PermManagePayroll), timeEntryHandler.Get)
	// Punches come from the clock terminal; any authenticated user.
	timeEntries.POST("/punch-in", requireLocation, timeEntryHandler.PunchIn)
	timeEntries.POST("/punch-out", timeEntryHandler.PunchOut)

	// --- APPOINTMENTS ---
	appointmentService := appointment.NewService(document_repo.NewAppointmentRepo(txm), clientRepo, vehicleRepo, cfg.Numerator, txm)
	appointmentHandler := handlers.NewAppointmentHandler(baseHandler, appointmentService)

	appointments := rg.Group("/appointments")
	appointments.GET("", appointmentHandler.List)
	appointments.GET("/:id", appointmentHandler.Get)
	appointments.POST("", requireLocation, middleware.RequirePermission(auth.PermManageAppointments), appointmentHandler.Create)
	appointments.POST("/:id/confirm", middleware.RequirePermission(auth.PermManageAppointments), appointmentHandler.Confirm)
	appointments.POST("/:id/fulfill", middleware.RequirePermission(auth.PermManageAppointments), appointmentHandler.Fulfill)
	appointments.POST("/:id/cancel", middleware.RequirePermission(auth.PermManageAppointments), appointmentHandler.Cancel)
}

// registerRegisterRoutes registers the stock register endpoints.
func registerRegisterRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	stockRepo := register_repo.NewStockRepo(cfg.TxManager)
	stockService := stock.NewService(stockRepo)
	stockHandler := handlers.NewStockHandler(baseHandler, stockService, stockRepo)

	stockGroup := rg.Group("/registers/stock")
	stockGroup.GET("/balances", stockHandler.GetBalances)
	stockGroup.GET("/movements", stockHandler.GetMovements)
	stockGroup.GET("/turnover", stockHandler.GetTurnover)
	stockGroup.GET("/availability/:productId", stockHandler.GetAvailability)
	stockGroup.POST("/recalculate", middleware.RequirePermission(auth.PermManageInventory), stockHandler.RecalculateBalances)
}

// registerReportRoutes registers report endpoints behind manage:finance;
// payroll additionally accepts manage:payroll.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	reportService := reports.NewService(report_repo.NewReportRepo(cfg.TxManager))
	reportHandler := handlers.NewReportsHandler(baseHandler, reportService)

	finance := middleware.RequirePermission(auth.PermManageFinance)

	reportsGroup := rg.Group("/reports")
	reportsGroup.GET("/profitability", finance, reportHandler.Profitability)
	reportsGroup.GET("/pnl", finance, reportHandler.PnL)
	reportsGroup.GET("/receivable", finance, reportHandler.Receivable)
	reportsGroup.GET("/payable", finance, reportHandler.Payable)
	reportsGroup.GET("/commissions", finance, reportHandler.Commissions)
	reportsGroup.GET("/retention", finance, reportHandler.ClientRetention)
	reportsGroup.GET("/efficiency", finance, reportHandler.OperationalEfficiency)
	reportsGroup.GET("/accounts/:id/balance", finance, reportHandler.AccountBalance)
	reportsGroup.GET("/payroll", middleware.RequireAnyPermission(auth.PermManagePayroll, auth.PermManageFinance), reportHandler.PayrollSummary)
}

// entityWithID is satisfied by every audited entity.
type entityWithID interface {
	GetID() id.ID
}

// registerAuditHooks attaches create/update trail writers to a service
// hook registry. No-op when the audit service is disabled.
func registerAuditHooks[T entityWithID](audit *postgres.AuditService, entityType string, hooks *domain.HookRegistry[T]) {
	if audit == nil {
		return
	}

	hooks.OnAfterCreate(func(ctx context.Context, e T) error {
		return audit.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionCreate, nil)
	})
	hooks.OnAfterUpdate(func(ctx context.Context, e T) error {
		return audit.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionUpdate, nil)
	})
}
