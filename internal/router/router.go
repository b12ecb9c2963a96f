package router

import (
	"time"

	"inventra/internal/config"
	"inventra/internal/handler"
	"inventra/internal/infra"
	"inventra/internal/middleware"
	"inventra/internal/repository"
	"inventra/internal/service"
	"inventra/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	invoiceGen := infra.NewPDFInvoiceGenerator(cfg.InvoiceStoragePath)

	// ── Repositories ─────────────────────────────────────────────────────────
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	itemRepo := repository.NewItemRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	saleOrderRepo := repository.NewSaleOrderRepository(db)
	purchaseOrderRepo := repository.NewPurchaseOrderRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, companyRepo, cfg)
	companySvc := service.NewCompanyService(companyRepo, userRepo)
	categorySvc := service.NewCategoryService(txManager, categoryRepo, itemRepo)
	itemSvc := service.NewItemService(itemRepo, categoryRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	vendorSvc := service.NewVendorService(vendorRepo)
	inventorySvc := service.NewInventoryService(itemRepo, movementRepo)
	shipmentSvc := service.NewShipmentService(shipmentRepo)
	saleOrderSvc := service.NewSaleOrderService(
		txManager, saleOrderRepo, itemRepo, customerRepo, companyRepo,
		inventorySvc, shipmentSvc, invoiceGen, dispatcher,
	)
	purchaseOrderSvc := service.NewPurchaseOrderService(
		txManager, purchaseOrderRepo, itemRepo, vendorRepo, inventorySvc,
	)
	dashboardSvc := service.NewDashboardService(dashboardRepo, itemRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	companyH := handler.NewCompanyHandler(companySvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	itemsH := handler.NewItemsHandler(itemSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	vendorsH := handler.NewVendorsHandler(vendorSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	saleOrdersH := handler.NewSaleOrdersHandler(saleOrderSvc, &handler.InvoiceFiles{Resolve: invoiceGen.FilePath})
	purchaseOrdersH := handler.NewPurchaseOrdersHandler(purchaseOrderSvc)
	shipmentsH := handler.NewShipmentsHandler(shipmentSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes — every business entity is scoped to the JWT's user
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)
		v1.PUT("/auth/profile", authH.UpdateProfile)

		v1.GET("/company", companyH.Get)
		v1.PUT("/company", companyH.Upsert)

		items := v1.Group("/items")
		{
			items.POST("", itemsH.Create)
			items.GET("", itemsH.List)
			items.GET("/:id", itemsH.Get)
			items.PUT("/:id", itemsH.Update)
			items.DELETE("/:id", itemsH.Delete)
			items.GET("/:id/movements", inventoryH.Movements)
		}

		v1.GET("/inventory/alerts", inventoryH.Alerts)

		categories := v1.Group("/categories")
		{
			categories.POST("", categoriesH.Create)
			categories.GET("", categoriesH.List)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		customers := v1.Group("/customers")
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.PUT("/:id", customersH.Update)
		}

		vendors := v1.Group("/vendors")
		{
			vendors.POST("", vendorsH.Create)
			vendors.GET("", vendorsH.List)
		}

		saleOrders := v1.Group("/sale-orders")
		{
			saleOrders.POST("", saleOrdersH.Create)
			saleOrders.GET("", saleOrdersH.List)
			saleOrders.GET("/:id", saleOrdersH.Get)
			saleOrders.PATCH("/:id/payment", saleOrdersH.UpdatePayment)
			saleOrders.GET("/:id/invoice", saleOrdersH.DownloadInvoice)
		}

		purchaseOrders := v1.Group("/purchase-orders")
		{
			purchaseOrders.POST("", purchaseOrdersH.Create)
			purchaseOrders.GET("", purchaseOrdersH.List)
			purchaseOrders.PATCH("/:id/payment", purchaseOrdersH.UpdatePayment)
		}

		shipments := v1.Group("/shipments")
		{
			shipments.GET("", shipmentsH.List)
			shipments.PATCH("/:id/status", shipmentsH.UpdateStatus)
		}

		v1.GET("/dashboard", dashboardH.Summary)
	}

	return r
}
