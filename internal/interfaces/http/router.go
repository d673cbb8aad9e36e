package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/runnersutah/pipetrack-api/internal/application/auth"
	"github.com/runnersutah/pipetrack-api/internal/application/ledger"
	"github.com/runnersutah/pipetrack-api/internal/application/report"
	"github.com/runnersutah/pipetrack-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC  *usecase.CustomerUseCase
	LocationUC  *usecase.LocationUseCase
	TemplateUC  *usecase.TemplateUseCase
	ProductUC   *usecase.ProductUseCase
	LedgerUC    *ledger.UseCase
	ReportUC    *report.UseCase
	AuthUC      *auth.AuthUseCase
	Attachments AttachmentStore
	JWTSecret   string
}

// Router registra las rutas de la API. El catálogo y el ledger son solo para
// admins; los reportes también los ven los clientes (acotados a su propio
// inventario por CanAccessCustomer).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Registro de usuarios lo hace el personal del patio
	protected.Post("/auth/register", RequireAdmin(), authHandler.Register)

	admin := protected.Group("/", RequireAdmin())

	// Customers (solo admin)
	customers := admin.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Storage locations (solo admin)
	locations := admin.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	// Product templates (solo admin)
	templates := admin.Group("/templates")
	templateHandler := NewTemplateHandler(deps.TemplateUC)
	templates.Post("/", templateHandler.Create)
	templates.Get("/", templateHandler.List)
	templates.Get("/:id", templateHandler.GetByID)
	templates.Put("/:id", templateHandler.Update)
	templates.Delete("/:id", templateHandler.Delete)

	// Products (lectura para clientes, escritura solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireAdmin(), productHandler.Create)
	products.Get("/", productHandler.ListByCustomer)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireAdmin(), productHandler.Update)
	products.Delete("/:id", RequireAdmin(), productHandler.Delete)

	// Inventory ledger (lectura para clientes, escritura solo admin)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	invGroup.Post("/changes", RequireAdmin(), inventoryHandler.RecordChange)
	invGroup.Get("/changes", inventoryHandler.ListChanges)
	invGroup.Delete("/changes/:id", RequireAdmin(), inventoryHandler.DeleteChange)
	invGroup.Post("/zero-out", RequireAdmin(), inventoryHandler.ZeroOut)

	// Reports (admins y el propio cliente)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/customers.xlsx", RequireAdmin(), reportHandler.ExportCustomers)
	reports.Get("/customers/:customer_id/balances", reportHandler.Balances)
	reports.Get("/customers/:customer_id/balances.xlsx", reportHandler.ExportBalances)
	reports.Get("/customers/:customer_id/products.xlsx", reportHandler.ExportProducts)
	reports.Get("/customers/:customer_id/ledger.xlsx", reportHandler.ExportChanges)
	reports.Get("/customers/:customer_id/products/:product_id/history", reportHandler.History)
	reports.Get("/customers/:customer_id/products/:product_id/history.xlsx", reportHandler.ExportHistory)

	// Attachments (solo admin)
	attachments := admin.Group("/attachments")
	attachmentHandler := NewAttachmentHandler(deps.Attachments)
	attachments.Post("/", attachmentHandler.Upload)
	attachments.Get("/:id", attachmentHandler.Download)
	attachments.Delete("/:id", attachmentHandler.Delete)
}
