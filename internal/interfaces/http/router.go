package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/pkg/jwt"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	QueryUC        *appcatalog.QueryUseCase
	ReportUC       *appcatalog.ReportUseCase
	MetricsHandler nethttp.Handler // nil = sin /metrics
	JWTSecret      string
	ServiceName    string
	Log            *logger.Logger // nil = sin log de errores internos
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Catálogo por tienda (requiere Bearer Token con acceso a la tienda)
	store := api.Group("/stores/:storeID",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(jwt.RoleAdmin, jwt.RoleOwner, jwt.RoleViewer),
		RequireStoreAccess(),
	)

	catalogHandler := NewCatalogHandler(deps.QueryUC, deps.ReportUC, deps.Log)
	catalog := store.Group("/catalog")
	catalog.Get("/products", catalogHandler.ListProducts)
	catalog.Get("/orders", catalogHandler.ListOrders)
	catalog.Get("/products/report.pdf", catalogHandler.ProductReport)
	catalog.Get("/orders/report.pdf", catalogHandler.OrderReport)
}
