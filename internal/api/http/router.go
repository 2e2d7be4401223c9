package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freshmart/supermarket-service/internal/api/http/handlers"
	"github.com/freshmart/supermarket-service/internal/auth"
	"github.com/freshmart/supermarket-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Users    *handlers.UsersHandler
	Stores   *handlers.StoresHandler
	Products *handlers.ProductsHandler
	OAuth    *handlers.OAuthHandler
	Gate     *auth.Gate
}

// RegisterRoutes wires HTTP routes. The gate runs on every request; the
// per-route RequireRoles middleware is the static authorization policy
// mapping each protected operation to its permitted roles.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/oauth2/authorize/github", cfg.OAuth.Authorize)
	app.Get("/login/oauth2/code/github", cfg.OAuth.Callback)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Get("/welcome", cfg.Users.Welcome)
	users.Get("/me", auth.RequireAuthenticated(), cfg.Users.Me)
	users.Get("/by-role", auth.RequireRoles(domain.RoleAdmin), cfg.Users.ListByRole)
	users.Get("/", auth.RequireRoles(domain.RoleAdmin), cfg.Users.List)
	users.Get("/:id", auth.RequireAuthenticated(), cfg.Users.GetByID)
	users.Put("/:id", auth.RequireRoles(domain.RoleAdmin), cfg.Users.Update)
	users.Delete("/:id", auth.RequireRoles(domain.RoleAdmin), cfg.Users.Delete)

	stores := api.Group("/stores")
	stores.Get("/", auth.RequireAuthenticated(), cfg.Stores.List)
	stores.Get("/by-manager/:managerId", auth.RequireAuthenticated(), cfg.Stores.ListByManager)
	stores.Post("/", auth.RequireRoles(domain.RoleSeller), cfg.Stores.Create)
	stores.Get("/:id", auth.RequireRoles(domain.RoleSeller, domain.RoleAdmin), cfg.Stores.GetByID)
	stores.Put("/:id", auth.RequireRoles(domain.RoleSeller), cfg.Stores.Update)
	stores.Delete("/:id", auth.RequireRoles(domain.RoleSeller, domain.RoleAdmin), cfg.Stores.Delete)

	products := api.Group("/products", auth.RequireAuthenticated())
	products.Get("/", cfg.Products.List)
	products.Get("/by-category", cfg.Products.ListByCategory)
	products.Get("/by-category-and-store", cfg.Products.ListByCategoryAndStore)
	products.Get("/by-store/:storeId", cfg.Products.ListByStore)
	products.Get("/search", cfg.Products.Search)
	products.Post("/", cfg.Products.Create)
	products.Get("/:id", cfg.Products.GetByID)
	products.Put("/:id", cfg.Products.Update)
	products.Delete("/:id", cfg.Products.Delete)
}
