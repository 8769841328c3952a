package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/auth"
	"github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/application/production"
	"github.com/jhoicas/Costeo-api/internal/application/purchasing"
	"github.com/jhoicas/Costeo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	MaterialUC   *usecase.MaterialUseCase
	SupplierUC   *usecase.SupplierUseCase
	ProductUC    *usecase.ProductUseCase
	RecipeUC     *costing.RecipeUseCase
	PurchaseUC   *purchasing.PurchaseUseCase
	ProductionUC *production.ProductionUseCase
	InventoryUC  *inventory.InventoryUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(auth.RoleAdmin)

	// Materials (protegido)
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", adminOnly, materialHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.RecipeUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/recipes", productHandler.ListRecipes)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Recipes (protegido)
	recipes := protected.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:id", recipeHandler.GetByID)
	recipes.Put("/:id", recipeHandler.Update)
	recipes.Post("/:id/toggle-active", recipeHandler.ToggleActive)
	recipes.Delete("/:id", adminOnly, recipeHandler.Delete)

	// Purchases (protegido)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Get("/:id/pdf", purchaseHandler.GetPDF)
	purchases.Post("/:id/receive", purchaseHandler.Receive)
	purchases.Delete("/:id", adminOnly, purchaseHandler.Delete)

	// Productions (protegido)
	productions := protected.Group("/productions")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	productions.Post("/", productionHandler.Create)
	productions.Get("/", productionHandler.List)
	productions.Get("/:id", productionHandler.GetByID)
	productions.Get("/:id/check-stock", productionHandler.CheckStock)
	productions.Post("/:id/complete", productionHandler.Complete)
	productions.Post("/:id/cancel", productionHandler.Cancel)
	productions.Delete("/:id", adminOnly, productionHandler.Delete)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/adjustments", inventoryHandler.Adjust)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/:item_kind/:item_id", inventoryHandler.ListItemMovements)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
}
