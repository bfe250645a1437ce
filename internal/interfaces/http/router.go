package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Restaurante-api/internal/application/auth"
	"github.com/jhoicas/Restaurante-api/internal/application/availability"
	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/application/recipe"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BusinessUC     *usecase.BusinessUseCase
	BranchUC       *usecase.BranchUseCase
	CategoryUC     *usecase.CategoryUseCase
	IngredientUC   *usecase.IngredientUseCase
	ProductUC      *usecase.ProductUseCase
	RecipeUC       *recipe.UseCase
	RecordTx       *inventory.RecordTransactionUseCase
	SnapshotUC     *inventory.SnapshotUseCase
	RebuildUC      *inventory.RebuildSnapshotUseCase
	AvailabilityUC *availability.UseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// El alta de negocio es el bootstrap del sistema: el registro de usuarios
	// exige un negocio existente, así que Create no puede pedir token.
	businessHandler := NewBusinessHandler(deps.BusinessUC)
	api.Post("/businesses", businessHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	manager := RequireRole(entity.RoleAdmin, entity.RoleGerente)

	// Businesses (consulta protegida)
	businesses := protected.Group("/businesses")
	businesses.Get("/", businessHandler.List)
	businesses.Get("/:id", businessHandler.GetByID)

	// Branches (protegido; escritura solo admin/gerente)
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", manager, branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", manager, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)

	// Ingredients (protegido; escritura solo admin/gerente)
	ingredients := protected.Group("/ingredients")
	ingredientHandler := NewIngredientHandler(deps.IngredientUC)
	ingredients.Post("/", manager, ingredientHandler.Create)
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Get("/:id", ingredientHandler.GetByID)
	ingredients.Put("/:id", manager, ingredientHandler.Update)
	ingredients.Delete("/:id", manager, ingredientHandler.Deactivate)

	// Products + receta + disponibilidad (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	availabilityHandler := NewAvailabilityHandler(deps.AvailabilityUC)
	products.Post("/", manager, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", manager, productHandler.Update)
	products.Delete("/:id", manager, productHandler.Deactivate)
	products.Put("/:id/recipe", manager, recipeHandler.SetRecipe)
	products.Get("/:id/recipe", recipeHandler.GetRecipe)
	products.Delete("/:id/recipe", manager, recipeHandler.UnlinkRecipe)
	products.Get("/:id/availability", availabilityHandler.AvailablePortions)

	// Inventory: ledger, snapshots y reportes (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RecordTx, deps.SnapshotUC, deps.RebuildUC)
	invGroup.Post("/transactions", inventoryHandler.RecordTransaction)
	invGroup.Get("/transactions", inventoryHandler.ListTransactions)
	invGroup.Get("/snapshots", manager, inventoryHandler.ListSnapshots)
	invGroup.Get("/snapshots/:item_type/:item_id", inventoryHandler.GetSnapshot)
	invGroup.Put("/reorder-level", manager, inventoryHandler.SetReorderLevel)
	invGroup.Get("/low-stock", manager, inventoryHandler.LowStockReport)
	invGroup.Post("/snapshots/rebuild", RequireRole(entity.RoleAdmin), inventoryHandler.RebuildSnapshot)
}
