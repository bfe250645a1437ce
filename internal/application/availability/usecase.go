package availability

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/availability"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// UseCase calcula porciones disponibles de un producto en una sucursal:
// lee receta + snapshots y delega en el calculador puro. Solo lecturas,
// nunca muta receta ni stock.
type UseCase struct {
	productRepo    repository.ProductRepository
	ingredientRepo repository.IngredientRepository
	recipeRepo     repository.RecipeRepository
	snapshotRepo   repository.StockSnapshotRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	productRepo repository.ProductRepository,
	ingredientRepo repository.IngredientRepository,
	recipeRepo repository.RecipeRepository,
	snapshotRepo repository.StockSnapshotRepository,
) *UseCase {
	return &UseCase{
		productRepo:    productRepo,
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
		snapshotRepo:   snapshotRepo,
	}
}

// AvailablePortions devuelve cuántas porciones del producto pueden venderse
// con el stock actual de la sucursal. Producto inexistente → ErrUnknownItem;
// "sin receta" NO es error: devuelve cero porciones con RecipeDefined=false
// para que la UI lo distinga de "sin stock".
func (uc *UseCase) AvailablePortions(ctx context.Context, businessID, branchID, productID string) (*dto.AvailabilityResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.BusinessID != businessID {
		return nil, domain.ErrUnknownItem
	}

	recipe, err := uc.recipeRepo.Get(productID)
	if err != nil {
		return nil, err
	}
	if recipe == nil || len(recipe.Lines) == 0 {
		return &dto.AvailabilityResponse{
			ProductID:     productID,
			BranchID:      branchID,
			Portions:      0,
			RecipeDefined: false,
		}, nil
	}

	lines := make([]availability.Line, 0, len(recipe.Lines))
	for _, l := range recipe.Lines {
		name := ""
		if ing, err := uc.ingredientRepo.GetByID(l.IngredientID); err == nil && ing != nil {
			name = ing.Name
		}
		lines = append(lines, availability.Line{
			IngredientID:   l.IngredientID,
			IngredientName: name,
			Required:       l.Quantity,
		})
	}

	refs, err := uc.snapshotRepo.ListStockRefsForIngredients(ctx, businessID, branchID)
	if err != nil {
		return nil, err
	}
	stock := make([]availability.StockRef, 0, len(refs))
	for _, r := range refs {
		stock = append(stock, availability.StockRef{
			ItemID:   r.ItemID,
			ItemName: r.ItemName,
			Quantity: r.Quantity,
		})
	}

	return &dto.AvailabilityResponse{
		ProductID:     productID,
		BranchID:      branchID,
		Portions:      availability.Portions(lines, stock),
		RecipeDefined: true,
	}, nil
}
