package recipe

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// UseCase administración de recetas (BOM): una receta por producto.
type UseCase struct {
	txRunner       TxRunner
	recipeRepo     repository.RecipeRepository
	productRepo    repository.ProductRepository
	ingredientRepo repository.IngredientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	ingredientRepo repository.IngredientRepository,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		recipeRepo:     recipeRepo,
		productRepo:    productRepo,
		ingredientRepo: ingredientRepo,
	}
}

// SetRecipe reemplaza el conjunto completo de líneas de la receta del producto
// dentro de una transacción (no es patch línea a línea, para evitar carreras
// de actualización parcial). Validaciones por línea:
//   - cantidad requerida > 0 → ErrInvalidInput
//   - ingrediente existe y es del negocio → ErrUnknownIngredient
//   - unidad de la línea == unidad canónica del ingrediente → ErrUnitMismatch
//     (no hay conversión implícita: un desajuste se rechaza, nunca se convierte
//     en silencio)
//
// Una receta con cero líneas es válida y deja al producto con disponibilidad cero.
func (uc *UseCase) SetRecipe(ctx context.Context, businessID, productID string, in dto.SetRecipeRequest) (*dto.RecipeResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}

	lines := make([]entity.RecipeLine, 0, len(in.Lines))
	names := make(map[string]string, len(in.Lines))
	for _, l := range in.Lines {
		if !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		ing, err := uc.ingredientRepo.GetByID(l.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil || ing.BusinessID != businessID {
			return nil, domain.ErrUnknownIngredient
		}
		unit := l.Unit
		if unit == "" {
			unit = ing.Unit
		}
		if unit != ing.Unit {
			return nil, domain.ErrUnitMismatch
		}
		lines = append(lines, entity.RecipeLine{
			IngredientID: l.IngredientID,
			Quantity:     l.Quantity,
			Unit:         unit,
		})
		names[l.IngredientID] = ing.Name
	}

	recipe := &entity.Recipe{
		ProductID:  productID,
		BusinessID: businessID,
		Lines:      lines,
		UpdatedAt:  time.Now(),
	}
	err = uc.txRunner.RunRecipe(ctx, func(recipeRepo repository.RecipeRepository) error {
		return recipeRepo.Replace(recipe)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(recipe, names), nil
}

// GetRecipe devuelve la receta del producto. Sin receta definida → respuesta
// con Lines vacío (estado válido, no error).
func (uc *UseCase) GetRecipe(businessID, productID string) (*dto.RecipeResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	recipe, err := uc.recipeRepo.Get(productID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return &dto.RecipeResponse{ProductID: productID, Lines: []dto.RecipeLineResponse{}}, nil
	}
	names := make(map[string]string, len(recipe.Lines))
	for _, l := range recipe.Lines {
		if ing, err := uc.ingredientRepo.GetByID(l.IngredientID); err == nil && ing != nil {
			names[l.IngredientID] = ing.Name
		}
	}
	return uc.toResponse(recipe, names), nil
}

// UnlinkRecipe elimina la receta del producto (todas sus líneas).
func (uc *UseCase) UnlinkRecipe(ctx context.Context, businessID, productID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || product.BusinessID != businessID {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunRecipe(ctx, func(recipeRepo repository.RecipeRepository) error {
		return recipeRepo.Delete(productID)
	})
}

func (uc *UseCase) toResponse(r *entity.Recipe, names map[string]string) *dto.RecipeResponse {
	lines := make([]dto.RecipeLineResponse, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, dto.RecipeLineResponse{
			IngredientID:   l.IngredientID,
			IngredientName: names[l.IngredientID],
			Quantity:       l.Quantity,
			Unit:           l.Unit,
		})
	}
	return &dto.RecipeResponse{
		ProductID: r.ProductID,
		Lines:     lines,
		UpdatedAt: r.UpdatedAt,
	}
}
