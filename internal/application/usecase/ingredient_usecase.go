package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// IngredientUseCase casos de uso de catálogo para ingredientes. El stock se
// maneja vía ledger; acá solo identidad, unidad canónica y costo.
type IngredientUseCase struct {
	repo repository.IngredientRepository
}

// NewIngredientUseCase construye el caso de uso.
func NewIngredientUseCase(repo repository.IngredientRepository) *IngredientUseCase {
	return &IngredientUseCase{repo: repo}
}

// Create crea un ingrediente. Nombre y unidad obligatorios; nombre único por
// negocio → ErrDuplicateName.
func (uc *IngredientUseCase) Create(businessID string, in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByBusinessAndName(businessID, in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}
	cost := decimal.Zero
	if in.CostPerUnit != nil {
		if in.CostPerUnit.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		cost = *in.CostPerUnit
	}
	now := time.Now()
	ingredient := &entity.Ingredient{
		ID:          uuid.New().String(),
		BusinessID:  businessID,
		Name:        in.Name,
		Unit:        in.Unit,
		CostPerUnit: cost,
		SKU:         in.SKU,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ingredient); err != nil {
		return nil, err
	}
	return toIngredientResponse(ingredient), nil
}

// GetByID obtiene un ingrediente del negocio.
func (uc *IngredientUseCase) GetByID(businessID, id string) (*dto.IngredientResponse, error) {
	ingredient, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil || ingredient.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	return toIngredientResponse(ingredient), nil
}

// Update modifica costo, SKU y estado activo. Nombre y unidad son inmutables:
// las recetas y el stock existentes dependen de ellos.
func (uc *IngredientUseCase) Update(businessID, id string, in dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	ingredient, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil || ingredient.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	if in.CostPerUnit != nil {
		if in.CostPerUnit.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		ingredient.CostPerUnit = *in.CostPerUnit
	}
	if in.SKU != nil {
		ingredient.SKU = *in.SKU
	}
	if in.Active != nil {
		ingredient.Active = *in.Active
	}
	ingredient.UpdatedAt = time.Now()
	if err := uc.repo.Update(ingredient); err != nil {
		return nil, err
	}
	return toIngredientResponse(ingredient), nil
}

// Deactivate marca el ingrediente como inactivo. Nunca se borra: el ledger y
// las recetas lo siguen referenciando.
func (uc *IngredientUseCase) Deactivate(businessID, id string) error {
	ingredient, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if ingredient == nil || ingredient.BusinessID != businessID {
		return domain.ErrNotFound
	}
	ingredient.Active = false
	ingredient.UpdatedAt = time.Now()
	return uc.repo.Update(ingredient)
}

// List lista ingredientes del negocio con paginación.
func (uc *IngredientUseCase) List(businessID string, limit, offset int) (*dto.IngredientListResponse, error) {
	list, err := uc.repo.ListByBusiness(businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IngredientResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toIngredientResponse(i))
	}
	return &dto.IngredientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toIngredientResponse(i *entity.Ingredient) *dto.IngredientResponse {
	if i == nil {
		return nil
	}
	return &dto.IngredientResponse{
		ID:          i.ID,
		BusinessID:  i.BusinessID,
		Name:        i.Name,
		Unit:        i.Unit,
		CostPerUnit: i.CostPerUnit,
		SKU:         i.SKU,
		Active:      i.Active,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
