package usecase_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeIngredientRepo struct {
	rows map[string]*entity.Ingredient
}

func (f *fakeIngredientRepo) Create(i *entity.Ingredient) error { f.rows[i.ID] = i; return nil }
func (f *fakeIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	return f.rows[id], nil
}
func (f *fakeIngredientRepo) GetByBusinessAndName(businessID, name string) (*entity.Ingredient, error) {
	for _, i := range f.rows {
		if i.BusinessID == businessID && strings.EqualFold(i.Name, name) {
			return i, nil
		}
	}
	return nil, nil
}
func (f *fakeIngredientRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, i := range f.rows {
		if i.BusinessID == businessID {
			out = append(out, i)
		}
	}
	return out, nil
}
func (f *fakeIngredientRepo) Update(i *entity.Ingredient) error { f.rows[i.ID] = i; return nil }

type fakeProductRepo struct {
	rows map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error             { f.rows[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return f.rows[id], nil }
func (f *fakeProductRepo) GetByBusinessAndName(businessID, name string) (*entity.Product, error) {
	for _, p := range f.rows {
		if p.BusinessID == businessID && strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.rows {
		if p.BusinessID == businessID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeProductRepo) Update(p *entity.Product) error { f.rows[p.ID] = p; return nil }

type fakeCategoryRepo struct {
	rows map[string]*entity.Category
}

func (f *fakeCategoryRepo) Create(c *entity.Category) error             { f.rows[c.ID] = c; return nil }
func (f *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) { return f.rows[id], nil }
func (f *fakeCategoryRepo) ListByBusiness(string, int, int) ([]*entity.Category, error) {
	return nil, nil
}

const bizID = "biz-1"

// ──────────────────────────────────────────────────────────────────────────────
// Tests Ingredient
// ──────────────────────────────────────────────────────────────────────────────

func TestIngredientCreate_OK(t *testing.T) {
	uc := usecase.NewIngredientUseCase(&fakeIngredientRepo{rows: map[string]*entity.Ingredient{}})

	cost := d("2.50")
	out, err := uc.Create(bizID, dto.CreateIngredientRequest{
		Name: "Harina", Unit: "kg", CostPerUnit: &cost, SKU: "HAR-001",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Harina", out.Name)
	assert.Equal(t, "kg", out.Unit)
	assert.True(t, out.Active, "un ingrediente nuevo nace activo")
	assert.True(t, out.CostPerUnit.Equal(d("2.50")))
}

func TestIngredientCreate_SinNombreOUnidad_Rechazado(t *testing.T) {
	uc := usecase.NewIngredientUseCase(&fakeIngredientRepo{rows: map[string]*entity.Ingredient{}})

	_, err := uc.Create(bizID, dto.CreateIngredientRequest{Name: "", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(bizID, dto.CreateIngredientRequest{Name: "Harina", Unit: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El nombre es único por negocio sin distinguir mayúsculas.
func TestIngredientCreate_NombreDuplicado_Conflicto(t *testing.T) {
	repo := &fakeIngredientRepo{rows: map[string]*entity.Ingredient{}}
	uc := usecase.NewIngredientUseCase(repo)

	_, err := uc.Create(bizID, dto.CreateIngredientRequest{Name: "Harina", Unit: "kg"})
	require.NoError(t, err)

	_, err = uc.Create(bizID, dto.CreateIngredientRequest{Name: "harina", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	// El mismo nombre en otro negocio sí es válido.
	_, err = uc.Create("biz-2", dto.CreateIngredientRequest{Name: "Harina", Unit: "kg"})
	assert.NoError(t, err)
}

func TestIngredientCreate_CostoNegativo_Rechazado(t *testing.T) {
	uc := usecase.NewIngredientUseCase(&fakeIngredientRepo{rows: map[string]*entity.Ingredient{}})

	cost := d("-1")
	_, err := uc.Create(bizID, dto.CreateIngredientRequest{Name: "Harina", Unit: "kg", CostPerUnit: &cost})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngredientDeactivate_MarcaInactivo(t *testing.T) {
	repo := &fakeIngredientRepo{rows: map[string]*entity.Ingredient{}}
	uc := usecase.NewIngredientUseCase(repo)

	out, err := uc.Create(bizID, dto.CreateIngredientRequest{Name: "Harina", Unit: "kg"})
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(bizID, out.ID))

	stored, err := repo.GetByID(out.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active, "desactivar nunca borra: el ledger y las recetas lo siguen referenciando")
}

func TestIngredientDeactivate_OtroNegocio_NotFound(t *testing.T) {
	repo := &fakeIngredientRepo{rows: map[string]*entity.Ingredient{}}
	uc := usecase.NewIngredientUseCase(repo)

	out, err := uc.Create(bizID, dto.CreateIngredientRequest{Name: "Harina", Unit: "kg"})
	require.NoError(t, err)

	err = uc.Deactivate("biz-ajeno", out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Product
// ──────────────────────────────────────────────────────────────────────────────

func newProductUC() (*usecase.ProductUseCase, *fakeProductRepo, *fakeCategoryRepo) {
	products := &fakeProductRepo{rows: map[string]*entity.Product{}}
	categories := &fakeCategoryRepo{rows: map[string]*entity.Category{
		"cat-1": {ID: "cat-1", BusinessID: bizID, Name: "Panadería"},
	}}
	return usecase.NewProductUseCase(products, categories), products, categories
}

func TestProductCreate_OK(t *testing.T) {
	uc, _, _ := newProductUC()

	out, err := uc.Create(bizID, dto.CreateProductRequest{
		Name: "Pan de ajo", Price: d("4.50"), CategoryID: "cat-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pan de ajo", out.Name)
	assert.True(t, out.Active)
}

func TestProductCreate_PrecioNoPositivo_Rechazado(t *testing.T) {
	uc, _, _ := newProductUC()

	_, err := uc.Create(bizID, dto.CreateProductRequest{Name: "Pan", Price: d("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_CategoriaInexistente_NotFound(t *testing.T) {
	uc, _, _ := newProductUC()

	_, err := uc.Create(bizID, dto.CreateProductRequest{
		Name: "Pan", Price: d("4"), CategoryID: "cat-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUpdate_RenombreADuplicado_Conflicto(t *testing.T) {
	uc, _, _ := newProductUC()

	_, err := uc.Create(bizID, dto.CreateProductRequest{Name: "Pan de ajo", Price: d("4")})
	require.NoError(t, err)
	second, err := uc.Create(bizID, dto.CreateProductRequest{Name: "Baguette", Price: d("3")})
	require.NoError(t, err)

	newName := "Pan de ajo"
	_, err = uc.Update(bizID, second.ID, dto.UpdateProductRequest{Name: &newName})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestProductDeactivate_MarcaInactivo(t *testing.T) {
	uc, products, _ := newProductUC()

	out, err := uc.Create(bizID, dto.CreateProductRequest{Name: "Pan", Price: d("4")})
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(bizID, out.ID))

	stored, err := products.GetByID(out.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}
