package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-ledger/internal/application/dto"
	"github.com/tu-usuario/inventario-ledger/internal/application/usecase"
	"github.com/tu-usuario/inventario-ledger/internal/domain"
	"github.com/tu-usuario/inventario-ledger/internal/domain/entity"
	"github.com/tu-usuario/inventario-ledger/internal/infrastructure/ledger"
	"github.com/tu-usuario/inventario-ledger/internal/storage/memory"
	"github.com/tu-usuario/inventario-ledger/pkg/keylock"
)

func newProductUC(t *testing.T) (*usecase.ProductUseCase, *ledger.ProductRepository) {
	t.Helper()
	store := memory.New()
	productRepo := ledger.NewProductRepository(store)
	categoryRepo := ledger.NewCategoryRepository(store)
	require.NoError(t, categoryRepo.Create(context.Background(), &entity.Category{
		ID: "cat-1", Name: "Bebidas",
	}))
	return usecase.NewProductUseCase(productRepo, categoryRepo, keylock.New()), productRepo
}

func TestProductCreate_ConStockInicial(t *testing.T) {
	uc, _ := newProductUC(t)

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Agua mineral 600ml",
		CategoryID: "cat-1",
		Price:      decimal.NewFromInt(2500),
		Stock:      24,
		MinStock:   5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, 24, out.Stock)
	assert.False(t, out.BelowMinStock)
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc, _ := newProductUC(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateProductRequest
		want error
	}{
		{"sin nombre", dto.CreateProductRequest{Price: decimal.NewFromInt(10)}, domain.ErrInvalidInput},
		{"precio negativo", dto.CreateProductRequest{Name: "x", Price: decimal.NewFromInt(-1)}, domain.ErrInvalidInput},
		{"stock negativo", dto.CreateProductRequest{Name: "x", Stock: -1}, domain.ErrInvalidInput},
		{"categoría inexistente", dto.CreateProductRequest{Name: "x", CategoryID: "no-existe"}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// Update no toca el stock: el único camino para moverlo son los movimientos.
func TestProductUpdate_NoModificaStock(t *testing.T) {
	uc, repo := newProductUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		Name: "Café molido 500g", Price: decimal.NewFromInt(18900), Stock: 12, MinStock: 4,
	})
	require.NoError(t, err)

	newName := "Café molido premium 500g"
	newMin := 6
	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{
		Name: &newName, MinStock: &newMin,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, 6, updated.MinStock)
	assert.Equal(t, 12, updated.Stock, "update nunca cambia el stock")

	persisted, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, persisted.Stock)
}

func TestProductUpdate_Inexistente(t *testing.T) {
	uc, _ := newProductUC(t)
	name := "x"

	out, err := uc.Update(context.Background(), "no-existe", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, out, "producto inexistente devuelve nil sin error")
}

func TestProductDelete_Inexistente(t *testing.T) {
	uc, _ := newProductUC(t)

	err := uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// BelowMinStock refleja stock < min_stock en las respuestas.
func TestProduct_BelowMinStock(t *testing.T) {
	uc, _ := newProductUC(t)

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Jabón líquido 1L", Price: decimal.NewFromInt(9800), Stock: 2, MinStock: 3,
	})
	require.NoError(t, err)
	assert.True(t, out.BelowMinStock)
}
