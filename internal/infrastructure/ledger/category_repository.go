package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tu-usuario/inventario-ledger/internal/domain/entity"
	"github.com/tu-usuario/inventario-ledger/internal/domain/repository"
	"github.com/tu-usuario/inventario-ledger/internal/storage"
)

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository adaptador de Category sobre el store.
type CategoryRepository struct {
	store storage.Store
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(store storage.Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// Create persiste una categoría nueva.
func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return putJSON(ctx, r.store, storage.CategoryKey(category.ID), category)
}

// GetByID devuelve la categoría o (nil, nil) si no existe.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var category entity.Category
	found, err := getJSON(ctx, r.store, storage.CategoryKey(id), &category)
	if err != nil || !found {
		return nil, err
	}
	return &category, nil
}

// Update sobreescribe la categoría completa.
func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return putJSON(ctx, r.store, storage.CategoryKey(category.ID), category)
}

// List devuelve categorías paginadas.
func (r *CategoryRepository) List(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	entries, err := r.store.ScanPrefix(ctx, storage.CategoryPrefix)
	if err != nil {
		return nil, err
	}
	categories := make([]*entity.Category, 0, len(entries))
	for _, e := range entries {
		var c entity.Category
		if err := json.Unmarshal(e.Value, &c); err != nil {
			return nil, fmt.Errorf("ledger: decodificar %q: %w", e.Key, err)
		}
		categories = append(categories, &c)
	}
	return paginate(categories, limit, offset), nil
}

// Delete elimina una categoría.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, storage.CategoryKey(id))
}
