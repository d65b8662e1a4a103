// Package ledger implementa los puertos de persistencia del dominio sobre el
// Ledger Store clave-valor: cada entidad se guarda como JSON bajo su clave
// (product:{id}, movement:{productId}:{movementId}, user:{id}, category:{id}).
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tu-usuario/inventario-ledger/internal/domain/entity"
	"github.com/tu-usuario/inventario-ledger/internal/domain/repository"
	"github.com/tu-usuario/inventario-ledger/internal/storage"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository adaptador de Product sobre el store.
type ProductRepository struct {
	store storage.Store
}

// NewProductRepository construye el adaptador.
func NewProductRepository(store storage.Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// Create persiste un producto nuevo.
func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return putJSON(ctx, r.store, storage.ProductKey(product.ID), product)
}

// GetByID devuelve el producto o (nil, nil) si no existe.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	found, err := getJSON(ctx, r.store, storage.ProductKey(id), &product)
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

// Update sobreescribe el producto completo.
func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return putJSON(ctx, r.store, storage.ProductKey(product.ID), product)
}

// List devuelve productos paginados, ordenados por clave (escala de pequeño
// negocio: el catálogo completo cabe en memoria).
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	entries, err := r.store.ScanPrefix(ctx, storage.ProductPrefix)
	if err != nil {
		return nil, err
	}
	products := make([]*entity.Product, 0, len(entries))
	for _, e := range entries {
		var p entity.Product
		if err := json.Unmarshal(e.Value, &p); err != nil {
			return nil, fmt.Errorf("ledger: decodificar %q: %w", e.Key, err)
		}
		products = append(products, &p)
	}
	return paginate(products, limit, offset), nil
}

// Delete elimina el producto del catálogo. Sus movimientos permanecen: el
// nombre está desnormalizado en cada registro.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, storage.ProductKey(id))
}

// ── Helpers compartidos por los adaptadores ───────────────────────────────────

// putJSON serializa v y lo guarda bajo key.
func putJSON(ctx context.Context, store storage.Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("ledger: codificar %q: %w", key, err)
	}
	return store.Set(ctx, key, data)
}

// getJSON carga key en v. Devuelve (false, nil) si la clave no existe.
func getJSON(ctx context.Context, store storage.Store, key string, v interface{}) (bool, error) {
	data, err := store.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("ledger: decodificar %q: %w", key, err)
	}
	return true, nil
}

// paginate aplica limit/offset sobre una lista ya cargada.
func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
