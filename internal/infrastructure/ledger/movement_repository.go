package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tu-usuario/inventario-ledger/internal/domain/entity"
	"github.com/tu-usuario/inventario-ledger/internal/domain/repository"
	"github.com/tu-usuario/inventario-ledger/internal/storage"
)

var (
	_ repository.MovementRepository = (*MovementRepository)(nil)
	_ repository.MovementWriter     = (*MovementRepository)(nil)
)

// MovementRepository adaptador del libro de movimientos sobre el store.
// Lecturas por prefijo; la única escritura es WriteMovement (movimiento +
// producto actualizado, atómica).
type MovementRepository struct {
	store storage.Store
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(store storage.Store) *MovementRepository {
	return &MovementRepository{store: store}
}

// WriteMovement persiste el producto actualizado y el movimiento nuevo en un
// solo SetAll: el backend garantiza que ningún lector ve solo una de las dos
// escrituras.
func (r *MovementRepository) WriteMovement(ctx context.Context, product *entity.Product, movement *entity.StockMovement) error {
	productData, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("ledger: codificar producto %q: %w", product.ID, err)
	}
	movementData, err := json.Marshal(movement)
	if err != nil {
		return fmt.Errorf("ledger: codificar movimiento %q: %w", movement.ID, err)
	}
	return r.store.SetAll(ctx,
		storage.Entry{Key: storage.MovementKey(movement.ProductID, movement.ID), Value: movementData},
		storage.Entry{Key: storage.ProductKey(product.ID), Value: productData},
	)
}

// GetByID devuelve un movimiento o (nil, nil) si no existe.
func (r *MovementRepository) GetByID(ctx context.Context, productID, movementID string) (*entity.StockMovement, error) {
	var movement entity.StockMovement
	found, err := getJSON(ctx, r.store, storage.MovementKey(productID, movementID), &movement)
	if err != nil || !found {
		return nil, err
	}
	return &movement, nil
}

// ListAll devuelve todos los movimientos del libro, sin orden garantizado.
func (r *MovementRepository) ListAll(ctx context.Context) ([]*entity.StockMovement, error) {
	return r.scan(ctx, storage.MovementPrefix)
}

// ListByProduct devuelve los movimientos de un producto, sin orden garantizado.
func (r *MovementRepository) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	return r.scan(ctx, storage.MovementProductPrefix(productID))
}

func (r *MovementRepository) scan(ctx context.Context, prefix string) ([]*entity.StockMovement, error) {
	entries, err := r.store.ScanPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	movements := make([]*entity.StockMovement, 0, len(entries))
	for _, e := range entries {
		var m entity.StockMovement
		if err := json.Unmarshal(e.Value, &m); err != nil {
			return nil, fmt.Errorf("ledger: decodificar %q: %w", e.Key, err)
		}
		movements = append(movements, &m)
	}
	return movements, nil
}
