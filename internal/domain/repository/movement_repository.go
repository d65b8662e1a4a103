package repository

import (
	"context"

	"github.com/tu-usuario/inventario-ledger/internal/domain/entity"
)

// MovementRepository define el puerto de lectura del libro de movimientos.
// Los movimientos se escriben únicamente a través de MovementWriter (junto con
// la actualización del producto); aquí solo hay consultas.
type MovementRepository interface {
	GetByID(ctx context.Context, productID, movementID string) (*entity.StockMovement, error)
	// ListAll devuelve todos los movimientos. El store no garantiza orden;
	// los callers ordenan explícitamente por CreatedAt.
	ListAll(ctx context.Context) ([]*entity.StockMovement, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
}

// MovementWriter persiste el producto actualizado y el movimiento nuevo como
// una sola unidad lógica: ningún lector debe observar el movimiento sin el
// cambio de stock correspondiente, ni al revés.
type MovementWriter interface {
	WriteMovement(ctx context.Context, product *entity.Product, movement *entity.StockMovement) error
}
