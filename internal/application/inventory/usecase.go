// Package inventory contiene el motor de movimientos de stock: aplica una
// entrada o salida sobre un producto produciendo el producto actualizado y un
// registro inmutable en el libro, o rechaza la petición.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/inventario-ledger/internal/application/dto"
	"github.com/tu-usuario/inventario-ledger/internal/domain"
	"github.com/tu-usuario/inventario-ledger/internal/domain/entity"
	"github.com/tu-usuario/inventario-ledger/internal/domain/repository"
	"github.com/tu-usuario/inventario-ledger/internal/storage"
	"github.com/tu-usuario/inventario-ledger/pkg/keylock"
)

// RegisterMovementUseCase registra movimientos de stock serializando las
// escrituras por producto y persistiendo producto + movimiento como una sola
// unidad atómica (MovementWriter). El locker debe ser el mismo que usa el
// CRUD de productos: toda escritura del registro producto:{id} pasa por él.
type RegisterMovementUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	writer      repository.MovementWriter
	locks       *keylock.KeyLocker
}

// NewRegisterMovementUseCase construye el motor.
func NewRegisterMovementUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	writer repository.MovementWriter,
	locks *keylock.KeyLocker,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
		writer:      writer,
		locks:       locks,
	}
}

// Register aplica un movimiento:
//
//  1. Valida tipo y cantidad (ErrInvalidInput).
//  2. Resuelve usuario actuante y producto (ErrNotFound).
//  3. entrada: newStock = stock + cantidad. salida: exige stock >= cantidad,
//     si no rechaza con InsufficientStockError (sin recorte parcial).
//  4. Persiste producto actualizado + movimiento nuevo atómicamente.
//
// Los errores de dominio se propagan tal cual; nunca se reintenta aquí.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	// Sección crítica por producto: lectura, cálculo y escritura del stock
	// no se entrelazan con otra petición sobre el mismo producto.
	unlock := uc.locks.Lock(in.ProductID)
	defer unlock()

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	previousStock := product.Stock
	var newStock int
	switch in.Type {
	case entity.MovementTypeEntrada:
		newStock = previousStock + in.Quantity
	case entity.MovementTypeSalida:
		if previousStock < in.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID: product.ID,
				Available: previousStock,
				Requested: in.Quantity,
			}
		}
		newStock = previousStock - in.Quantity
	}

	now := time.Now()
	movement := &entity.StockMovement{
		ID:            storage.NewMovementID(now),
		ProductID:     product.ID,
		ProductName:   product.Name,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Reason:        in.Reason,
		UserID:        user.ID,
		UserName:      user.Name,
		PreviousStock: previousStock,
		NewStock:      newStock,
		CreatedAt:     now,
	}

	product.Stock = newStock
	product.UpdatedAt = now

	if err := uc.writer.WriteMovement(ctx, product, movement); err != nil {
		return nil, err
	}

	return &dto.RegisterMovementResponse{
		Message:  confirmationMessage(movement),
		Movement: toMovementResponse(movement),
		Product:  toProductResponse(product),
	}, nil
}

// confirmationMessage arma el mensaje legible para el usuario final.
func confirmationMessage(m *entity.StockMovement) string {
	sign := "+"
	if m.Type == entity.MovementTypeSalida {
		sign = "-"
	}
	return fmt.Sprintf("%s registrada: %s%d %s (stock %d → %d)",
		m.Type, sign, m.Quantity, m.ProductName, m.PreviousStock, m.NewStock)
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		Type:          m.Type,
		Quantity:      m.Quantity,
		Reason:        m.Reason,
		UserID:        m.UserID,
		UserName:      m.UserName,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		CreatedAt:     m.CreatedAt,
	}
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		CategoryID:    p.CategoryID,
		Price:         p.Price,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		BelowMinStock: p.BelowMinStock(),
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
