package inventory

import (
	"context"
	"sort"

	"github.com/tu-usuario/inventario-ledger/internal/application/dto"
	"github.com/tu-usuario/inventario-ledger/internal/domain/entity"
	"github.com/tu-usuario/inventario-ledger/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el libro de movimientos.
type MovementQueryUseCase struct {
	movementRepo repository.MovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movementRepo repository.MovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movementRepo: movementRepo}
}

// List devuelve los movimientos (todos, o los de un producto si productID no
// es vacío), ordenados del más reciente al más antiguo.
func (uc *MovementQueryUseCase) List(ctx context.Context, productID string) (*dto.MovementListResponse, error) {
	var (
		movements []*entity.StockMovement
		err       error
	)
	if productID == "" {
		movements, err = uc.movementRepo.ListAll(ctx)
	} else {
		movements, err = uc.movementRepo.ListByProduct(ctx, productID)
	}
	if err != nil {
		return nil, err
	}

	sortByCreatedAtDesc(movements)

	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return &dto.MovementListResponse{Total: len(out), Movements: out}, nil
}

// sortByCreatedAtDesc ordena descendente por CreatedAt. Estable: los empates
// conservan el orden de entrada.
func sortByCreatedAtDesc(movements []*entity.StockMovement) {
	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].CreatedAt.After(movements[j].CreatedAt)
	})
}
