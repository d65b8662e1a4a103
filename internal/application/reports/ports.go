package reports

import (
	"context"

	"github.com/tu-usuario/inventario-ledger/internal/application/dto"
	"github.com/tu-usuario/inventario-ledger/internal/domain/entity"
)

// MovementPDFGenerator genera la representación PDF del reporte de
// movimientos. Implementado en infrastructure/pdf con Maroto.
type MovementPDFGenerator interface {
	GenerateMovementReport(
		ctx context.Context,
		stats *dto.MovementStatisticsDTO,
		movements []*entity.StockMovement,
	) ([]byte, error)
}
