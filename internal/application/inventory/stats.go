package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/tu-usuario/inventario-ledger/internal/application/dto"
	"github.com/tu-usuario/inventario-ledger/internal/domain/entity"
	"github.com/tu-usuario/inventario-ledger/internal/domain/repository"
)

// recentActivityLimit cuántos movimientos recientes incluye el resumen.
const recentActivityLimit = 10

// recentWindow ventana del contador "movimientos recientes".
const recentWindow = 7 * 24 * time.Hour

// StatisticsUseCase calcula agregados del libro de movimientos bajo demanda.
// Lee el historial completo sin locking: es una vista de reporte, no
// transaccional.
type StatisticsUseCase struct {
	movementRepo repository.MovementRepository
}

// NewStatisticsUseCase construye el caso de uso.
func NewStatisticsUseCase(movementRepo repository.MovementRepository) *StatisticsUseCase {
	return &StatisticsUseCase{movementRepo: movementRepo}
}

// Get carga todos los movimientos y calcula las estadísticas con el reloj actual.
func (uc *StatisticsUseCase) Get(ctx context.Context) (*dto.MovementStatisticsDTO, error) {
	movements, err := uc.movementRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeStatistics(movements, time.Now())
	return &stats, nil
}

// ComputeStatistics es una función pura del conjunto de movimientos y de
// "now" (solo usado para la ventana de 7 días): misma entrada, mismo
// resultado. No muta la lista recibida.
func ComputeStatistics(movements []*entity.StockMovement, now time.Time) dto.MovementStatisticsDTO {
	summary := dto.MovementSummaryDTO{}
	cutoff := now.Add(-recentWindow)

	type rollup struct {
		stats dto.ProductMovementStatsDTO
		order int // primera aparición, para desempate determinista
	}
	perProduct := make(map[string]*rollup)

	for i, m := range movements {
		summary.TotalMovements++
		switch m.Type {
		case entity.MovementTypeEntrada:
			summary.TotalEntradas++
			summary.TotalQuantityIn += m.Quantity
		case entity.MovementTypeSalida:
			summary.TotalSalidas++
			summary.TotalQuantityOut += m.Quantity
		}
		if m.CreatedAt.After(cutoff) {
			summary.MovementsLast7Days++
		}

		r, ok := perProduct[m.ProductID]
		if !ok {
			r = &rollup{
				stats: dto.ProductMovementStatsDTO{ProductID: m.ProductID, ProductName: m.ProductName},
				order: i,
			}
			perProduct[m.ProductID] = r
		}
		r.stats.MovementCount++
		switch m.Type {
		case entity.MovementTypeEntrada:
			r.stats.TotalEntradas += m.Quantity
		case entity.MovementTypeSalida:
			r.stats.TotalSalidas += m.Quantity
		}
	}
	summary.Net = summary.TotalQuantityIn - summary.TotalQuantityOut

	rollups := make([]*rollup, 0, len(perProduct))
	for _, r := range perProduct {
		rollups = append(rollups, r)
	}
	// Más movidos primero; empate por orden de primera aparición.
	sort.Slice(rollups, func(i, j int) bool {
		if rollups[i].stats.MovementCount != rollups[j].stats.MovementCount {
			return rollups[i].stats.MovementCount > rollups[j].stats.MovementCount
		}
		return rollups[i].order < rollups[j].order
	})
	productStats := make([]dto.ProductMovementStatsDTO, 0, len(rollups))
	for _, r := range rollups {
		productStats = append(productStats, r.stats)
	}

	// Copia antes de ordenar para no mutar la entrada.
	recent := make([]*entity.StockMovement, len(movements))
	copy(recent, movements)
	sortByCreatedAtDesc(recent)
	if len(recent) > recentActivityLimit {
		recent = recent[:recentActivityLimit]
	}
	recentActivity := make([]dto.MovementResponse, 0, len(recent))
	for _, m := range recent {
		recentActivity = append(recentActivity, toMovementResponse(m))
	}

	return dto.MovementStatisticsDTO{
		Summary:        summary,
		ProductStats:   productStats,
		RecentActivity: recentActivity,
	}
}
