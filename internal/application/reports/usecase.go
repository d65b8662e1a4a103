// Package reports exporta el libro de movimientos como CSV y PDF.
// El core solo entrega datos estructurados; el layout del PDF vive en
// infrastructure/pdf detrás del puerto MovementPDFGenerator.
package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/tu-usuario/inventario-ledger/internal/application/inventory"
	"github.com/tu-usuario/inventario-ledger/internal/domain/entity"
	"github.com/tu-usuario/inventario-ledger/internal/domain/repository"
)

// ReportUseCase arma los exports del historial de movimientos.
type ReportUseCase struct {
	movementRepo repository.MovementRepository
	pdfGen       MovementPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(movementRepo repository.MovementRepository, pdfGen MovementPDFGenerator) *ReportUseCase {
	return &ReportUseCase{movementRepo: movementRepo, pdfGen: pdfGen}
}

// csvHeader columnas del export CSV, en orden.
var csvHeader = []string{
	"id", "fecha", "producto", "tipo", "cantidad",
	"stock_anterior", "stock_nuevo", "usuario", "motivo",
}

// MovementsCSV exporta todos los movimientos, del más reciente al más antiguo.
func (uc *ReportUseCase) MovementsCSV(ctx context.Context) ([]byte, error) {
	movements, err := uc.loadSorted(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("reports: escribir cabecera CSV: %w", err)
	}
	for _, m := range movements {
		record := []string{
			m.ID,
			m.CreatedAt.Format(time.RFC3339),
			m.ProductName,
			m.Type,
			strconv.Itoa(m.Quantity),
			strconv.Itoa(m.PreviousStock),
			strconv.Itoa(m.NewStock),
			m.UserName,
			m.Reason,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("reports: escribir fila CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("reports: volcar CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// MovementsPDF exporta el reporte PDF: resumen de estadísticas + tabla de
// movimientos, del más reciente al más antiguo.
func (uc *ReportUseCase) MovementsPDF(ctx context.Context) ([]byte, error) {
	movements, err := uc.loadSorted(ctx)
	if err != nil {
		return nil, err
	}
	stats := inventory.ComputeStatistics(movements, time.Now())
	return uc.pdfGen.GenerateMovementReport(ctx, &stats, movements)
}

func (uc *ReportUseCase) loadSorted(ctx context.Context) ([]*entity.StockMovement, error) {
	movements, err := uc.movementRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].CreatedAt.After(movements[j].CreatedAt)
	})
	return movements, nil
}
