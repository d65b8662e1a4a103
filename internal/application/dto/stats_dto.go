package dto

// MovementSummaryDTO totales globales del libro de movimientos.
type MovementSummaryDTO struct {
	TotalMovements     int `json:"total_movements"`
	TotalEntradas      int `json:"total_entradas"` // número de eventos de entrada
	TotalSalidas       int `json:"total_salidas"`  // número de eventos de salida
	TotalQuantityIn    int `json:"total_quantity_in"`
	TotalQuantityOut   int `json:"total_quantity_out"`
	Net                int `json:"net"` // total_quantity_in - total_quantity_out
	MovementsLast7Days int `json:"movements_last_7_days"`
}

// ProductMovementStatsDTO rollup por producto.
type ProductMovementStatsDTO struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	TotalEntradas int    `json:"total_entradas"` // suma de cantidades entrantes
	TotalSalidas  int    `json:"total_salidas"`  // suma de cantidades salientes
	MovementCount int    `json:"movement_count"`
}

// MovementStatisticsDTO respuesta de GET /api/inventory/statistics.
// Derivado bajo demanda del historial completo; no se persiste.
type MovementStatisticsDTO struct {
	Summary        MovementSummaryDTO        `json:"summary"`
	ProductStats   []ProductMovementStatsDTO `json:"product_stats"`
	RecentActivity []MovementResponse        `json:"recent_activity"` // 10 más recientes, descendente por created_at
}
