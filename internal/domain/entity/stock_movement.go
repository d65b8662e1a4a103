package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntrada = "entrada" // reposición, compra
	MovementTypeSalida  = "salida"  // venta, consumo, merma
)

// ValidMovementType indica si el tipo es uno de los soportados.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntrada || t == MovementTypeSalida
}

// StockMovement es un registro inmutable del libro de movimientos: una vez
// creado, nunca se actualiza ni se borra. ProductName y UserName se
// desnormalizan para que el historial siga siendo legible aunque el producto
// o el usuario se renombren o eliminen después.
type StockMovement struct {
	ID            string    `json:"id"` // {unix-millis}-{sufijo aleatorio}; el orden lo da CreatedAt
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Type          string    `json:"type"`     // entrada | salida
	Quantity      int       `json:"quantity"` // siempre > 0
	Reason        string    `json:"reason,omitempty"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	CreatedAt     time.Time `json:"created_at"`
}
