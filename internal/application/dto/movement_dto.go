package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"`     // entrada | salida
	Quantity  int    `json:"quantity"` // entero > 0
	Reason    string `json:"reason,omitempty"`
}

// MovementResponse un movimiento del libro.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	Reason        string    `json:"reason,omitempty"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	CreatedAt     time.Time `json:"created_at"`
}

// RegisterMovementResponse respuesta de un movimiento aceptado: el registro
// creado, el producto actualizado y un mensaje de confirmación legible.
type RegisterMovementResponse struct {
	Message  string           `json:"message"`
	Movement MovementResponse `json:"movement"`
	Product  ProductResponse  `json:"product"`
}

// MovementListResponse respuesta de listados de movimientos (más reciente primero).
type MovementListResponse struct {
	Total     int                `json:"total"`
	Movements []MovementResponse `json:"movements"`
}
