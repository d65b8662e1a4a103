package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock solo se modifica a través de movimientos (entrada/salida);
// el resto de campos se edita por el CRUD de productos.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CategoryID  string          `json:"category_id"`
	Price       decimal.Decimal `json:"price"`     // precio de venta, >= 0
	Stock       int             `json:"stock"`     // siempre entero no negativo
	MinStock    int             `json:"min_stock"` // umbral de alerta de reposición
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BelowMinStock indica si el producto está por debajo de su stock mínimo.
func (p *Product) BelowMinStock() bool {
	return p.Stock < p.MinStock
}
