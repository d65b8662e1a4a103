package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Esquema de claves del store.
const (
	ProductPrefix  = "product:"
	MovementPrefix = "movement:"
	UserPrefix     = "user:"
	CategoryPrefix = "category:"
)

// ProductKey devuelve la clave product:{id}.
func ProductKey(id string) string { return ProductPrefix + id }

// MovementKey devuelve la clave movement:{productId}:{movementId}.
// El prefijo por producto permite enumerar el historial de un solo producto.
func MovementKey(productID, movementID string) string {
	return MovementPrefix + productID + ":" + movementID
}

// MovementProductPrefix devuelve el prefijo movement:{productId}: para
// escanear los movimientos de un producto.
func MovementProductPrefix(productID string) string {
	return MovementPrefix + productID + ":"
}

// UserKey devuelve la clave user:{id}.
func UserKey(id string) string { return UserPrefix + id }

// CategoryKey devuelve la clave category:{id}.
func CategoryKey(id string) string { return CategoryPrefix + id }

// NewMovementID genera un id de movimiento {unix-millis}-{sufijo aleatorio}.
// La probabilidad de colisión se considera despreciable; el id NO garantiza
// orden total, el orden de presentación siempre es por CreatedAt.
func NewMovementID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
