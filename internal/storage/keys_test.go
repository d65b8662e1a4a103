package storage_test

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-ledger/internal/storage"
)

func TestKeys_EsquemaDeClaves(t *testing.T) {
	assert.Equal(t, "product:p-1", storage.ProductKey("p-1"))
	assert.Equal(t, "user:u-1", storage.UserKey("u-1"))
	assert.Equal(t, "category:cat-1", storage.CategoryKey("cat-1"))
	assert.Equal(t, "movement:p-1:123-abc", storage.MovementKey("p-1", "123-abc"))
	assert.Equal(t, "movement:p-1:", storage.MovementProductPrefix("p-1"))

	// Toda clave de movimiento cae bajo el prefijo de su producto.
	assert.True(t, strings.HasPrefix(
		storage.MovementKey("p-1", "123-abc"),
		storage.MovementProductPrefix("p-1"),
	))
}

func TestNewMovementID_Formato(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	id := storage.NewMovementID(now)

	parts := strings.SplitN(id, "-", 2)
	require.Len(t, parts, 2)

	millis, err := strconv.ParseInt(parts[0], 10, 64)
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), millis, "el prefijo es el timestamp en millis")
	assert.Len(t, parts[1], 8, "el sufijo aleatorio tiene 8 caracteres")
}

func TestNewMovementID_SufijosDistintos(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := storage.NewMovementID(now)
		assert.False(t, seen[id], "dos ids generados en el mismo milisegundo no deben chocar")
		seen[id] = true
	}
}
