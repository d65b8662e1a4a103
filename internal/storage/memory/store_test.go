package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-ledger/internal/storage"
	"github.com/tu-usuario/inventario-ledger/internal/storage/memory"
)

func TestStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.Get(ctx, "product:1")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "product:1", []byte(`{"id":"1"}`)))

	got, err := s.Get(ctx, "product:1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"1"}`), got)

	require.NoError(t, s.Delete(ctx, "product:1"))
	_, err = s.Get(ctx, "product:1")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	// Borrar una clave inexistente no es un error.
	assert.NoError(t, s.Delete(ctx, "product:1"))
}

func TestStore_SetSobreescribe(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.Set(ctx, "user:u-1", []byte("v1")))
	require.NoError(t, s.Set(ctx, "user:u-1", []byte("v2")))

	got, err := s.Get(ctx, "user:u-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestStore_ScanPrefix(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.SetAll(ctx,
		storage.Entry{Key: "movement:p-1:100-aa", Value: []byte("a")},
		storage.Entry{Key: "movement:p-1:200-bb", Value: []byte("b")},
		storage.Entry{Key: "movement:p-2:300-cc", Value: []byte("c")},
		storage.Entry{Key: "product:p-1", Value: []byte("p")},
	))

	entries, err := s.ScanPrefix(ctx, "movement:p-1:")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "movement:p-1:100-aa", entries[0].Key, "el scan devuelve orden de clave")
	assert.Equal(t, "movement:p-1:200-bb", entries[1].Key)

	all, err := s.ScanPrefix(ctx, "movement:")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := s.ScanPrefix(ctx, "category:")
	require.NoError(t, err)
	assert.Empty(t, none)
}

// Los valores devueltos son copias: mutarlos no debe afectar lo almacenado.
func TestStore_ValoresCopiados(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	original := []byte("inmutable")
	require.NoError(t, s.Set(ctx, "k", original))
	original[0] = 'X' // mutar el slice del llamador tampoco afecta

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("inmutable"), got)

	got[0] = 'Y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("inmutable"), again)
}
