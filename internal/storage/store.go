// Package storage define el contrato del Ledger Store: almacenamiento
// durable por clave con escaneo por prefijo. El core depende solo de esta
// interfaz; los backends concretos (BadgerDB, PostgreSQL, memoria) viven en
// subpaquetes.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound indica que la clave no existe en el store.
var ErrKeyNotFound = errors.New("clave no encontrada")

// Entry es un par clave/valor persistido. Value es el JSON de la entidad.
type Entry struct {
	Key   string
	Value []byte
}

// Store es el puerto de almacenamiento clave-valor del libro de inventario.
//
// El orden de ScanPrefix no está garantizado; los callers ordenan
// explícitamente (los movimientos siempre por CreatedAt). SetAll aplica todas
// las entradas como una unidad atómica: o se observan todas o ninguna.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error) // ErrKeyNotFound si no existe
	Set(ctx context.Context, key string, value []byte) error
	SetAll(ctx context.Context, entries ...Entry) error
	Delete(ctx context.Context, key string) error
	ScanPrefix(ctx context.Context, prefix string) ([]Entry, error)
	Close() error
}
