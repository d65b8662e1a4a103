// Package keylock ofrece mutexes por clave para serializar secciones
// críticas sobre un mismo recurso (un producto, un email) sin bloquear
// operaciones sobre recursos distintos.
package keylock

import "sync"

// KeyLocker reparte un mutex por clave. Los mutex no se liberan del mapa:
// los keyspaces manejados (productos, emails en registro) son acotados y el
// costo por entrada es despreciable.
type KeyLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New crea un locker vacío.
func New() *KeyLocker {
	return &KeyLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock toma el mutex asociado a key y devuelve la función que lo libera.
func (l *KeyLocker) Lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
