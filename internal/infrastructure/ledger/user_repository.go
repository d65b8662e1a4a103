package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tu-usuario/inventario-ledger/internal/domain/entity"
	"github.com/tu-usuario/inventario-ledger/internal/domain/repository"
	"github.com/tu-usuario/inventario-ledger/internal/storage"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository adaptador de User sobre el store.
type UserRepository struct {
	store storage.Store
}

// NewUserRepository construye el adaptador.
func NewUserRepository(store storage.Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create persiste un usuario nuevo.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return putJSON(ctx, r.store, storage.UserKey(user.ID), user)
}

// GetByID devuelve el usuario o (nil, nil) si no existe.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	found, err := getJSON(ctx, r.store, storage.UserKey(id), &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

// GetByEmail busca por email con un escaneo del prefijo user:.
// A escala de pequeño negocio la lista de usuarios es corta; no hay índice
// secundario.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	entries, err := r.store.ScanPrefix(ctx, storage.UserPrefix)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		var u entity.User
		if err := json.Unmarshal(e.Value, &u); err != nil {
			return nil, fmt.Errorf("ledger: decodificar %q: %w", e.Key, err)
		}
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

// Update sobreescribe el usuario completo.
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	return putJSON(ctx, r.store, storage.UserKey(user.ID), user)
}

// List devuelve usuarios paginados.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	entries, err := r.store.ScanPrefix(ctx, storage.UserPrefix)
	if err != nil {
		return nil, err
	}
	users := make([]*entity.User, 0, len(entries))
	for _, e := range entries {
		var u entity.User
		if err := json.Unmarshal(e.Value, &u); err != nil {
			return nil, fmt.Errorf("ledger: decodificar %q: %w", e.Key, err)
		}
		users = append(users, &u)
	}
	return paginate(users, limit, offset), nil
}

// Delete elimina un usuario.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, storage.UserKey(id))
}
