package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/inventario-ledger/internal/domain/entity"
	"github.com/tu-usuario/inventario-ledger/internal/storage"
)

// SeedSampleData carga el catálogo de ejemplo: dos usuarios (admin/empleado),
// categorías y productos con stock inicial. Se usa en el modo demo (store en
// memoria) y desde cmd/seed para poblar un backend vacío.
//
// Credenciales de ejemplo: admin@demo.local / admin123, empleado@demo.local /
// empleado123. Solo para entornos de demostración.
func SeedSampleData(ctx context.Context, store storage.Store) error {
	now := time.Now()

	users := []struct {
		id, email, password, name, role string
	}{
		{"u-admin", "admin@demo.local", "admin123", "Administrador Demo", entity.RoleAdmin},
		{"u-empleado", "empleado@demo.local", "empleado123", "Empleado Demo", entity.RoleEmpleado},
	}
	userRepo := NewUserRepository(store)
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed: hash password: %w", err)
		}
		err = userRepo.Create(ctx, &entity.User{
			ID:           u.id,
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.name,
			Role:         u.role,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("seed: usuario %s: %w", u.email, err)
		}
	}

	categories := []*entity.Category{
		{ID: "cat-bebidas", Name: "Bebidas", CreatedAt: now, UpdatedAt: now},
		{ID: "cat-abarrotes", Name: "Abarrotes", CreatedAt: now, UpdatedAt: now},
		{ID: "cat-limpieza", Name: "Limpieza", CreatedAt: now, UpdatedAt: now},
	}
	categoryRepo := NewCategoryRepository(store)
	for _, c := range categories {
		if err := categoryRepo.Create(ctx, c); err != nil {
			return fmt.Errorf("seed: categoría %s: %w", c.ID, err)
		}
	}

	products := []*entity.Product{
		{ID: "1", Name: "Agua mineral 600ml", CategoryID: "cat-bebidas", Price: decimal.NewFromInt(2500), Stock: 24, MinStock: 5},
		{ID: "2", Name: "Café molido 500g", CategoryID: "cat-abarrotes", Price: decimal.NewFromInt(18900), Stock: 12, MinStock: 4},
		{ID: "3", Name: "Arroz 1kg", CategoryID: "cat-abarrotes", Price: decimal.NewFromInt(5200), Stock: 40, MinStock: 10},
		{ID: "4", Name: "Jabón líquido 1L", CategoryID: "cat-limpieza", Price: decimal.NewFromInt(9800), Stock: 8, MinStock: 3},
		{ID: "5", Name: "Gaseosa 1.5L", CategoryID: "cat-bebidas", Price: decimal.NewFromInt(6500), Stock: 18, MinStock: 6},
	}
	productRepo := NewProductRepository(store)
	for _, p := range products {
		p.Description = ""
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := productRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("seed: producto %s: %w", p.ID, err)
		}
	}

	return nil
}
