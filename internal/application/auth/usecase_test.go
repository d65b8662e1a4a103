package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-ledger/internal/application/auth"
	"github.com/tu-usuario/inventario-ledger/internal/application/dto"
	"github.com/tu-usuario/inventario-ledger/internal/domain"
	"github.com/tu-usuario/inventario-ledger/internal/domain/entity"
	"github.com/tu-usuario/inventario-ledger/internal/infrastructure/ledger"
	"github.com/tu-usuario/inventario-ledger/internal/storage/memory"
	pkgjwt "github.com/tu-usuario/inventario-ledger/pkg/jwt"
)

const authTestSecret = "auth-test-secret"

func newAuthUC(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	userRepo := ledger.NewUserRepository(memory.New())
	return auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     authTestSecret,
		ExpMinutes: 60,
		Issuer:     "inventario-ledger-test",
	})
}

func TestRegisterUser_RolPorDefectoEmpleado(t *testing.T) {
	uc := newAuthUC(t)

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ana@tienda.local", Password: "secreta", Name: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmpleado, out.Role)
	assert.Equal(t, "active", out.Status)
}

func TestRegisterUser_RolInvalido(t *testing.T) {
	uc := newAuthUC(t)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ana@tienda.local", Password: "secreta", Role: "gerente",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newAuthUC(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@tienda.local", Password: "secreta"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@tienda.local", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// Dos registros simultáneos del mismo email (con distinta capitalización) se
// serializan: exactamente uno crea el usuario y el resto recibe
// ErrEmailAlreadyExists, sin duplicar la cuenta.
func TestRegisterUser_RegistroConcurrenteMismoEmail(t *testing.T) {
	uc := newAuthUC(t)
	ctx := context.Background()

	emails := []string{
		"ana@tienda.local", "ANA@TIENDA.LOCAL", "Ana@Tienda.Local",
		"ana@tienda.local", "ANA@tienda.local", "ana@TIENDA.local",
	}
	var wg sync.WaitGroup
	errs := make([]error, len(emails))
	for i, email := range emails {
		wg.Add(1)
		go func(i int, email string) {
			defer wg.Done()
			_, errs[i] = uc.RegisterUser(ctx, dto.RegisterRequest{Email: email, Password: "secreta"})
		}(i, email)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		}
	}
	assert.Equal(t, 1, created, "solo un registro debe ganar la carrera")
}

func TestLogin_TokenConRol(t *testing.T) {
	uc := newAuthUC(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email: "jefe@tienda.local", Password: "secreta", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "jefe@tienda.local", Password: "secreta"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, role, err := pkgjwt.Parse(authTestSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := newAuthUC(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@tienda.local", Password: "secreta"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@tienda.local", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@tienda.local", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
