package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-ledger/internal/application/auth"
	"github.com/tu-usuario/inventario-ledger/internal/application/dto"
	"github.com/tu-usuario/inventario-ledger/internal/application/inventory"
	"github.com/tu-usuario/inventario-ledger/internal/application/reports"
	"github.com/tu-usuario/inventario-ledger/internal/application/usecase"
	"github.com/tu-usuario/inventario-ledger/internal/infrastructure/ledger"
	infrapdf "github.com/tu-usuario/inventario-ledger/internal/infrastructure/pdf"
	apphttp "github.com/tu-usuario/inventario-ledger/internal/interfaces/http"
	"github.com/tu-usuario/inventario-ledger/internal/storage/memory"
	"github.com/tu-usuario/inventario-ledger/pkg/keylock"
)

// ──────────────────────────────────────────────────────────────────────────────
// App de test: API completa sobre el store en memoria con datos de ejemplo
// ──────────────────────────────────────────────────────────────────────────────

// newAPITestApp levanta la API completa contra un store en memoria poblado
// con los datos de ejemplo (usuarios admin/empleado y productos).
func newAPITestApp(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, ledger.SeedSampleData(ctx, store))

	productRepo := ledger.NewProductRepository(store)
	categoryRepo := ledger.NewCategoryRepository(store)
	userRepo := ledger.NewUserRepository(store)
	movementRepo := ledger.NewMovementRepository(store)
	productLocks := keylock.New()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(userRepo, auth.JWTConfig{
			Secret:     testJWTSecret,
			ExpMinutes: testExpMin,
			Issuer:     testIssuer,
		}),
		ProductUC:        usecase.NewProductUseCase(productRepo, categoryRepo, productLocks),
		CategoryUC:       usecase.NewCategoryUseCase(categoryRepo),
		UserUC:           usecase.NewUserUseCase(userRepo),
		RegisterMovement: inventory.NewRegisterMovementUseCase(productRepo, userRepo, movementRepo, productLocks),
		MovementQuery:    inventory.NewMovementQueryUseCase(movementRepo),
		Statistics:       inventory.NewStatisticsUseCase(movementRepo),
		ReportUC:         reports.NewReportUseCase(movementRepo, infrapdf.NewMarotoReportGenerator("Test")),
		JWTSecret:        testJWTSecret,
	})
	return app
}

// login autentica contra /api/auth/login y devuelve el header Bearer.
func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	body, _ := json.Marshal(dto.LoginRequest{Email: email, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "el login de los datos de ejemplo debe funcionar")

	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return "Bearer " + out.Token
}

// doJSON lanza una petición con body JSON opcional y header de autorización.
func doJSON(t *testing.T, app *fiber.App, method, path, authHeader string, payload interface{}) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/inventory/movements
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_EntradaActualizaStock(t *testing.T) {
	app := newAPITestApp(t)
	token := login(t, app, "empleado@demo.local", "empleado123")

	// El producto 1 arranca con stock 24 en los datos de ejemplo.
	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", token, dto.RegisterMovementRequest{
		ProductID: "1", Type: "entrada", Quantity: 10, Reason: "reposición semanal",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.RegisterMovementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 24, out.Movement.PreviousStock)
	assert.Equal(t, 34, out.Movement.NewStock)
	assert.Equal(t, 34, out.Product.Stock)
	assert.NotEmpty(t, out.Message)
}

func TestMovements_SalidaInsuficienteDevuelve409(t *testing.T) {
	app := newAPITestApp(t)
	token := login(t, app, "empleado@demo.local", "empleado123")

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", token, dto.RegisterMovementRequest{
		ProductID: "1", Type: "salida", Quantity: 30,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
	require.NotNil(t, out.AvailableStock, "el error debe informar el stock disponible")
	assert.Equal(t, 24, *out.AvailableStock)
}

func TestMovements_TipoInvalidoDevuelve400(t *testing.T) {
	app := newAPITestApp(t)
	token := login(t, app, "empleado@demo.local", "empleado123")

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", token, dto.RegisterMovementRequest{
		ProductID: "1", Type: "ajuste", Quantity: 1,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMovements_ProductoInexistenteDevuelve404(t *testing.T) {
	app := newAPITestApp(t)
	token := login(t, app, "empleado@demo.local", "empleado123")

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", token, dto.RegisterMovementRequest{
		ProductID: "no-existe", Type: "entrada", Quantity: 1,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMovements_SinTokenDevuelve401(t *testing.T) {
	app := newAPITestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", "", dto.RegisterMovementRequest{
		ProductID: "1", Type: "entrada", Quantity: 1,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/inventory/movements y /api/inventory/statistics
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_ListadoYFiltro(t *testing.T) {
	app := newAPITestApp(t)
	token := login(t, app, "empleado@demo.local", "empleado123")

	for _, in := range []dto.RegisterMovementRequest{
		{ProductID: "1", Type: "entrada", Quantity: 5},
		{ProductID: "2", Type: "salida", Quantity: 1},
	} {
		resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", token, in)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, "/api/inventory/movements", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var all dto.MovementListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	assert.Equal(t, 2, all.Total)

	respFiltered := doJSON(t, app, http.MethodGet, "/api/inventory/movements?product_id=2", token, nil)
	defer respFiltered.Body.Close()
	var filtered dto.MovementListResponse
	require.NoError(t, json.NewDecoder(respFiltered.Body).Decode(&filtered))
	require.Equal(t, 1, filtered.Total)
	assert.Equal(t, "2", filtered.Movements[0].ProductID)
}

func TestStatistics_ResumenConsistente(t *testing.T) {
	app := newAPITestApp(t)
	token := login(t, app, "empleado@demo.local", "empleado123")

	for _, in := range []dto.RegisterMovementRequest{
		{ProductID: "1", Type: "entrada", Quantity: 10},
		{ProductID: "1", Type: "salida", Quantity: 4},
	} {
		resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", token, in)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, "/api/inventory/statistics", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.MovementStatisticsDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 2, out.Summary.TotalMovements)
	assert.Equal(t, 10, out.Summary.TotalQuantityIn)
	assert.Equal(t, 4, out.Summary.TotalQuantityOut)
	assert.Equal(t, 6, out.Summary.Net)
	assert.Len(t, out.RecentActivity, 2)
	require.Len(t, out.ProductStats, 1)
	assert.Equal(t, "1", out.ProductStats[0].ProductID)
}

// ──────────────────────────────────────────────────────────────────────────────
// RBAC de rutas: reportes y usuarios solo admin
// ──────────────────────────────────────────────────────────────────────────────

func TestReports_CSVSoloAdmin(t *testing.T) {
	app := newAPITestApp(t)
	admin := login(t, app, "admin@demo.local", "admin123")
	empleado := login(t, app, "empleado@demo.local", "empleado123")

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", admin, dto.RegisterMovementRequest{
		ProductID: "1", Type: "entrada", Quantity: 3, Reason: "compra",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// empleado: bloqueado
	denied := doJSON(t, app, http.MethodGet, "/api/reports/movements.csv", empleado, nil)
	defer denied.Body.Close()
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)

	// admin: CSV con cabecera y una fila
	ok := doJSON(t, app, http.MethodGet, "/api/reports/movements.csv", admin, nil)
	defer ok.Body.Close()
	require.Equal(t, http.StatusOK, ok.StatusCode)
	assert.Contains(t, ok.Header.Get("Content-Type"), "text/csv")

	var buf bytes.Buffer
	_, err := buf.ReadFrom(ok.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,fecha,producto"))
	assert.Contains(t, lines[1], "entrada")
}

func TestUsers_ListadoSoloAdmin(t *testing.T) {
	app := newAPITestApp(t)
	admin := login(t, app, "admin@demo.local", "admin123")
	empleado := login(t, app, "empleado@demo.local", "empleado123")

	denied := doJSON(t, app, http.MethodGet, "/api/users", empleado, nil)
	defer denied.Body.Close()
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)

	ok := doJSON(t, app, http.MethodGet, "/api/users", admin, nil)
	defer ok.Body.Close()
	require.Equal(t, http.StatusOK, ok.StatusCode)

	var out dto.UserListResponse
	require.NoError(t, json.NewDecoder(ok.Body).Decode(&out))
	assert.Equal(t, 2, out.Total)
	for _, u := range out.Users {
		assert.NotEmpty(t, u.Email)
	}
}

func TestProducts_EscrituraSoloAdmin(t *testing.T) {
	app := newAPITestApp(t)
	empleado := login(t, app, "empleado@demo.local", "empleado123")

	resp := doJSON(t, app, http.MethodPost, "/api/products", empleado, dto.CreateProductRequest{
		Name: "Nuevo producto",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"empleado no puede crear productos")

	list := doJSON(t, app, http.MethodGet, "/api/products", empleado, nil)
	defer list.Body.Close()
	assert.Equal(t, http.StatusOK, list.StatusCode,
		"empleado sí puede consultar el catálogo")
}
