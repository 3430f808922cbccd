package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"muro/internal/config"
	"muro/internal/mercadopago"
	"muro/internal/models"
	"muro/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testGateway implements service.PaymentGateway with canned responses.
type testGateway struct {
	hasCredentials bool
	payments       map[string]*mercadopago.Payment
	preferenceErr  error
}

func (g *testGateway) HasCredentials() bool { return g.hasCredentials }

func (g *testGateway) CreatePreference(ctx context.Context, title string, amount float64, graffitiID uint) (*mercadopago.Preference, []byte, error) {
	if !g.hasCredentials {
		return nil, nil, mercadopago.ErrNoCredentials
	}
	if g.preferenceErr != nil {
		return nil, nil, g.preferenceErr
	}
	return &mercadopago.Preference{ID: "pref-1", InitPoint: "https://mp.example/pref-1"},
		[]byte(`{"id":"pref-1","init_point":"https://mp.example/pref-1"}`), nil
}

func (g *testGateway) GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error) {
	p, ok := g.payments[paymentID]
	if !ok {
		return nil, &mercadopago.GatewayError{Operation: "get_payment", Status: 404}
	}
	return p, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:                 "4000",
		Env:                  "test",
		JWTSecret:            "test-secret-key-for-handler-tests!!",
		MPBaseURL:            "http://gateway.invalid",
		BaseURL:              "http://localhost:5173",
		WebhookURL:           "http://localhost:4000/webhook",
		ImageUploadDir:       t.TempDir(),
		ImageMaxUploadSizeMB: 1,
	}
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Settings{}, &models.Graffiti{}))
	return db
}

func newTestServer(t *testing.T, gw service.PaymentGateway) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	db := setupHandlerTestDB(t)

	s, err := NewServerWithDeps(testConfig(t), db, nil, gw)
	require.NoError(t, err)

	return s, fiberAppFor(s), db
}

func fiberAppFor(s *Server) *fiber.App {
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

func createAdmin(t *testing.T, s *Server, db *gorm.DB) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	admin := models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: string(hashed),
		IsAdmin:  true,
	}
	require.NoError(t, db.Create(&admin).Error)

	token, err := s.generateToken(admin.ID, admin.Username)
	require.NoError(t, err)
	return token
}

func TestNewApp_ServesConfiguredRoutes(t *testing.T) {
	db := setupHandlerTestDB(t)
	s, err := NewServerWithDeps(testConfig(t), db, nil, &testGateway{hasCredentials: true})
	require.NoError(t, err)

	// The same app Start listens on, full middleware chain included.
	app := s.NewApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/graffitis/", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
}

func TestHealthEndpoints(t *testing.T) {
	_, app, _ := newTestServer(t, &testGateway{hasCredentials: true})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
