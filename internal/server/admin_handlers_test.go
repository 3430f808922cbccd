package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"muro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(t *testing.T, method, path, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAdminRoutes_RequireAuth(t *testing.T) {
	_, app, _ := newTestServer(t, &testGateway{hasCredentials: true})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/graffitis", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutes_RejectNonAdmins(t *testing.T) {
	s, app, db := newTestServer(t, &testGateway{hasCredentials: true})

	user := models.User{Username: "mortal", Email: "mortal@example.com", Password: "pw"}
	require.NoError(t, db.Create(&user).Error)
	token, err := s.generateToken(user.ID, user.Username)
	require.NoError(t, err)

	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/admin/graffitis", token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	s, app, db := newTestServer(t, &testGateway{hasCredentials: true})
	createAdmin(t, s, db)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := app.Test(postJSON(t, "/api/auth/login", map[string]string{
			"email":    "admin@example.com",
			"password": "admin-password",
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		result := decodeJSON[map[string]any](t, resp)
		assert.NotEmpty(t, result["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, err := app.Test(postJSON(t, "/api/auth/login", map[string]string{
			"email":    "admin@example.com",
			"password": "wrong",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp, err := app.Test(postJSON(t, "/api/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "irrelevant",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetAllGraffitis_IncludesPending(t *testing.T) {
	s, app, db := newTestServer(t, &testGateway{hasCredentials: true})
	token := createAdmin(t, s, db)

	require.NoError(t, db.Create(&models.Graffiti{Content: "publicado", PaymentMethod: models.PaymentMethodCrypto, Amount: 200, Approved: true}).Error)
	require.NoError(t, db.Create(&models.Graffiti{Content: "en cola", PaymentMethod: models.PaymentMethodCrypto, Amount: 200}).Error)

	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/admin/graffitis", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	graffitis := decodeJSON[[]models.Graffiti](t, resp)
	assert.Len(t, graffitis, 2)
}

// TestApproveGraffiti_ManualCryptoFlow covers the manual payment path: the
// submitter transfers to a wallet off-band, then an administrator approves.
func TestApproveGraffiti_ManualCryptoFlow(t *testing.T) {
	s, app, db := newTestServer(t, &testGateway{hasCredentials: true})
	token := createAdmin(t, s, db)

	g := models.Graffiti{Content: "pago cripto", PaymentMethod: models.PaymentMethodCrypto, Amount: 200}
	require.NoError(t, db.Create(&g).Error)

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/admin/graffitis/1/approve", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Graffiti
	require.NoError(t, db.First(&stored, g.ID).Error)
	assert.True(t, stored.Approved)

	// Approving twice is harmless.
	resp, err = app.Test(authedRequest(t, http.MethodPost, "/api/admin/graffitis/1/approve", token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeJSON[map[string]any](t, resp)
	assert.Equal(t, false, result["changed"])
}

func TestApproveGraffiti_NotFound(t *testing.T) {
	s, app, db := newTestServer(t, &testGateway{hasCredentials: true})
	token := createAdmin(t, s, db)

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/admin/graffitis/999/approve", token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(authedRequest(t, http.MethodPost, "/api/admin/graffitis/abc/approve", token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteGraffiti(t *testing.T) {
	s, app, db := newTestServer(t, &testGateway{hasCredentials: true})
	token := createAdmin(t, s, db)

	g := models.Graffiti{Content: "borrable", PaymentMethod: models.PaymentMethodCrypto, Amount: 200, Approved: true}
	require.NoError(t, db.Create(&g).Error)

	resp, err := app.Test(authedRequest(t, http.MethodDelete, "/api/admin/graffitis/1", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Graffiti{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUpdateSettings_AdminOnly(t *testing.T) {
	s, app, db := newTestServer(t, &testGateway{hasCredentials: true})
	token := createAdmin(t, s, db)

	req := postJSON(t, "/api/admin/settings", map[string]any{
		"price_simple": 500,
	})
	req.Method = http.MethodPut
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	settings := decodeJSON[models.Settings](t, resp)
	assert.Equal(t, float64(500), settings.PriceSimple)
	assert.Equal(t, float64(1000), settings.PriceWithImage)

	// Invalid price rejected.
	req = postJSON(t, "/api/admin/settings", map[string]any{"price_simple": -1})
	req.Method = http.MethodPut
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
