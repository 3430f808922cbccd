package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"muro/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestGetWall_OnlyApproved(t *testing.T) {
	_, app, db := newTestServer(t, &testGateway{hasCredentials: true})

	require.NoError(t, db.Create(&models.Graffiti{Content: "approved one", PaymentMethod: models.PaymentMethodCrypto, Amount: 200, Approved: true}).Error)
	require.NoError(t, db.Create(&models.Graffiti{Content: "still pending", PaymentMethod: models.PaymentMethodCrypto, Amount: 200}).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/graffitis/", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	wall := decodeJSON[[]models.Graffiti](t, resp)
	require.Len(t, wall, 1)
	assert.Equal(t, "approved one", wall[0].Content)
	assert.NotEqual(t, uuid.Nil, wall[0].PublicID)
}

func TestCreateGraffiti_StartsPending(t *testing.T) {
	_, app, db := newTestServer(t, &testGateway{hasCredentials: true})

	resp, err := app.Test(postJSON(t, "/api/graffitis/", CreateGraffitiRequest{
		Content:       "nuevo graffiti",
		PaymentMethod: "mercadopago",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeJSON[models.Graffiti](t, resp)
	assert.False(t, created.Approved)
	assert.Equal(t, float64(200), created.Amount)
	assert.NotEqual(t, uuid.Nil, created.PublicID)

	var stored models.Graffiti
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.False(t, stored.Approved)
	assert.Equal(t, created.PublicID, stored.PublicID)
}

func TestCreateGraffiti_IgnoresClientAmount(t *testing.T) {
	_, app, _ := newTestServer(t, &testGateway{hasCredentials: true})

	// The amount field is not part of the request contract; sending one must
	// not change the server-side price.
	resp, err := app.Test(postJSON(t, "/api/graffitis/", map[string]any{
		"content":        "precio trucho",
		"payment_method": "mercadopago",
		"image_url":      "/media/public/1-abc.png",
		"amount":         0.01,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeJSON[models.Graffiti](t, resp)
	assert.Equal(t, float64(1000), created.Amount)
}

func TestCreateGraffiti_Validation(t *testing.T) {
	_, app, _ := newTestServer(t, &testGateway{hasCredentials: true})

	tests := []struct {
		name string
		body CreateGraffitiRequest
	}{
		{name: "Empty Content", body: CreateGraffitiRequest{PaymentMethod: "crypto"}},
		{name: "Content Too Long", body: CreateGraffitiRequest{Content: strings.Repeat("x", 501), PaymentMethod: "crypto"}},
		{name: "Unknown Payment Method", body: CreateGraffitiRequest{Content: "hola", PaymentMethod: "paypal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(postJSON(t, "/api/graffitis/", tt.body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestUploadImage(t *testing.T) {
	_, app, _ := newTestServer(t, &testGateway{hasCredentials: true})

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 4, 4))))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/graffitis/image", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	result := decodeJSON[map[string]string](t, resp)
	assert.True(t, strings.HasPrefix(result["url"], "/media/public/"))
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	_, app, _ := newTestServer(t, &testGateway{hasCredentials: true})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("just some text"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/graffitis/image", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetPublicSettings(t *testing.T) {
	_, app, db := newTestServer(t, &testGateway{hasCredentials: true})

	require.NoError(t, db.Create(&models.Settings{
		ID:             models.SettingsID,
		PriceSimple:    200,
		PriceWithImage: 1000,
		TRXWallet:      "T" + strings.Repeat("9", 33),
	}).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		PriceSimple    float64           `json:"price_simple"`
		PriceWithImage float64           `json:"price_with_image"`
		Wallets        map[string]string `json:"wallets"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, float64(200), result.PriceSimple)
	assert.Equal(t, float64(1000), result.PriceWithImage)
	assert.Contains(t, result.Wallets, "trx")
	assert.NotContains(t, result.Wallets, "usdt")
}
