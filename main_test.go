package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafes/internal/config"
	"cafes/internal/forms"
	"cafes/internal/handlers"
	"cafes/internal/services"
)

func testApp(t *testing.T, cfg config.Config) *fiber.App {
	t.Helper()
	st, err := openStore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.close() })

	cafeService := services.NewCafeService(st.repo, forms.NewValidator(), nil)
	return newApp(handlers.NewCafeHandler(cafeService), handlers.NewHealthHandler(st.ping))
}

func TestServerHealthCheck(t *testing.T) {
	app := testApp(t, config.Config{
		DatabaseDriver:   "sqlite",
		DatabaseDSN:      fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		DatabaseLogLevel: "silent",
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func postCafe(t *testing.T, app *fiber.App, name string) uint {
	t.Helper()
	form := url.Values{
		"name":         {name},
		"map_url":      {"https://maps.example.com/" + name},
		"img_url":      {"https://img.example.com/" + name + ".jpg"},
		"location":     {"Cairo, Egypt"},
		"seats":        {"50+"},
		"coffee_price": {"$3"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cafes", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created.ID
}

func TestMemoryStore(t *testing.T) {
	app := testApp(t, config.Config{DatabaseDriver: config.DriverMemory})

	firstID := postCafe(t, app, "blue-bottle")
	postCafe(t, app, "stumptown")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/cafes/%d", firstID), nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cafe map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cafe))
	assert.Equal(t, "blue-bottle", cafe["name"])
	assert.Equal(t, "https://maps.example.com/blue-bottle", cafe["map_url"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOpenStore_BadDriver(t *testing.T) {
	_, err := openStore(config.Config{DatabaseDriver: "oracle", DatabaseDSN: "x"})
	assert.Error(t, err)
}
