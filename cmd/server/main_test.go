package main

import (
	"net/http"
	"net/http/httptest"
	"storefront-be/internal/config"
	"storefront-be/internal/middleware"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRouter(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	cfg := &config.Config{
		JWTSecret:          "secret",
		TokenTTL:           time.Hour,
		InternalSecretKey:  "internal",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	}
	router := setupRouter(cfg, database, middleware.NewRateLimiter())

	t.Run("Health Check", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ok", rr.Body.String())
	})

	t.Run("Anonymous order is rejected before the database", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest("POST", "/orders", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), `"error":"UNAUTHORIZED"`)
	})

	t.Run("Catalog wired to the database", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM products`).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "name", "description", "image_url", "price", "stock", "created_at", "updated_at",
			}))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest("GET", "/products", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CORS preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/orders", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}
