package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/towntreasure/backend/internal/domain/identity"
	"github.com/towntreasure/backend/internal/infrastructure/auth"
	"github.com/towntreasure/backend/internal/infrastructure/config"
	"github.com/towntreasure/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicProductGate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "town-treasure",
	})
	cfg := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/api/v1/auth/login"},
	}

	engine := gin.New()
	engine.Use(publicProductGate(cfg))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	engine.GET("/api/v1/products", ok)
	engine.GET("/api/v1/products/:id", ok)
	engine.POST("/api/v1/products", ok)
	engine.PUT("/api/v1/products/:id", ok)
	engine.POST("/api/v1/auth/login", ok)
	engine.GET("/api/v1/cart", ok)

	send := func(method, path, token string) int {
		req := httptest.NewRequest(method, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("catalog reads are public", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, send(http.MethodGet, "/api/v1/products", ""))
		assert.Equal(t, http.StatusOK, send(http.MethodGet, "/api/v1/products/abc", ""))
	})

	t.Run("catalog writes require a token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, send(http.MethodPost, "/api/v1/products", ""))
		assert.Equal(t, http.StatusUnauthorized, send(http.MethodPut, "/api/v1/products/abc", ""))
	})

	t.Run("a valid token passes the gate", func(t *testing.T) {
		user, err := identity.NewUser("maya@example.com", "Maya", "hunter2")
		require.NoError(t, err)
		token, err := jwtService.GenerateToken(user)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, send(http.MethodPost, "/api/v1/products", token.AccessToken))
	})

	t.Run("skip paths and protected routes behave as configured", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, send(http.MethodPost, "/api/v1/auth/login", ""))
		assert.Equal(t, http.StatusUnauthorized, send(http.MethodGet, "/api/v1/cart", ""))
	})
}
