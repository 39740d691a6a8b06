package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipe-app-api/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(cfg)
	router := gin.New()
	router.GET("/", handler.Root)
	router.GET("/health", handler.HealthCheck)
	return router
}

func TestRoot(t *testing.T) {
	router := newTestRouter(&config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "Welcome to the Recipe App API!"}`, rec.Body.String())
}

func TestHealthCheck(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{Version: "1.0.0"},
		Gemini: config.GeminiConfig{
			APIKey: "gemini-key",
		},
		Image: config.ImageConfig{
			PixabayAPIKey: "pixabay-key",
			PexelsAPIKey:  "pexels-key",
		},
	}
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "1.0.0", body.Version)
	assert.True(t, body.GeminiKeySet)
	assert.True(t, body.PixabayKeySet)
	assert.True(t, body.PexelsKeySet)
	assert.False(t, body.UnsplashKeySet)

	// 不得洩漏金鑰內容
	assert.NotContains(t, rec.Body.String(), "gemini-key")
	assert.NotContains(t, rec.Body.String(), "pixabay-key")
}
