package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-app-api/internal/infrastructure/config"
	"recipe-app-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
// 只回報金鑰是否已設定，不洩漏金鑰內容
type HealthResponse struct {
	Status         string                 `json:"status"`
	Timestamp      time.Time              `json:"timestamp"`
	Version        string                 `json:"version"`
	GeminiKeySet   bool                   `json:"gemini_key_set"`
	PixabayKeySet  bool                   `json:"pixabay_key_set"`
	PexelsKeySet   bool                   `json:"pexels_key_set"`
	UnsplashKeySet bool                   `json:"unsplash_key_set"`
	Runtime        map[string]interface{} `json:"runtime"`
}

// Handler 健康檢查處理程序
type Handler struct {
	config *config.Config
}

// NewHandler 創建健康檢查處理程序
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{config: cfg}
}

// Root 根端點，確認 API 運作中
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Recipe App API!",
	})
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:         "ok",
		Timestamp:      time.Now(),
		Version:        h.config.App.Version,
		GeminiKeySet:   h.config.Gemini.APIKey != "",
		PixabayKeySet:  h.config.Image.PixabayAPIKey != "",
		PexelsKeySet:   h.config.Image.PexelsAPIKey != "",
		UnsplashKeySet: h.config.Image.UnsplashAccessKey != "",
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":  m.Alloc,
				"sys":    m.Sys,
				"num_gc": m.NumGC,
			},
		},
	}

	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}
