package mealplan

import (
	"net/http"

	mealplanService "recipe-app-api/internal/core/mealplan"
	"recipe-app-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateMealPlanRequest 週間餐點計畫的請求體
type GenerateMealPlanRequest struct {
	Allergies []string `json:"allergies"` // 要避開的過敏原
}

// Handler 餐點計畫處理程序
type Handler struct {
	service *mealplanService.Service
}

// NewHandler 創建餐點計畫處理程序
func NewHandler(service *mealplanService.Service) *Handler {
	return &Handler{service: service}
}

// HandleGeneratePlan 生成完整的 7 天 × 3 餐計畫
func (h *Handler) HandleGeneratePlan(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")

	var req GenerateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Detail: "Invalid request format"})
		return
	}

	common.LogInfo("開始處理餐點計畫請求",
		zap.String("request_id", requestID),
		zap.Int("allergy_count", len(req.Allergies)),
	)

	plan, err := h.service.Generate(c.Request.Context(), req.Allergies)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}
