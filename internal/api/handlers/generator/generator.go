package generator

import (
	"net/http"

	generatorService "recipe-app-api/internal/core/generator"
	"recipe-app-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateRecipeRequest 單一食譜生成的請求體
type GenerateRecipeRequest struct {
	MealType           string   `json:"meal_type" binding:"required"` // 餐別，如 breakfast
	Allergies          []string `json:"allergies"`                    // 要避開的過敏原
	PreviousRecipeName string   `json:"previous_recipe_name"`        // 上一道食譜名稱，避免重複
}

// Handler 食譜生成處理程序
type Handler struct {
	service *generatorService.Service
}

// NewHandler 創建食譜生成處理程序
func NewHandler(service *generatorService.Service) *Handler {
	return &Handler{service: service}
}

// HandleGenerate 生成一道創意食譜
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")

	var req GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Detail: "Invalid request format"})
		return
	}

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", requestID),
		zap.String("meal_type", req.MealType),
		zap.String("previous_recipe", req.PreviousRecipeName),
	)

	result, err := h.service.Generate(c.Request.Context(), generatorService.Request{
		MealType:           req.MealType,
		Allergies:          req.Allergies,
		PreviousRecipeName: req.PreviousRecipeName,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
