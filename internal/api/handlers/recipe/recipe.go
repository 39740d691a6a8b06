package recipe

import (
	"net/http"

	recipeService "recipe-app-api/internal/core/recipe"
	"recipe-app-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecommendRequest 推薦食譜的請求體
type RecommendRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"` // 手邊的食材
	Allergies   []string `json:"allergies"`                      // 要避開的過敏原
}

// RecipeDetailsRequest 查詢食譜詳情的請求體
type RecipeDetailsRequest struct {
	RecipeName string `json:"recipe_name" binding:"required"`
	CookTime   string `json:"cook_time"`
	Difficulty string `json:"difficulty"`
	ImageURL   string `json:"image_url"`
}

// Handler 食譜推薦與詳情處理程序
type Handler struct {
	service *recipeService.Service
}

// NewHandler 創建食譜處理程序
func NewHandler(service *recipeService.Service) *Handler {
	return &Handler{service: service}
}

// HandleRecommend 依食材推薦多道食譜
func (h *Handler) HandleRecommend(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Detail: "Invalid request format"})
		return
	}

	common.LogInfo("開始處理食譜推薦請求",
		zap.String("request_id", requestID),
		zap.Int("ingredient_count", len(req.Ingredients)),
		zap.Int("allergy_count", len(req.Allergies)),
	)

	results, err := h.service.Recommend(c.Request.Context(), req.Ingredients, req.Allergies)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// HandleDetails 取得單一食譜的詳細資訊
func (h *Handler) HandleDetails(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")

	var req RecipeDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Detail: "Invalid request format"})
		return
	}

	detail, err := h.service.Details(c.Request.Context(), recipeService.DetailRequest{
		RecipeName: req.RecipeName,
		CookTime:   req.CookTime,
		Difficulty: req.Difficulty,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}
