package save

import (
	"fmt"
	"net/http"

	saveStore "recipe-app-api/internal/core/save"
	"recipe-app-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 收藏食譜處理程序
type Handler struct {
	store *saveStore.Store
}

// NewHandler 創建收藏處理程序
func NewHandler(store *saveStore.Store) *Handler {
	return &Handler{store: store}
}

// HandleSave 收藏一筆食譜
func (h *Handler) HandleSave(c *gin.Context) {
	var record saveStore.Record
	if err := c.ShouldBindJSON(&record); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Detail: "Invalid request format"})
		return
	}

	if err := h.store.Save(record); err != nil {
		common.RespondError(c, err)
		return
	}

	common.LogInfo("食譜已收藏",
		zap.String("username", record.Username),
		zap.String("recipe_name", record.RecipeName),
	)

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Recipe '%s' saved successfully!", record.RecipeName),
	})
}

// HandleList 列出使用者的所有收藏
func (h *Handler) HandleList(c *gin.Context) {
	username := c.Param("username")

	recipes, err := h.store.List(username)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// HandleDelete 移除一筆收藏
func (h *Handler) HandleDelete(c *gin.Context) {
	username := c.Param("username")
	recipeName := c.Param("recipe_name")

	if err := h.store.Delete(username, recipeName); err != nil {
		common.RespondError(c, err)
		return
	}

	common.LogInfo("收藏已移除",
		zap.String("username", username),
		zap.String("recipe_name", recipeName),
	)

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Recipe '%s' was removed from your favorites.", recipeName),
	})
}
