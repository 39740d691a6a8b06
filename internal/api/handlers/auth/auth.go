package auth

import (
	"net/http"

	"recipe-app-api/internal/api/middleware"
	authService "recipe-app-api/internal/core/auth"
	"recipe-app-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginRequest 登入表單（OAuth2 password flow 風格）
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// RegisterRequest 註冊請求，功能已永久停用，僅保留欄位定義
type RegisterRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerificationRequest 驗證碼請求，功能已永久停用
type VerificationRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ProfileUpdateRequest 個人資料更新請求
type ProfileUpdateRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=30"`
	Email           string `json:"email" binding:"required,email"`
	FullName        string `json:"full_name" binding:"required,max=100"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PasswordResetRequest 忘記密碼請求
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirm 重設密碼請求
type PasswordResetConfirm struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// Handler 認證處理程序
type Handler struct {
	service *authService.Service
}

// NewHandler 創建認證處理程序
func NewHandler(service *authService.Service) *Handler {
	return &Handler{service: service}
}

// HandleToken 以帳號密碼換取存取 token
func (h *Handler) HandleToken(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Detail: "Invalid request format"})
		return
	}

	token, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		// 登入失敗帶上挑戰標頭
		c.Header("WWW-Authenticate", "Bearer")
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

// HandleRequestVerification 註冊驗證碼請求，功能永久停用
func (h *Handler) HandleRequestVerification(c *gin.Context) {
	c.JSON(http.StatusForbidden, common.ErrorResponse{
		Detail: "User registration is currently disabled.",
	})
}

// HandleVerifyAndRegister 註冊確認，功能永久停用
func (h *Handler) HandleVerifyAndRegister(c *gin.Context) {
	c.JSON(http.StatusForbidden, common.ErrorResponse{
		Detail: "User registration is currently disabled.",
	})
}

// HandleForgotPassword 忘記密碼
// 無論 email 是否存在都回同一句話，避免洩漏帳號存在與否
func (h *Handler) HandleForgotPassword(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Detail: "Invalid request format"})
		return
	}

	h.service.ForgotPassword(req.Email)

	c.JSON(http.StatusOK, gin.H{
		"message": "If an account with that email exists, password reset instructions have been sent.",
	})
}

// HandleResetPassword 以重設 token 覆寫密碼
func (h *Handler) HandleResetPassword(c *gin.Context) {
	var req PasswordResetConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Detail: "Invalid request format"})
		return
	}

	if err := h.service.ResetPassword(req.Token, req.NewPassword); err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Your password has been reset successfully.",
	})
}

// HandleMe 回傳目前使用者的公開資料
func (h *Handler) HandleMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, common.ErrorResponse{Detail: "Could not validate credentials"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// HandleUpdateMe 更新個人資料並回傳新 token
func (h *Handler) HandleUpdateMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, common.ErrorResponse{Detail: "Could not validate credentials"})
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Detail: "Invalid request format"})
		return
	}

	token, err := h.service.UpdateProfile(user, authService.ProfileUpdate{
		Username:        req.Username,
		Email:           req.Email,
		FullName:        req.FullName,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}
