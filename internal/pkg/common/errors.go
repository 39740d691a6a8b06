package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 定義 API 錯誤響應結構
// 錯誤訊息放在 detail 欄位，前端依此顯示
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// RespondError 將錯誤寫入 gin 響應
// CustomError 會帶出自身的狀態碼與訊息，其他錯誤一律視為 500
func RespondError(c *gin.Context, err error) {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		c.JSON(customErr.Status, ErrorResponse{Detail: customErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeUnauthorized    = "UNAUTHORIZED"      // 401
	ErrCodeForbidden       = "FORBIDDEN"         // 403
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeConflict        = "CONFLICT"          // 409
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
)

// 預定義錯誤
var (
	ErrInvalidRequest = NewError(ErrCodeInvalidRequest, "Invalid request format", http.StatusBadRequest, nil)
	ErrUnauthorized   = NewError(ErrCodeUnauthorized, "Unauthorized", http.StatusUnauthorized, nil)
	ErrForbidden      = NewError(ErrCodeForbidden, "Forbidden", http.StatusForbidden, nil)
	ErrNotFound       = NewError(ErrCodeNotFound, "Resource not found", http.StatusNotFound, nil)
	ErrInternalError  = NewError(ErrCodeInternalError, "Internal server error", http.StatusInternalServerError, nil)

	// 業務錯誤
	ErrMissingAPIKeys = NewError(ErrCodeInvalidRequest, "API keys are not set properly in the .env file", http.StatusBadRequest, nil)
	ErrUnparseable    = NewError(ErrCodeInternalError, "Could not parse the response from the recipe generation service.", http.StatusInternalServerError, nil)
)
