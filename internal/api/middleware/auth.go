package middleware

import (
	"net/http"
	"strings"

	"recipe-app-api/internal/core/auth"
	"recipe-app-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CurrentUserKey 通過驗證的使用者在 gin context 中的鍵
const CurrentUserKey = "current_user"

// BearerAuth 驗證 Authorization 標頭中的存取 token
// 驗證失敗回 401 並帶 WWW-Authenticate 挑戰標頭
func BearerAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			unauthorized(c)
			return
		}

		user, err := authService.CurrentUser(tokenString)
		if err != nil {
			common.LogWarn("token 驗證失敗",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			unauthorized(c)
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, common.ErrorResponse{
		Detail: "Could not validate credentials",
	})
}

// CurrentUser 從 context 取出已驗證的使用者
func CurrentUser(c *gin.Context) (auth.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return auth.User{}, false
	}
	user, ok := v.(auth.User)
	return user, ok
}
