package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AccessTokenExpiry 存取 token 有效期
	AccessTokenExpiry = 30 * time.Minute
	// ResetTokenExpiry 密碼重設 token 有效期
	ResetTokenExpiry = 15 * time.Minute

	// PurposePasswordReset 重設 token 的用途聲明
	PurposePasswordReset = "password-reset"
)

// Claims JWT 內容，subject 為使用者 email
type Claims struct {
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Purpose  string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// CreateAccessToken 簽發帶身份聲明的存取 token
func (s *Service) CreateAccessToken(user User) (string, error) {
	claims := Claims{
		Username: user.Username,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// CreateResetToken 簽發限定用途的密碼重設 token
func (s *Service) CreateResetToken(email string) (string, error) {
	claims := Claims{
		Purpose: PurposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ResetTokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// parseToken 驗證簽名與效期後取回聲明
func (s *Service) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
