package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ticketdesk/internal/pkg/config"
	"ticketdesk/pkg/constants"
	pkgErrors "ticketdesk/pkg/errors"
)

// UserClaims 用户Claims
type UserClaims struct {
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id,omitempty"`
	TeamID         string `json:"team_id,omitempty"`
	Type           string `json:"type"` // access or refresh
	jwt.RegisteredClaims
}

// TokenUser 签发Token所需的用户信息
type TokenUser struct {
	ID             string
	Email          string
	Role           string
	OrganizationID string
	TeamID         string
}

// GenerateAccessToken 生成访问Token
func GenerateAccessToken(user *TokenUser) (string, error) {
	cfg := config.GlobalConfig.Auth.JWT
	return generate(user, constants.JWTTypeAccess, time.Duration(cfg.AccessTokenExpire)*time.Second)
}

// GenerateRefreshToken 生成刷新Token
func GenerateRefreshToken(user *TokenUser) (string, error) {
	cfg := config.GlobalConfig.Auth.JWT
	return generate(user, constants.JWTTypeRefresh, time.Duration(cfg.RefreshTokenExpire)*time.Second)
}

func generate(user *TokenUser, tokenType string, expire time.Duration) (string, error) {
	cfg := config.GlobalConfig.Auth.JWT

	claims := UserClaims{
		UserID:         user.ID,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		TeamID:         user.TeamID,
		Type:           tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseToken 解析Token
func ParseToken(tokenString string) (*UserClaims, error) {
	cfg := config.GlobalConfig.Auth.JWT

	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeUnauthorized, "解析Token失败", err)
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, pkgErrors.ErrInvalidToken
}

// ValidateToken 验证Token有效性
func ValidateToken(tokenString string) (*UserClaims, error) {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	// 检查是否过期
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, pkgErrors.ErrTokenExpired
	}

	return claims, nil
}
