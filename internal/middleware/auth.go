package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/internal/logger"
	"github.com/nsxzhou1114/realworld-api/pkg/auth"
	"github.com/nsxzhou1114/realworld-api/pkg/response"
)

const (
	userIDKey = "userID"
	tokenKey  = "token"
)

// JWTAuth JWT认证中间件
func JWTAuth(tokens *auth.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "请先登录", nil)
			c.Abort()
			return
		}

		token, ok := extractToken(authHeader)
		if !ok {
			response.Unauthorized(c, "Authorization格式错误", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(c.Request.Context(), token)
		if err != nil {
			logger.Warnf("无效的令牌: %v", err)
			response.Unauthorized(c, "无效的令牌", err)
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// OptionalAuth 可选的JWT认证中间件
// 不会阻止未认证的用户访问，但如果提供了有效的token会设置用户信息到上下文
func OptionalAuth(tokens *auth.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		token, ok := extractToken(authHeader)
		if !ok {
			logger.Warnf("Authorization格式错误: %s", authHeader)
			c.Next()
			return
		}

		claims, err := tokens.Parse(c.Request.Context(), token)
		if err != nil {
			logger.Warnf("无效的令牌: %v", err)
			c.Next()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// extractToken 支持 "Token xxx" 与 "Bearer xxx" 两种格式
func extractToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if parts[0] != "Token" && parts[0] != "Bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetUserID 从上下文中获取用户ID，匿名请求返回 uuid.Nil
func GetUserID(c *gin.Context) uuid.UUID {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil
	}
	id, _ := userID.(uuid.UUID)
	return id
}

// GetToken 从上下文中获取原始令牌
func GetToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
