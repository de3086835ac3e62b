package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"ticketdesk/internal/pkg/jwt"
	"ticketdesk/internal/repository"
	"ticketdesk/pkg/constants"
	"ticketdesk/pkg/utils"
)

// AuthMiddleware JWT认证中间件, 校验通过后加载数据库中的实时用户
// 角色与归属以数据库为准, 避免令牌签发后权限变更仍然生效
func AuthMiddleware(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取Authorization header
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorWithCode(c, 401, "缺少Authorization Header")
			c.Abort()
			return
		}

		// 检查Bearer前缀
		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			utils.ErrorWithCode(c, 401, "Authorization格式错误")
			c.Abort()
			return
		}

		// 提取Token
		token := strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix)

		// 验证Token
		claims, err := jwt.ValidateToken(token)
		if err != nil {
			utils.Error(c, err)
			c.Abort()
			return
		}

		// 检查Token类型(必须是AccessToken)
		if claims.Type != constants.JWTTypeAccess {
			utils.ErrorWithCode(c, 401, "无效的Token类型")
			c.Abort()
			return
		}

		// 加载实时用户
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			utils.ErrorWithCode(c, 401, "用户不存在")
			c.Abort()
			return
		}
		if !user.IsActive {
			utils.ErrorWithCode(c, 403, "用户已禁用")
			c.Abort()
			return
		}

		c.Set("user", user)

		c.Next()
	}
}
