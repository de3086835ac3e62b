package handler

import (
	"github.com/gin-gonic/gin"

	"ticketdesk/internal/model"
)

// currentUser 取认证中间件写入的当前用户
func currentUser(c *gin.Context) *model.User {
	return c.MustGet("user").(*model.User)
}
