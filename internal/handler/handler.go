package handler

import (
	"strconv"

	"pinory-system/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// currentUserID 从JWT中间件写入的Context中取当前用户ID
// 未认证或ID非法时返回 (0, false)
func currentUserID(c *gin.Context) (uint, bool) {
	userIDStr := jwt.GetUserID(c)
	if userIDStr == "" {
		return 0, false
	}
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// optionalUserID 可选认证接口取当前用户ID，匿名时返回nil
func optionalUserID(c *gin.Context) *uint {
	if id, ok := currentUserID(c); ok {
		return &id
	}
	return nil
}
