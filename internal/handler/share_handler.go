package handler

import (
	"time"

	"pinory-system/internal/service"
	"pinory-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// ShareHandler 分享链接处理器
type ShareHandler struct {
	service *service.ShareService
}

// NewShareHandler 创建ShareHandler实例
func NewShareHandler(s *service.ShareService) *ShareHandler {
	return &ShareHandler{service: s}
}

// requestOrigin 从请求取origin（Host头优先，取不到时服务层回落配置的baseURL）
func requestOrigin(c *gin.Context) string {
	host := c.Request.Host
	if host == "" {
		return ""
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + host
}

// Create 创建分享链接
// 同一内容已有有效分享时幂等返回已有链接
func (h *ShareHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	type req struct {
		PinoryID   uint   `json:"pinory_id" binding:"required"`
		Visibility string `json:"visibility"`
		ExpiresAt  string `json:"expires_at"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var expiresAt *time.Time
	if r.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, r.ExpiresAt)
		if err != nil {
			response.BadRequest(c, "expires_at格式错误，应为RFC3339")
			return
		}
		expiresAt = &t
	}

	result, err := h.service.Create(userID, r.PinoryID, r.Visibility, expiresAt, requestOrigin(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "分享创建成功", response.FilterShareInfo(result.Share, result.ShareURL))
}

// Resolve 解析分享链接（可选认证：匿名访问者也可调用）
// 内容仅在判定放行时返回
func (h *ShareHandler) Resolve(c *gin.Context) {
	shareSlug := c.Param("slug")
	if shareSlug == "" {
		response.BadRequest(c, "slug is required")
		return
	}

	result, err := h.service.Resolve(shareSlug, optionalUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp := &response.ResolveShareResponse{
		CanView:  result.Decision.CanView,
		ViewType: result.Decision.ViewType,
		Reason:   result.Decision.Reason,
	}
	if result.Decision.CanView {
		resp.Content = response.FilterPinoryInfo(result.Pinory)
		resp.ShareInfo = response.FilterShareInfo(result.Share, "")
	}
	response.Success(c, resp)
}

// Revoke 撤销分享（保留记录，不再可访问）
func (h *ShareHandler) Revoke(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	shareSlug := c.Param("slug")
	if shareSlug == "" {
		response.BadRequest(c, "slug is required")
		return
	}

	link, err := h.service.Revoke(shareSlug, userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "分享已撤销", response.FilterShareInfo(link, ""))
}

// Delete 删除分享记录（物理删除，slug释放）
func (h *ShareHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	shareSlug := c.Param("slug")
	if shareSlug == "" {
		response.BadRequest(c, "slug is required")
		return
	}

	if err := h.service.Delete(shareSlug, userID); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "分享已删除", nil)
}
