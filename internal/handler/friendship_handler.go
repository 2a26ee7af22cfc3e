package handler

import (
	"strconv"

	"pinory-system/internal/service"
	"pinory-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// FriendshipHandler 好友关系处理器
type FriendshipHandler struct {
	service *service.FriendshipService
}

// NewFriendshipHandler 创建FriendshipHandler实例
func NewFriendshipHandler(s *service.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{service: s}
}

// Request 发送好友请求
func (h *FriendshipHandler) Request(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	type req struct {
		TargetUserID uint `json:"target_user_id" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	f, err := h.service.Request(userID, r.TargetUserID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "好友请求已发送", response.FilterFriendshipInfo(f))
}

// Accept 接受好友请求（仅接收方）
func (h *FriendshipHandler) Accept(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	friendshipID, err := strconv.ParseUint(c.Param("friendship_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid friendship_id")
		return
	}

	f, err := h.service.Accept(uint(friendshipID), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "已接受好友请求", response.FilterFriendshipInfo(f))
}

// Remove 删除好友关系（拒绝请求/解除好友共用此路径）
func (h *FriendshipHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	friendshipID, err := strconv.ParseUint(c.Param("friendship_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid friendship_id")
		return
	}

	if err := h.service.Remove(uint(friendshipID), userID); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "好友关系已删除", nil)
}

// Block 屏蔽用户
func (h *FriendshipHandler) Block(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	type req struct {
		TargetUserID uint `json:"target_user_id" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	f, err := h.service.Block(userID, r.TargetUserID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "用户已屏蔽", response.FilterFriendshipInfo(f))
}

// List 列出当前用户的好友ID
func (h *FriendshipHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	friendIDs, err := h.service.ListFriends(userID)
	if err != nil {
		response.InternalError(c, "查询好友列表失败")
		return
	}

	response.Success(c, gin.H{"friend_ids": friendIDs})
}

// Status 查询与指定用户的关系状态（方向无关）
func (h *FriendshipHandler) Status(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	otherID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "user_id is required")
		return
	}

	status, err := h.service.Status(userID, uint(otherID))
	if err != nil {
		response.InternalError(c, "查询关系状态失败")
		return
	}

	response.Success(c, gin.H{"status": status})
}
