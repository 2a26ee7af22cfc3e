package handler

import (
	"strconv"

	"pinory-system/internal/service"
	"pinory-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// PinoryHandler pinory处理器
type PinoryHandler struct {
	service *service.PinoryService
}

// NewPinoryHandler 创建PinoryHandler实例
func NewPinoryHandler(s *service.PinoryService) *PinoryHandler {
	return &PinoryHandler{service: s}
}

// Create 创建pinory
func (h *PinoryHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	type req struct {
		Title      string  `json:"title" binding:"required"`
		Note       string  `json:"note"`
		Latitude   float64 `json:"latitude"`
		Longitude  float64 `json:"longitude"`
		Address    string  `json:"address"`
		Visibility string  `json:"visibility"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.Create(userID, r.Title, r.Note, r.Latitude, r.Longitude, r.Address, r.Visibility)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "创建成功", response.FilterPinoryInfo(p))
}

// Get 查询单个pinory（仅所有者）
func (h *PinoryHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	pinoryID, err := strconv.ParseUint(c.Param("pinory_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid pinory_id")
		return
	}

	p, err := h.service.Get(uint(pinoryID), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, response.FilterPinoryInfo(p))
}

// ListMine 列出当前用户的pinory
func (h *PinoryHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "用户未认证")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	pinories, err := h.service.ListMine(userID, page, pageSize)
	if err != nil {
		response.InternalError(c, "查询失败")
		return
	}

	infos := make([]*response.PinoryInfo, 0, len(pinories))
	for _, p := range pinories {
		infos = append(infos, response.FilterPinoryInfo(p))
	}
	response.Success(c, infos)
}
