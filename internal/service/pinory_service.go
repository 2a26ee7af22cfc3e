package service

import (
	"fmt"
	"strings"

	"pinory-system/internal/errs"
	"pinory-system/internal/model"
	"pinory-system/internal/repository"
)

// PinoryService pinory服务
// 只提供分享所需的最小内容面：创建/查询/列出自己的
type PinoryService struct {
	repo repository.PinoryRepository
}

// NewPinoryService 创建PinoryService实例
func NewPinoryService(repo repository.PinoryRepository) *PinoryService {
	return &PinoryService{repo: repo}
}

// Create 创建pinory
// 默认可见性非法或缺失时回落private
func (s *PinoryService) Create(ownerID uint, title, note string, lat, lng float64, address, visibility string) (*model.Pinory, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", errs.ErrInvalidInput)
	}
	if !model.ValidVisibility(visibility) {
		visibility = model.VisibilityPrivate
	}
	p := &model.Pinory{
		OwnerID:    ownerID,
		Title:      title,
		Note:       note,
		Latitude:   lat,
		Longitude:  lng,
		Address:    address,
		Visibility: visibility,
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get 查询pinory（仅所有者可直接读取，对外访问走分享链接）
func (s *PinoryService) Get(id, actingUserID uint) (*model.Pinory, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actingUserID {
		return nil, errs.ErrForbidden
	}
	return p, nil
}

// ListMine 列出用户自己的pinory
func (s *PinoryService) ListMine(ownerID uint, page, pageSize int) ([]*model.Pinory, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.ListByOwner(ownerID, pageSize, (page-1)*pageSize)
}
