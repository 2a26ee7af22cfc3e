package repository

import (
	"errors"

	"pinory-system/internal/errs"
	"pinory-system/internal/model"

	"gorm.io/gorm"
)

// PinoryRepository pinory数据访问接口
type PinoryRepository interface {
	Create(p *model.Pinory) error
	GetByID(id uint) (*model.Pinory, error)
	ListByOwner(ownerID uint, limit, offset int) ([]*model.Pinory, error)
}

type pinoryRepository struct {
	db *gorm.DB
}

// NewPinoryRepository 创建PinoryRepository实例
func NewPinoryRepository(db *gorm.DB) PinoryRepository {
	return &pinoryRepository{db: db}
}

func (r *pinoryRepository) Create(p *model.Pinory) error {
	return r.db.Create(p).Error
}

func (r *pinoryRepository) GetByID(id uint) (*model.Pinory, error) {
	var p model.Pinory
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *pinoryRepository) ListByOwner(ownerID uint, limit, offset int) ([]*model.Pinory, error) {
	var pinories []*model.Pinory
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&pinories).Error
	return pinories, err
}
