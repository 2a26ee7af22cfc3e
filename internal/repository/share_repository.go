package repository

import (
	"errors"
	"time"

	"pinory-system/internal/errs"
	"pinory-system/internal/model"

	"gorm.io/gorm"
)

// ShareRepository 分享链接数据访问接口
// ShareLink不使用软删除：Delete为物理删除，释放slug
type ShareRepository interface {
	Create(s *model.ShareLink) error
	GetBySlug(slug string) (*model.ShareLink, error)
	GetActiveByPinoryAndOwner(pinoryID, ownerID uint) (*model.ShareLink, error)
	SlugExists(slug string) (bool, error)
	Revoke(id uint, revokedAt time.Time) error
	Delete(id uint) error
	IncrementViewCount(id uint) error
}

type shareRepository struct {
	db *gorm.DB
}

// NewShareRepository 创建ShareRepository实例
func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepository{db: db}
}

// Create 落库新分享
// slug唯一索引和uk_share_active共同兜底并发：冲突时返回ErrDuplicateKey由服务层处理
func (r *shareRepository) Create(s *model.ShareLink) error {
	if err := r.db.Create(s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// GetBySlug 按slug查询分享记录并预加载关联的pinory
func (r *shareRepository) GetBySlug(slug string) (*model.ShareLink, error) {
	var s model.ShareLink
	err := r.db.Preload("Pinory").Where("share_slug = ?", slug).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetActiveByPinoryAndOwner 查询某内容当前有效的分享记录（幂等创建用）
func (r *shareRepository) GetActiveByPinoryAndOwner(pinoryID, ownerID uint) (*model.ShareLink, error) {
	var s model.ShareLink
	err := r.db.Where("pinory_id = ? AND created_by = ? AND is_active = ?", pinoryID, ownerID, true).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *shareRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ShareLink{}).Where("share_slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Revoke 撤销分享（软状态：保留记录用于审计）
// is_active置NULL而不是false：NULL不参与uk_share_active唯一约束，
// 同一内容可以留存多条撤销记录并允许再次创建
func (r *shareRepository) Revoke(id uint, revokedAt time.Time) error {
	return r.db.Model(&model.ShareLink{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  nil,
			"revoked_at": revokedAt,
		}).Error
}

// Delete 物理删除分享记录，slug可被重新使用
func (r *shareRepository) Delete(id uint) error {
	return r.db.Delete(&model.ShareLink{}, id).Error
}

// IncrementViewCount 原子递增浏览计数，避免读改写丢失更新
func (r *shareRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&model.ShareLink{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}
