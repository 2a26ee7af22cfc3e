package repository

import (
	"errors"

	"pinory-system/internal/errs"
	"pinory-system/internal/model"

	"gorm.io/gorm"
)

// FriendshipRepository 好友关系数据访问接口
// 一对用户没有固定方向，GetByPair 必须双向匹配
type FriendshipRepository interface {
	Create(f *model.Friendship) error
	GetByID(id uint) (*model.Friendship, error)
	GetByPair(userA, userB uint) (*model.Friendship, error)
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
	ListAcceptedByUser(userID uint) ([]*model.Friendship, error)
}

type friendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository 创建FriendshipRepository实例
func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) Create(f *model.Friendship) error {
	return r.db.Create(f).Error
}

func (r *friendshipRepository) GetByID(id uint) (*model.Friendship, error) {
	var f model.Friendship
	if err := r.db.First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// GetByPair 查询两个用户之间的关系记录（双向匹配）
func (r *friendshipRepository) GetByPair(userA, userB uint) (*model.Friendship, error) {
	var f model.Friendship
	err := r.db.Where(
		"(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
		userA, userB, userB, userA,
	).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *friendshipRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&model.Friendship{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *friendshipRepository) Delete(id uint) error {
	return r.db.Delete(&model.Friendship{}, id).Error
}

// ListAcceptedByUser 查询用户的所有已接受好友关系（双向）
func (r *friendshipRepository) ListAcceptedByUser(userID uint) ([]*model.Friendship, error) {
	var friendships []*model.Friendship
	err := r.db.Where(
		"(requester_id = ? OR addressee_id = ?) AND status = ?",
		userID, userID, model.FriendshipStatusAccepted,
	).
		Order("updated_at DESC").
		Find(&friendships).Error
	return friendships, err
}
