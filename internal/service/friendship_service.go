package service

import (
	"errors"

	"pinory-system/internal/errs"
	"pinory-system/internal/model"
	"pinory-system/internal/repository"
)

// FriendshipService 好友关系服务
// 状态机：none → pending → {accepted | 删除}，blocked为终态
type FriendshipService struct {
	friendshipRepo repository.FriendshipRepository
	userRepo       repository.UserRepository
}

// NewFriendshipService 创建FriendshipService实例
func NewFriendshipService(friendshipRepo repository.FriendshipRepository, userRepo repository.UserRepository) *FriendshipService {
	return &FriendshipService{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
	}
}

// Request 发送好友请求
// 不能加自己；已有关系时按状态返回对应错误
func (s *FriendshipService) Request(requesterID, addresseeID uint) (*model.Friendship, error) {
	if requesterID == addresseeID {
		return nil, errs.ErrSelfRequest
	}

	// 检查目标用户是否存在
	if _, err := s.userRepo.GetByID(addresseeID); err != nil {
		return nil, err
	}

	// 双向查找已有关系
	existing, err := s.friendshipRepo.GetByPair(requesterID, addresseeID)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case model.FriendshipStatusAccepted:
			return nil, errs.ErrAlreadyFriends
		case model.FriendshipStatusPending:
			return nil, errs.ErrRequestAlreadySent
		case model.FriendshipStatusBlocked:
			return nil, errs.ErrRequestForbidden
		}
	}

	f := &model.Friendship{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      model.FriendshipStatusPending,
	}
	if err := s.friendshipRepo.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Status 查询两个用户之间的关系状态（方向无关）
// 无关系时返回 none
func (s *FriendshipService) Status(userA, userB uint) (string, error) {
	f, err := s.friendshipRepo.GetByPair(userA, userB)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.FriendshipStatusNone, nil
		}
		return "", err
	}
	return f.Status, nil
}

// Accept 接受好友请求
// 只有接收方可以接受，且只能接受pending状态的请求
func (s *FriendshipService) Accept(friendshipID, actingUserID uint) (*model.Friendship, error) {
	f, err := s.friendshipRepo.GetByID(friendshipID)
	if err != nil {
		return nil, err
	}
	if f.AddresseeID != actingUserID {
		return nil, errs.ErrForbidden
	}
	if f.Status != model.FriendshipStatusPending {
		return nil, errs.ErrInvalidInput
	}
	if err := s.friendshipRepo.UpdateStatus(f.ID, model.FriendshipStatusAccepted); err != nil {
		return nil, err
	}
	f.Status = model.FriendshipStatusAccepted
	return f, nil
}

// Remove 删除好友关系
// 关系双方任一人可删除；pending（拒绝请求）和accepted（解除好友）走同一删除路径
func (s *FriendshipService) Remove(friendshipID, actingUserID uint) error {
	f, err := s.friendshipRepo.GetByID(friendshipID)
	if err != nil {
		return err
	}
	if !f.Involves(actingUserID) {
		return errs.ErrForbidden
	}
	return s.friendshipRepo.Delete(f.ID)
}

// Block 屏蔽用户
// 已有关系时覆盖为blocked；无关系时直接创建blocked记录
// blocked为终态，阻止后续好友请求
func (s *FriendshipService) Block(blockerID, targetID uint) (*model.Friendship, error) {
	if blockerID == targetID {
		return nil, errs.ErrSelfRequest
	}
	if _, err := s.userRepo.GetByID(targetID); err != nil {
		return nil, err
	}

	existing, err := s.friendshipRepo.GetByPair(blockerID, targetID)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Status == model.FriendshipStatusBlocked {
			return existing, nil
		}
		if err := s.friendshipRepo.UpdateStatus(existing.ID, model.FriendshipStatusBlocked); err != nil {
			return nil, err
		}
		existing.Status = model.FriendshipStatusBlocked
		return existing, nil
	}

	f := &model.Friendship{
		RequesterID: blockerID,
		AddresseeID: targetID,
		Status:      model.FriendshipStatusBlocked,
	}
	if err := s.friendshipRepo.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

// ListFriends 查询用户的好友ID列表（已接受的关系，双向）
func (s *FriendshipService) ListFriends(userID uint) ([]uint, error) {
	friendships, err := s.friendshipRepo.ListAcceptedByUser(userID)
	if err != nil {
		return nil, err
	}
	friendIDs := make([]uint, 0, len(friendships))
	for _, f := range friendships {
		if f.RequesterID == userID {
			friendIDs = append(friendIDs, f.AddresseeID)
		} else {
			friendIDs = append(friendIDs, f.RequesterID)
		}
	}
	return friendIDs, nil
}
