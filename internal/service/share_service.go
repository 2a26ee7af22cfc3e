package service

import (
	"errors"
	"strings"
	"time"

	"pinory-system/internal/errs"
	"pinory-system/internal/model"
	"pinory-system/internal/repository"
	"pinory-system/pkg/redis"
	"pinory-system/pkg/slug"
)

// DefaultShareTTL 未指定过期时间时的默认有效期
const DefaultShareTTL = 30 * 24 * time.Hour

// ShareService 分享链接生命周期服务
// 创建/查询/撤销/删除，以及访问判定和浏览计数
type ShareService struct {
	shareRepo      repository.ShareRepository
	pinoryRepo     repository.PinoryRepository
	friendshipRepo repository.FriendshipRepository
	slugGen        *slug.Generator
	baseURL        string        // 无Host头时构造分享URL的兜底origin
	shareTTL       time.Duration // 默认有效期
}

// NewShareService 创建ShareService实例
// baseURL为空时使用空origin（URL只含路径），shareTTL非正时使用默认30天
func NewShareService(
	shareRepo repository.ShareRepository,
	pinoryRepo repository.PinoryRepository,
	friendshipRepo repository.FriendshipRepository,
	slugGen *slug.Generator,
	baseURL string,
	shareTTL time.Duration,
) *ShareService {
	if shareTTL <= 0 {
		shareTTL = DefaultShareTTL
	}
	return &ShareService{
		shareRepo:      shareRepo,
		pinoryRepo:     pinoryRepo,
		friendshipRepo: friendshipRepo,
		slugGen:        slugGen,
		baseURL:        baseURL,
		shareTTL:       shareTTL,
	}
}

// CreateResult 创建分享的返回结果
type CreateResult struct {
	Share    *model.ShareLink
	ShareURL string
}

// Create 创建分享链接
// 流程：校验所有权 → 校验可见性（非法时回落friends）→ 幂等检查 → 生成唯一slug → 落库
// 同一内容已有有效分享时直接返回已有记录，不会产生重复
// origin 优先使用请求的Host，为空时回落配置的baseURL
func (s *ShareService) Create(ownerID, pinoryID uint, visibility string, expiresAt *time.Time, origin string) (*CreateResult, error) {
	if ownerID == 0 {
		return nil, errs.ErrUnauthenticated
	}

	pinory, err := s.pinoryRepo.GetByID(pinoryID)
	if err != nil {
		return nil, err
	}
	if pinory.OwnerID != ownerID {
		return nil, errs.ErrForbidden
	}

	// 非法或缺失的可见性回落为friends
	if !model.ValidVisibility(visibility) {
		visibility = model.VisibilityFriends
	}

	// 幂等创建：已有有效分享时原样返回
	existing, err := s.shareRepo.GetActiveByPinoryAndOwner(pinoryID, ownerID)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return &CreateResult{Share: existing, ShareURL: s.buildShareURL(origin, existing.ShareSlug)}, nil
	}

	if expiresAt == nil {
		t := time.Now().Add(s.shareTTL)
		expiresAt = &t
	}

	// uk_share_active唯一索引兜底幂等检查的竞态窗口：两个并发请求都
	// 通过了上面的检查时，后插入的一条会触发唯一冲突，此时改为返回先
	// 插入的记录；slug撞车同样表现为唯一冲突，换一个slug重试
	active := true
	for attempt := 0; attempt < 2; attempt++ {
		shareSlug, err := s.slugGen.GenerateUnique(s.shareRepo.SlugExists)
		if err != nil {
			return nil, err
		}

		link := &model.ShareLink{
			PinoryID:   pinoryID,
			CreatedBy:  ownerID,
			ShareSlug:  shareSlug,
			Visibility: visibility,
			Active:     &active,
			ExpiresAt:  expiresAt,
			ViewCount:  0,
		}
		err = s.shareRepo.Create(link)
		if err == nil {
			return &CreateResult{Share: link, ShareURL: s.buildShareURL(origin, shareSlug)}, nil
		}
		if !errors.Is(err, errs.ErrDuplicateKey) {
			return nil, err
		}
		if winner, gerr := s.shareRepo.GetActiveByPinoryAndOwner(pinoryID, ownerID); gerr == nil {
			return &CreateResult{Share: winner, ShareURL: s.buildShareURL(origin, winner.ShareSlug)}, nil
		}
	}
	return nil, errs.ErrSlugExhausted
}

// buildShareURL 构造完整分享URL
func (s *ShareService) buildShareURL(origin, shareSlug string) string {
	if origin == "" {
		origin = s.baseURL
	}
	return strings.TrimRight(origin, "/") + "/s/" + shareSlug
}

// ResolveResult 解析分享链接的返回结果
// 仅在判定放行时填充 Share 和 Pinory
type ResolveResult struct {
	Decision AccessDecision
	Share    *model.ShareLink
	Pinory   *model.Pinory
}

// Resolve 解析分享链接并做访问判定
// viewerID 为 nil 表示匿名访问
// 撤销检查先于可见性求值：已撤销的链接对所有人（含所有者）不可见
// 判定放行且访问者不是所有者时记一次浏览
func (s *ShareService) Resolve(shareSlug string, viewerID *uint) (*ResolveResult, error) {
	link, err := s.fetchBySlug(shareSlug)
	if err != nil {
		return nil, err
	}

	if !link.IsActive() {
		return &ResolveResult{Decision: AccessDecision{CanView: false, Reason: ReasonRevoked}}, nil
	}

	expired := link.IsExpired(time.Now())

	// 仅当可见性需要好友关系时才查询状态
	friendStatus := model.FriendshipStatusNone
	if viewerID != nil && *viewerID != link.CreatedBy &&
		(link.Visibility == model.VisibilityFriends || link.Visibility == model.VisibilitySelectedFriends) {
		friendStatus, err = s.lookupFriendStatus(*viewerID, link.CreatedBy)
		if err != nil {
			return nil, err
		}
	}

	decision := Decide(link.Visibility, viewerID, link.CreatedBy, friendStatus, expired)
	if !decision.CanView {
		return &ResolveResult{Decision: decision}, nil
	}

	// 浏览计数：所有者访问不计数，其余（含匿名）至少记一次
	if viewerID == nil || *viewerID != link.CreatedBy {
		if err := s.shareRepo.IncrementViewCount(link.ID); err == nil {
			link.ViewCount++
		}
		// 计数是参考性指标，缓存副本允许在TTL内滞后
	}

	return &ResolveResult{Decision: decision, Share: link, Pinory: link.Pinory}, nil
}

// fetchBySlug 按slug取分享记录，优先读缓存
func (s *ShareService) fetchBySlug(shareSlug string) (*model.ShareLink, error) {
	if cached, err := redis.GetCachedShare(shareSlug); err == nil && cached != nil {
		return cached, nil
	}
	link, err := s.shareRepo.GetBySlug(shareSlug)
	if err != nil {
		return nil, err
	}
	_ = redis.CacheShare(link)
	return link, nil
}

// Revoke 撤销分享（保留记录用于审计，slug不释放）
// 重复撤销依然成功，RevokedAt被覆盖
func (s *ShareService) Revoke(shareSlug string, actingUserID uint) (*model.ShareLink, error) {
	link, err := s.shareRepo.GetBySlug(shareSlug)
	if err != nil {
		return nil, err
	}
	if err := s.checkShareOwner(link, actingUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.shareRepo.Revoke(link.ID, now); err != nil {
		return nil, err
	}
	link.Active = nil
	link.RevokedAt = &now

	_ = redis.InvalidateShare(shareSlug)
	return link, nil
}

// Delete 物理删除分享记录，slug可重新使用
func (s *ShareService) Delete(shareSlug string, actingUserID uint) error {
	link, err := s.shareRepo.GetBySlug(shareSlug)
	if err != nil {
		return err
	}
	if err := s.checkShareOwner(link, actingUserID); err != nil {
		return err
	}
	if err := s.shareRepo.Delete(link.ID); err != nil {
		return err
	}
	_ = redis.InvalidateShare(shareSlug)
	return nil
}

// checkShareOwner 校验操作者是被分享内容的所有者
func (s *ShareService) checkShareOwner(link *model.ShareLink, actingUserID uint) error {
	ownerID := link.CreatedBy
	if link.Pinory != nil {
		ownerID = link.Pinory.OwnerID
	}
	if actingUserID != ownerID {
		return errs.ErrForbidden
	}
	return nil
}

// lookupFriendStatus 查询访问者与所有者的好友状态，无关系返回none
func (s *ShareService) lookupFriendStatus(viewerID, ownerID uint) (string, error) {
	f, err := s.friendshipRepo.GetByPair(viewerID, ownerID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.FriendshipStatusNone, nil
		}
		return "", err
	}
	return f.Status, nil
}
