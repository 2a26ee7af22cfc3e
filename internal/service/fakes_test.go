package service

import (
	"time"

	"pinory-system/internal/errs"
	"pinory-system/internal/model"
	"pinory-system/internal/repository"
)

// 内存版仓储实现，服务层测试不依赖数据库

type fakeUserRepo struct {
	byID   map[uint]*model.User
	nextID uint
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[uint]*model.User{}}
}

func (f *fakeUserRepo) addUser(username string) *model.User {
	f.nextID++
	u := &model.User{ID: f.nextID, Username: username, CreatedAt: time.Now()}
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(u *model.User) error {
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsernameOrEmail(identifier string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return nil, errs.ErrNotFound
}

type fakePinoryRepo struct {
	byID   map[uint]*model.Pinory
	nextID uint
}

var _ repository.PinoryRepository = (*fakePinoryRepo)(nil)

func newFakePinoryRepo() *fakePinoryRepo {
	return &fakePinoryRepo{byID: map[uint]*model.Pinory{}}
}

func (f *fakePinoryRepo) addPinory(ownerID uint, title string) *model.Pinory {
	f.nextID++
	p := &model.Pinory{ID: f.nextID, OwnerID: ownerID, Title: title, Visibility: model.VisibilityPrivate}
	f.byID[p.ID] = p
	return p
}

func (f *fakePinoryRepo) Create(p *model.Pinory) error {
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	f.byID[p.ID] = p
	return nil
}

func (f *fakePinoryRepo) GetByID(id uint) (*model.Pinory, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return p, nil
}

func (f *fakePinoryRepo) ListByOwner(ownerID uint, limit, offset int) ([]*model.Pinory, error) {
	var out []*model.Pinory
	for _, p := range f.byID {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeFriendshipRepo struct {
	byID   map[uint]*model.Friendship
	nextID uint
}

var _ repository.FriendshipRepository = (*fakeFriendshipRepo)(nil)

func newFakeFriendshipRepo() *fakeFriendshipRepo {
	return &fakeFriendshipRepo{byID: map[uint]*model.Friendship{}}
}

func (f *fakeFriendshipRepo) Create(fr *model.Friendship) error {
	f.nextID++
	fr.ID = f.nextID
	fr.CreatedAt = time.Now()
	fr.UpdatedAt = fr.CreatedAt
	f.byID[fr.ID] = fr
	return nil
}

func (f *fakeFriendshipRepo) GetByID(id uint) (*model.Friendship, error) {
	fr, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return fr, nil
}

func (f *fakeFriendshipRepo) GetByPair(userA, userB uint) (*model.Friendship, error) {
	for _, fr := range f.byID {
		if (fr.RequesterID == userA && fr.AddresseeID == userB) ||
			(fr.RequesterID == userB && fr.AddresseeID == userA) {
			return fr, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeFriendshipRepo) UpdateStatus(id uint, status string) error {
	fr, ok := f.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	fr.Status = status
	fr.UpdatedAt = time.Now()
	return nil
}

func (f *fakeFriendshipRepo) Delete(id uint) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeFriendshipRepo) ListAcceptedByUser(userID uint) ([]*model.Friendship, error) {
	var out []*model.Friendship
	for _, fr := range f.byID {
		if fr.Status == model.FriendshipStatusAccepted && fr.Involves(userID) {
			out = append(out, fr)
		}
	}
	return out, nil
}

type fakeShareRepo struct {
	byID     map[uint]*model.ShareLink
	nextID   uint
	pinories *fakePinoryRepo

	// 模拟并发窗口：前N次有效分享查询读不到已插入的记录
	hideActiveReads int
}

var _ repository.ShareRepository = (*fakeShareRepo)(nil)

func newFakeShareRepo(pinories *fakePinoryRepo) *fakeShareRepo {
	return &fakeShareRepo{byID: map[uint]*model.ShareLink{}, pinories: pinories}
}

func (f *fakeShareRepo) Create(s *model.ShareLink) error {
	// 模拟存储层唯一索引：slug全局唯一，uk_share_active约束同一内容
	// 同一创建者最多一条有效记录（NULL不冲突）
	for _, existing := range f.byID {
		if existing.ShareSlug == s.ShareSlug {
			return errs.ErrDuplicateKey
		}
		if existing.PinoryID == s.PinoryID && existing.CreatedBy == s.CreatedBy &&
			existing.Active != nil && s.Active != nil {
			return errs.ErrDuplicateKey
		}
	}
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	f.byID[s.ID] = s
	return nil
}

func (f *fakeShareRepo) GetBySlug(slug string) (*model.ShareLink, error) {
	for _, s := range f.byID {
		if s.ShareSlug == slug {
			// 返回副本，模拟从数据库读出的独立记录
			cpy := *s
			if f.pinories != nil {
				cpy.Pinory = f.pinories.byID[s.PinoryID]
			}
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeShareRepo) GetActiveByPinoryAndOwner(pinoryID, ownerID uint) (*model.ShareLink, error) {
	if f.hideActiveReads > 0 {
		f.hideActiveReads--
		return nil, errs.ErrNotFound
	}
	for _, s := range f.byID {
		if s.PinoryID == pinoryID && s.CreatedBy == ownerID && s.IsActive() {
			cpy := *s
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeShareRepo) SlugExists(slug string) (bool, error) {
	for _, s := range f.byID {
		if s.ShareSlug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeShareRepo) Revoke(id uint, revokedAt time.Time) error {
	s, ok := f.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	s.Active = nil
	s.RevokedAt = &revokedAt
	return nil
}

func (f *fakeShareRepo) Delete(id uint) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeShareRepo) IncrementViewCount(id uint) error {
	s, ok := f.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	s.ViewCount++
	return nil
}
