package response

import (
	"pinory-system/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

// UserInfo 用户信息（隐藏敏感字段）
type UserInfo struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"created_at"`
}

// FilterUserInfo 过滤用户信息，隐藏敏感字段
func FilterUserInfo(user *model.User) *UserInfo {
	if user == nil {
		return nil
	}
	return &UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Nickname:  user.Nickname,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt.Format(timeLayout),
	}
}

// LoginResponse 登录响应
type LoginResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}

// PinoryInfo pinory响应
type PinoryInfo struct {
	ID         uint    `json:"id"`
	OwnerID    uint    `json:"owner_id"`
	Title      string  `json:"title"`
	Note       string  `json:"note"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Address    string  `json:"address"`
	Visibility string  `json:"visibility"`
	CreatedAt  string  `json:"created_at"`
}

// FilterPinoryInfo 过滤pinory信息
func FilterPinoryInfo(p *model.Pinory) *PinoryInfo {
	if p == nil {
		return nil
	}
	return &PinoryInfo{
		ID:         p.ID,
		OwnerID:    p.OwnerID,
		Title:      p.Title,
		Note:       p.Note,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		Address:    p.Address,
		Visibility: p.Visibility,
		CreatedAt:  p.CreatedAt.Format(timeLayout),
	}
}

// ShareInfo 分享链接响应
type ShareInfo struct {
	Slug       string `json:"slug"`
	ShareURL   string `json:"share_url,omitempty"`
	Visibility string `json:"visibility"`
	IsActive   bool   `json:"is_active"`
	ExpiresAt  string `json:"expires_at,omitempty"`
	RevokedAt  string `json:"revoked_at,omitempty"`
	ViewCount  int64  `json:"view_count"`
	CreatedAt  string `json:"created_at"`
}

// FilterShareInfo 过滤分享链接信息
func FilterShareInfo(s *model.ShareLink, shareURL string) *ShareInfo {
	if s == nil {
		return nil
	}
	info := &ShareInfo{
		Slug:       s.ShareSlug,
		ShareURL:   shareURL,
		Visibility: s.Visibility,
		IsActive:   s.IsActive(),
		ViewCount:  s.ViewCount,
		CreatedAt:  s.CreatedAt.Format(timeLayout),
	}
	if s.ExpiresAt != nil {
		info.ExpiresAt = s.ExpiresAt.Format(timeLayout)
	}
	if s.RevokedAt != nil {
		info.RevokedAt = s.RevokedAt.Format(timeLayout)
	}
	return info
}

// ResolveShareResponse 解析分享链接的响应
// Content 和 ShareInfo 仅在判定放行时返回
type ResolveShareResponse struct {
	CanView   bool        `json:"can_view"`
	ViewType  string      `json:"view_type,omitempty"`
	Reason    string      `json:"reason,omitempty"`
	Content   *PinoryInfo `json:"content,omitempty"`
	ShareInfo *ShareInfo  `json:"share_info,omitempty"`
}

// FriendshipInfo 好友关系响应
type FriendshipInfo struct {
	ID          uint   `json:"id"`
	RequesterID uint   `json:"requester_id"`
	AddresseeID uint   `json:"addressee_id"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// FilterFriendshipInfo 过滤好友关系信息
func FilterFriendshipInfo(f *model.Friendship) *FriendshipInfo {
	if f == nil {
		return nil
	}
	return &FriendshipInfo{
		ID:          f.ID,
		RequesterID: f.RequesterID,
		AddresseeID: f.AddresseeID,
		Status:      f.Status,
		CreatedAt:   f.CreatedAt.Format(timeLayout),
		UpdatedAt:   f.UpdatedAt.Format(timeLayout),
	}
}
