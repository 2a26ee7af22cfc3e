package service

import "pinory-system/internal/model"

// 访问类型
const (
	ViewTypeOwner  = "owner"
	ViewTypePublic = "public"
	ViewTypeFriend = "friend"
)

// 拒绝原因
const (
	ReasonExpired        = "expired"
	ReasonRevoked        = "revoked"
	ReasonPrivate        = "private"
	ReasonSignInRequired = "sign-in-required"
	ReasonNotFriends     = "not-friends"
)

// AccessDecision 访问判定结果
type AccessDecision struct {
	CanView  bool   `json:"can_view"`
	ViewType string `json:"view_type,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Decide 访问判定（纯函数，无副作用、无IO）
// viewerID 为 nil 表示匿名访问者
// friendStatus 传 model.FriendshipStatusNone 表示无关系
// 规则按顺序求值，先命中先返回：
//  1. 已过期 → 拒绝
//  2. 所有者 → 放行
//  3. public → 放行
//  4. private → 拒绝
//  5. friends / selected_friends → 匿名要求登录；accepted放行；否则拒绝
//
// 撤销检查不在这里：调用方在求值可见性之前先检查 IsActive，
// 撤销的链接连所有者也看不到
func Decide(visibility string, viewerID *uint, ownerID uint, friendStatus string, expired bool) AccessDecision {
	if expired {
		return AccessDecision{CanView: false, Reason: ReasonExpired}
	}
	if viewerID != nil && *viewerID == ownerID {
		return AccessDecision{CanView: true, ViewType: ViewTypeOwner}
	}
	switch visibility {
	case model.VisibilityPublic:
		return AccessDecision{CanView: true, ViewType: ViewTypePublic}
	case model.VisibilityPrivate:
		return AccessDecision{CanView: false, Reason: ReasonPrivate}
	case model.VisibilityFriends:
		return decideFriendGated(viewerID, friendStatus)
	case model.VisibilitySelectedFriends:
		// selected_friends 目前与 friends 使用相同的二元好友判定
		// 保留独立分支，后续按选中名单细化
		return decideFriendGated(viewerID, friendStatus)
	}
	// 未知可见性按private处理
	return AccessDecision{CanView: false, Reason: ReasonPrivate}
}

func decideFriendGated(viewerID *uint, friendStatus string) AccessDecision {
	if viewerID == nil {
		return AccessDecision{CanView: false, Reason: ReasonSignInRequired}
	}
	if friendStatus == model.FriendshipStatusAccepted {
		return AccessDecision{CanView: true, ViewType: ViewTypeFriend}
	}
	return AccessDecision{CanView: false, Reason: ReasonNotFriends}
}
