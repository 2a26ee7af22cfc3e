// Package errs 定义跨层使用的哨兵错误，handler层据此映射响应码
package errs

import "errors"

var (
	// ErrNotFound 请求的记录不存在（内容、分享或好友关系）
	ErrNotFound = errors.New("not found")

	// ErrUnauthenticated 调用方未认证
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden 调用方不是操作目标的所有者或关系方
	ErrForbidden = errors.New("forbidden")

	// ErrSelfRequest 不能向自己发送好友请求
	ErrSelfRequest = errors.New("cannot befriend yourself")

	// ErrAlreadyFriends 双方已是好友
	ErrAlreadyFriends = errors.New("already friends")

	// ErrRequestAlreadySent 已有待处理的好友请求
	ErrRequestAlreadySent = errors.New("request already sent")

	// ErrRequestForbidden 被屏蔽，禁止发送好友请求
	ErrRequestForbidden = errors.New("request forbidden")

	// ErrUserExists 用户名或邮箱已被占用
	ErrUserExists = errors.New("user already exists")

	// ErrSlugExhausted slug生成重试次数耗尽（可重试的服务端错误）
	ErrSlugExhausted = errors.New("slug generation exhausted")

	// ErrDuplicateKey 存储层唯一约束冲突，并发写入时出现
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidInput 输入参数非法
	ErrInvalidInput = errors.New("invalid input")
)
