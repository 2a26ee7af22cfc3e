package service

import (
	"errors"
	"fmt"
	"strings"

	"pinory-system/internal/errs"
	"pinory-system/internal/model"
	"pinory-system/internal/repository"
	"pinory-system/pkg/jwt"
	"pinory-system/pkg/password"
)

// UserService 用户服务（身份提供方：注册/登录/签发token）
type UserService struct {
	repo       repository.UserRepository
	jwtService *jwt.JWTService
}

// NewUserService 创建UserService实例
func NewUserService(repo repository.UserRepository, jwtService *jwt.JWTService) *UserService {
	return &UserService{repo: repo, jwtService: jwtService}
}

// Register 注册
func (s *UserService) Register(username, email, plainPassword string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || plainPassword == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", errs.ErrInvalidInput)
	}
	// 用户名和邮箱查重，占用时返回冲突而不是落库后报唯一索引错误
	if err := s.checkIdentifierFree(username); err != nil {
		return nil, "", err
	}
	if email != "" {
		if err := s.checkIdentifierFree(email); err != nil {
			return nil, "", err
		}
	}
	// 密码哈希
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, "", err
	}
	// 注册即签发token，用户ID作为subject
	token, err := s.jwtService.GenerateToken(
		fmt.Sprintf("%d", user.ID),
		map[string]interface{}{"username": user.Username},
	)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// checkIdentifierFree 确认用户名或邮箱未被占用
func (s *UserService) checkIdentifierFree(identifier string) error {
	_, err := s.repo.GetByUsernameOrEmail(identifier)
	if err == nil {
		return errs.ErrUserExists
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	return nil
}

// Login 登录
func (s *UserService) Login(identifier, plainPassword string) (*model.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plainPassword == "" {
		return nil, "", fmt.Errorf("%w: identifier and password are required", errs.ErrInvalidInput)
	}
	u, err := s.repo.GetByUsernameOrEmail(identifier)
	if err != nil {
		return nil, "", errs.ErrUnauthenticated
	}
	if !password.Verify(plainPassword, u.PasswordHash) {
		return nil, "", errs.ErrUnauthenticated
	}
	token, err := s.jwtService.GenerateToken(
		fmt.Sprintf("%d", u.ID),
		map[string]interface{}{"username": u.Username},
	)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// GetByID 按ID查询用户
func (s *UserService) GetByID(id uint) (*model.User, error) {
	return s.repo.GetByID(id)
}
