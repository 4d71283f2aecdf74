package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"gorm.io/gorm"

	"github.com/nikhil8824/ration-shop/internal/auth"
	"github.com/nikhil8824/ration-shop/internal/config"
	"github.com/nikhil8824/ration-shop/internal/datamodels/user"
	"github.com/nikhil8824/ration-shop/internal/pagination"
)

// 认证相关错误
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDisabled       = errors.New("account is deactivated")
	ErrEmailTaken         = errors.New("email already registered")
)

// UserService 用户注册、登录与后台管理
type UserService struct {
	repo user.Repository
	jwt  *config.JWTConfig
}

// NewUserService 创建用户服务
func NewUserService(repo user.Repository, jwt *config.JWTConfig) *UserService {
	return &UserService{repo: repo, jwt: jwt}
}

func hashPassword(raw, salt string) string {
	h := sha256.Sum256([]byte(raw + salt))
	return hex.EncodeToString(h[:])
}

func newSalt() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// RegisterInput 注册输入
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Register 注册新用户，角色固定为 customer
func (s *UserService) Register(ctx context.Context, in *RegisterInput) (*user.User, error) {
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	u := &user.User{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Role:     user.RoleCustomer,
		Salt:     newSalt(),
		IsActive: true,
	}
	u.Password = hashPassword(in.Password, u.Salt)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login 登录并返回 JWT
func (s *UserService) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if hashPassword(password, u.Salt) != u.Password {
		return "", nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return "", nil, ErrUserDisabled
	}
	token, err := auth.GenerateToken(s.jwt, u.ID, u.Email, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// GetByID 查询用户
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// List 后台分页查询用户
func (s *UserService) List(ctx context.Context, page, limit int) ([]*user.User, pagination.Page, error) {
	if page < 1 {
		page = 1
	}
	limit = pagination.ClampLimit(limit, 20, 50)
	list, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return list, pagination.New(page, limit, total), nil
}

// SetActive 启用/停用用户（后台）
func (s *UserService) SetActive(ctx context.Context, id int64, active bool) (*user.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.IsActive = active
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Stats 用户统计（后台）
func (s *UserService) Stats(ctx context.Context) (*user.Stats, error) {
	return s.repo.Stats(ctx)
}
