package user

import (
	"context"
	"time"
)

// 用户角色
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User 用户模型
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"` // 已加密密码
	Salt      string    `gorm:"size:64" json:"-"`
	Phone     string    `gorm:"size:16" json:"phone"`
	Role      string    `gorm:"size:16;not null;default:customer" json:"role"`
	Street    string    `gorm:"size:255" json:"street"`
	City      string    `gorm:"size:64" json:"city"`
	State     string    `gorm:"size:64" json:"state"`
	Pincode   string    `gorm:"size:6" json:"pincode"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Stats 用户统计（后台总览）
type Stats struct {
	TotalUsers     int64 `json:"totalUsers"`
	ActiveUsers    int64 `json:"activeUsers"`
	TotalCustomers int64 `json:"totalCustomers"`
	TotalAdmins    int64 `json:"totalAdmins"`
}

// Repository 用户仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	List(ctx context.Context, page, limit int) ([]*User, int64, error)
	Stats(ctx context.Context) (*Stats, error)
}
