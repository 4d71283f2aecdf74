package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/nikhil8824/ration-shop/internal/datamodels/user"
)

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *user.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) Update(ctx context.Context, u *user.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepo) List(ctx context.Context, page, limit int) ([]*user.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&user.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var list []*user.User
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *userRepo) Stats(ctx context.Context) (*user.Stats, error) {
	s := &user.Stats{}
	m := r.db.WithContext(ctx).Model(&user.User{})
	if err := m.Count(&s.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&user.User{}).
		Where("is_active = ?", true).Count(&s.ActiveUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&user.User{}).
		Where("role = ?", user.RoleCustomer).Count(&s.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&user.User{}).
		Where("role = ?", user.RoleAdmin).Count(&s.TotalAdmins).Error; err != nil {
		return nil, err
	}
	return s, nil
}
