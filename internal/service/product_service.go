package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nikhil8824/ration-shop/internal/datamodels/product"
	"github.com/nikhil8824/ration-shop/internal/pagination"
)

// ProductService 商品目录服务
type ProductService struct {
	repo product.Repository
}

// NewProductService 创建商品服务
func NewProductService(repo product.Repository) *ProductService {
	return &ProductService{repo: repo}
}

// List 分页查询商品，limit 限制在 1-100
func (s *ProductService) List(ctx context.Context, f product.Filter) ([]*product.Product, pagination.Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	f.Limit = pagination.ClampLimit(f.Limit, 20, 100)

	list, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return list, pagination.New(f.Page, f.Limit, total), nil
}

// GetByID 查询单个商品
func (s *ProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductNotFoundError{ProductID: id}
		}
		return nil, err
	}
	return p, nil
}

// Create 新建商品（后台）
func (s *ProductService) Create(ctx context.Context, p *product.Product) error {
	return s.repo.Create(ctx, p)
}

// Update 更新商品（后台）
func (s *ProductService) Update(ctx context.Context, p *product.Product) error {
	return s.repo.Update(ctx, p)
}

// Delete 删除商品（后台）
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
