package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/nikhil8824/ration-shop/internal/datamodels/product"
)

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepo{db: db}
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	var p product.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, f product.Filter) ([]*product.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&product.Product{})

	if f.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ? OR tags LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 排序字段白名单，防止拼接任意列名
	sortBy := f.SortBy
	switch sortBy {
	case "name", "price", "discount", "created_at":
	default:
		sortBy = "created_at"
	}
	dir := "DESC"
	if f.SortOrder == "asc" {
		dir = "ASC"
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 20
	}

	var list []*product.Product
	if err := query.
		Order(sortBy + " " + dir).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *productRepo) Create(ctx context.Context, p *product.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) Update(ctx context.Context, p *product.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&product.Product{}, id).Error
}

// DecrementStock 单条条件更新完成"检查+扣减"，避免并发超卖。
// RowsAffected == 0 说明写入时库存已不足，由调用方回滚整个订单事务。
func (r *productRepo) DecrementStock(tx *gorm.DB, id, qty int64) (bool, error) {
	res := tx.Model(&product.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
