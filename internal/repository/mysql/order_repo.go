package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nikhil8824/ration-shop/internal/datamodels/order"
)

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, o *order.Order) error {
	// Items 随订单一起写入（gorm 关联）
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context, f order.Filter) ([]*order.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&order.Order{})
	if f.UserID > 0 {
		query = query.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 10
	}

	var list []*order.Order
	if err := query.
		Preload("Items").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, status string, deliveredAt *time.Time) (*order.Order, error) {
	var existing order.Order
	if err := r.db.WithContext(ctx).Select("id").First(&existing, id).Error; err != nil {
		return nil, err
	}

	// 状态未变化时 MySQL 返回 0 行受影响，所以不能用 RowsAffected 判断存在性
	updates := map[string]interface{}{"status": status}
	if deliveredAt != nil {
		updates["delivered_at"] = *deliveredAt
	}
	if err := r.db.WithContext(ctx).Model(&order.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *orderRepo) Stats(ctx context.Context) (*order.Stats, error) {
	stats := &order.Stats{}

	if err := r.db.WithContext(ctx).Model(&order.Order{}).
		Select("status, COUNT(*) AS count, SUM(total_amount) AS total_amount").
		Group("status").
		Scan(&stats.StatusStats).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&order.Order{}).
		Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}

	// 已送达订单的总营收，没有数据时 SUM 为 NULL，用 COALESCE 归零
	if err := r.db.WithContext(ctx).Model(&order.Order{}).
		Where("status = ?", order.StatusDelivered).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(5).
		Find(&stats.RecentOrders).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
