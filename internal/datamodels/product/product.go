package product

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// 商品分类，与移动端筛选项保持一致
const (
	CategoryGrains       = "grains"
	CategoryPulses       = "pulses"
	CategoryFlour        = "flour"
	CategoryOils         = "oils"
	CategorySpices       = "spices"
	CategoryPackagedFood = "packaged_food"
	CategoryCleaning     = "cleaning_items"
	CategoryPersonalCare = "personal_care"
	CategoryBeverages    = "beverages"
	CategorySnacks       = "snacks"
	CategoryOthers       = "others"
)

// Categories 全部合法分类（顺序即移动端展示顺序）
var Categories = []string{
	CategoryGrains, CategoryPulses, CategoryFlour, CategoryOils,
	CategorySpices, CategoryPackagedFood, CategoryCleaning,
	CategoryPersonalCare, CategoryBeverages, CategorySnacks, CategoryOthers,
}

// Units 商品计量单位
var Units = []string{"kg", "g", "l", "ml", "piece", "packet", "bottle", "box"}

// Product 商品模型
type Product struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;index" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Discount    float64   `gorm:"not null;default:0" json:"discount"` // 折扣百分比 0-100
	Stock       int64     `gorm:"not null" json:"stock"`
	IsAvailable bool      `gorm:"not null;default:true;index" json:"isAvailable"`
	Unit        string    `gorm:"size:16;not null" json:"unit"`
	Category    string    `gorm:"size:32;not null;index" json:"category"`
	Tags        string    `gorm:"size:255" json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DiscountedPrice 折后单价，下单时按这个价格快照
func (p *Product) DiscountedPrice() float64 {
	return p.Price * (1 - p.Discount/100)
}

// ValidCategory 校验分类取值
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ValidUnit 校验单位取值
func ValidUnit(u string) bool {
	for _, v := range Units {
		if v == u {
			return true
		}
	}
	return false
}

// Filter 商品列表查询条件
type Filter struct {
	Category      string
	MinPrice      *float64
	MaxPrice      *float64
	Search        string
	OnlyAvailable bool
	SortBy        string // name / price / created_at / discount
	SortOrder     string // asc / desc
	Page          int
	Limit         int
}

// Repository 商品仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, f Filter) ([]*Product, int64, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
	// DecrementStock 条件扣减库存：stock = stock - qty WHERE stock >= qty。
	// 返回是否扣减成功（失败说明并发下库存已不足）。必须在调用方事务 tx 内执行。
	DecrementStock(tx *gorm.DB, id, qty int64) (bool, error)
}
