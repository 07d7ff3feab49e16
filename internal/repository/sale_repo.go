package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"quicksell-pos/internal/apperr"
	"quicksell-pos/internal/model"
)

var errSaleNotFound = apperr.NotFound("SALE_NOT_FOUND", "sale not found")

// saleRow and saleItemRow are the relational layout of a sale. Items keep a
// full product snapshot and no foreign key to products, so deleting a
// product never touches past sales.
type saleRow struct {
	ID            string          `gorm:"type:varchar(64);primaryKey"`
	Timestamp     int64           `gorm:"not null;index"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric;not null"`
	Profit        decimal.Decimal `gorm:"type:numeric;not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	Discount      decimal.Decimal `gorm:"type:numeric;not null"`
	Items         []saleItemRow   `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
}

func (saleRow) TableName() string { return "sales" }

type saleItemRow struct {
	ID           uint            `gorm:"primaryKey"`
	SaleID       string          `gorm:"type:varchar(64);not null;index"`
	Position     int             `gorm:"not null"`
	ProductID    string          `gorm:"type:varchar(64);not null"`
	Name         string          `gorm:"type:varchar(255)"`
	SKU          string          `gorm:"type:varchar(50)"`
	Category     string          `gorm:"type:varchar(100)"`
	Company      string          `gorm:"type:varchar(100)"`
	CostPrice    decimal.Decimal `gorm:"type:numeric;not null"`
	SellingPrice decimal.Decimal `gorm:"type:numeric;not null"`
	StockQty     int
	ReorderLevel int
	Quantity     int             `gorm:"not null"`
	Discount     decimal.Decimal `gorm:"type:numeric;not null"`
}

func (saleItemRow) TableName() string { return "sale_items" }

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleStore {
	return &saleRepo{db}
}

func (r *saleRepo) ListSales(ctx context.Context) ([]model.Sale, error) {
	var rows []saleRow
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("timestamp DESC").
		Find(&rows).Error
	if err != nil {
		return nil, gormErr("list sales", err)
	}

	sales := make([]model.Sale, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, rowToSale(row))
	}
	return sales, nil
}

// CreateSale inserts the sale and its items in one statement group; gorm
// wraps association inserts in a transaction.
func (r *saleRepo) CreateSale(ctx context.Context, s model.Sale) error {
	row := saleToRow(s)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return gormErr("create sale", err)
	}
	return nil
}

func (r *saleRepo) DeleteSale(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&saleItemRow{}).Error; err != nil {
			return gormErr("delete sale items", err)
		}
		res := tx.Delete(&saleRow{}, "id = ?", id)
		if res.Error != nil {
			return gormErr("delete sale", res.Error)
		}
		if res.RowsAffected == 0 {
			return errSaleNotFound
		}
		return nil
	})
}

func saleToRow(s model.Sale) saleRow {
	row := saleRow{
		ID:            s.ID,
		Timestamp:     s.Timestamp,
		TotalAmount:   s.TotalAmount,
		Profit:        s.Profit,
		PaymentMethod: string(s.PaymentMethod),
		Discount:      s.Discount,
		Items:         make([]saleItemRow, 0, len(s.Items)),
	}
	for i, item := range s.Items {
		row.Items = append(row.Items, saleItemRow{
			SaleID:       s.ID,
			Position:     i,
			ProductID:    item.ID,
			Name:         item.Name,
			SKU:          item.SKU,
			Category:     item.Category,
			Company:      item.Company,
			CostPrice:    item.CostPrice,
			SellingPrice: item.SellingPrice,
			StockQty:     item.StockQty,
			ReorderLevel: item.ReorderLevel,
			Quantity:     item.Quantity,
			Discount:     item.Discount,
		})
	}
	return row
}

func rowToSale(row saleRow) model.Sale {
	s := model.Sale{
		ID:            row.ID,
		Timestamp:     row.Timestamp,
		TotalAmount:   row.TotalAmount,
		Profit:        row.Profit,
		PaymentMethod: model.PaymentMethod(row.PaymentMethod),
		Discount:      row.Discount,
		Items:         make([]model.CartItem, 0, len(row.Items)),
	}
	for _, item := range row.Items {
		s.Items = append(s.Items, model.CartItem{
			Product: model.Product{
				ID:           item.ProductID,
				Name:         item.Name,
				SKU:          item.SKU,
				Category:     item.Category,
				Company:      item.Company,
				CostPrice:    item.CostPrice,
				SellingPrice: item.SellingPrice,
				StockQty:     item.StockQty,
				ReorderLevel: item.ReorderLevel,
			},
			Quantity: item.Quantity,
			Discount: item.Discount,
		})
	}
	return s
}
