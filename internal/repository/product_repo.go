package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"quicksell-pos/internal/apperr"
	"quicksell-pos/internal/model"
)

var (
	errProductNotFound = apperr.NotFound("PRODUCT_NOT_FOUND", "product not found")
	errSKUTaken        = apperr.Validation("SKU_TAKEN", "SKU already exists")
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) CatalogStore {
	return &productRepo{db}
}

func (r *productRepo) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error; err != nil {
		return nil, gormErr("list products", err)
	}
	return products, nil
}

func (r *productRepo) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.Product{}, errSKUTaken.Wrap(err)
		}
		return model.Product{}, gormErr("create product", err)
	}
	return p, nil
}

func (r *productRepo) UpdateProduct(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", p.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&p)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return errSKUTaken.Wrap(res.Error)
		}
		return gormErr("update product", res.Error)
	}
	if res.RowsAffected == 0 {
		return errProductNotFound
	}
	return nil
}

func (r *productRepo) DeleteProduct(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return gormErr("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return errProductNotFound
	}
	return nil
}

// gormErr maps driver failures onto the store error taxonomy.
func gormErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("RECORD_NOT_FOUND", op+": record not found").Wrap(err)
	}
	return apperr.StoreUnavailable(op, err)
}
