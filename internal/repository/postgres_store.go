package repository

import (
	"fmt"

	"gorm.io/gorm"

	"quicksell-pos/internal/model"
)

// PostgresStore is the server-side backend built on gorm.
type PostgresStore struct {
	CatalogStore
	SaleStore
	db *gorm.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{
		CatalogStore: NewProductRepo(db),
		SaleStore:    NewSaleRepo(db),
		db:           db,
	}
}

// AutoMigrate creates or updates the tables used by the store.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Product{}, &saleRow{}, &saleItemRow{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) Name() string { return "postgres" }

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
