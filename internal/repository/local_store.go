package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"quicksell-pos/internal/apperr"
	"quicksell-pos/internal/model"
)

// Blob keys of the on-device store. Each key holds the whole collection as
// one JSON document.
const (
	productsKey = "quicksell_inv_v1"
	salesKey    = "quicksell_sales_v1"
)

// LocalStore keeps the catalog and the sale log as JSON blobs in a single
// sqlite key/value table.
type LocalStore struct {
	mu   sync.Mutex
	conn *sql.DB
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore opens (or creates) the sqlite file at path. When seed is
// set and the catalog key is absent, the default products are written.
func NewLocalStore(ctx context.Context, path string, seed bool) (*LocalStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	// Single writer; every operation is a read-modify-write of a whole blob.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = FULL",
	} {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	s := &LocalStore{conn: conn}
	if seed {
		if err := s.seed(ctx); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *LocalStore) seed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []model.Product
	found, err := s.load(ctx, productsKey, &products)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return s.save(ctx, productsKey, model.DefaultProducts())
}

func (s *LocalStore) Name() string { return "local" }

func (s *LocalStore) Close() error { return s.conn.Close() }

func (s *LocalStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.products(ctx)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *LocalStore) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.products(ctx)
	if err != nil {
		return model.Product{}, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	for _, existing := range products {
		if existing.ID == p.ID {
			return model.Product{}, apperr.Validation("PRODUCT_ID_TAKEN", "product id already exists")
		}
		if existing.SKU == p.SKU {
			return model.Product{}, errSKUTaken
		}
	}

	if err := s.save(ctx, productsKey, append(products, p)); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (s *LocalStore) UpdateProduct(ctx context.Context, p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.products(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, existing := range products {
		if existing.ID == p.ID {
			idx = i
		} else if existing.SKU == p.SKU {
			return errSKUTaken
		}
	}
	if idx < 0 {
		return errProductNotFound
	}

	products[idx] = p
	return s.save(ctx, productsKey, products)
}

func (s *LocalStore) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.products(ctx)
	if err != nil {
		return err
	}

	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return errProductNotFound
	}
	return s.save(ctx, productsKey, kept)
}

func (s *LocalStore) ListSales(ctx context.Context) ([]model.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sales(ctx)
}

func (s *LocalStore) CreateSale(ctx context.Context, sale model.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales, err := s.sales(ctx)
	if err != nil {
		return err
	}
	for _, existing := range sales {
		if existing.ID == sale.ID {
			return apperr.Validation("SALE_ID_TAKEN", "sale id already exists")
		}
	}
	return s.save(ctx, salesKey, append(sales, sale))
}

func (s *LocalStore) DeleteSale(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales, err := s.sales(ctx)
	if err != nil {
		return err
	}

	kept := sales[:0]
	for _, sale := range sales {
		if sale.ID != id {
			kept = append(kept, sale)
		}
	}
	if len(kept) == len(sales) {
		return errSaleNotFound
	}
	return s.save(ctx, salesKey, kept)
}

func (s *LocalStore) products(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	if _, err := s.load(ctx, productsKey, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *LocalStore) sales(ctx context.Context) ([]model.Sale, error) {
	sales := []model.Sale{}
	if _, err := s.load(ctx, salesKey, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// load decodes the blob under key into out. A missing key is not an error.
func (s *LocalStore) load(ctx context.Context, key string, out interface{}) (bool, error) {
	var raw string
	err := s.conn.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperr.StoreUnavailable("read "+key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, apperr.StoreUnavailable("decode "+key, err)
	}
	return true, nil
}

func (s *LocalStore) save(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return apperr.New(apperr.KindInternal, "ENCODE_FAILED", "encode "+key).Wrap(err)
	}
	_, err = s.conn.ExecContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, string(raw))
	if err != nil {
		return apperr.StoreUnavailable("write "+key, err)
	}
	return nil
}
