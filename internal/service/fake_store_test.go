package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"quicksell-pos/internal/apperr"
	"quicksell-pos/internal/model"
	"quicksell-pos/internal/ws"
)

var errDown = apperr.StoreUnavailable("fake", errors.New("connection refused"))

// fakeStore is an in-memory Store with per-operation failure injection.
type fakeStore struct {
	mu       sync.Mutex
	products map[string]model.Product
	order    []string
	sales    []model.Sale

	calls map[string]int
	fail  map[string]error
	// failUpdateOn makes the n-th UpdateProduct call (1-based) fail.
	failUpdateOn int
}

func newFakeStore(products ...model.Product) *fakeStore {
	s := &fakeStore{
		products: map[string]model.Product{},
		calls:    map[string]int{},
		fail:     map[string]error{},
	}
	for _, p := range products {
		s.products[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	return s
}

func (s *fakeStore) hit(op string) error {
	s.calls[op]++
	return s.fail[op]
}

func (s *fakeStore) totalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

func (s *fakeStore) product(id string) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id]
}

func (s *fakeStore) Name() string { return "fake" }

func (s *fakeStore) Close() error { return nil }

func (s *fakeStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("ListProducts"); err != nil {
		return nil, err
	}
	out := []model.Product{}
	for _, id := range s.order {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CreateProduct"); err != nil {
		return model.Product{}, err
	}
	if p.ID == "" {
		p.ID = "gen-" + p.SKU
	}
	s.products[p.ID] = p
	s.order = append(s.order, p.ID)
	return p, nil
}

func (s *fakeStore) UpdateProduct(ctx context.Context, p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("UpdateProduct"); err != nil {
		return err
	}
	if s.failUpdateOn > 0 && s.calls["UpdateProduct"] == s.failUpdateOn {
		return errDown
	}
	if _, ok := s.products[p.ID]; !ok {
		return apperr.NotFound("PRODUCT_NOT_FOUND", "product not found")
	}
	s.products[p.ID] = p
	return nil
}

func (s *fakeStore) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("DeleteProduct"); err != nil {
		return err
	}
	if _, ok := s.products[id]; !ok {
		return apperr.NotFound("PRODUCT_NOT_FOUND", "product not found")
	}
	delete(s.products, id)
	return nil
}

func (s *fakeStore) ListSales(ctx context.Context) ([]model.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("ListSales"); err != nil {
		return nil, err
	}
	return append([]model.Sale(nil), s.sales...), nil
}

func (s *fakeStore) CreateSale(ctx context.Context, sale model.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CreateSale"); err != nil {
		return err
	}
	s.sales = append(s.sales, sale)
	return nil
}

func (s *fakeStore) DeleteSale(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("DeleteSale"); err != nil {
		return err
	}
	for i, sale := range s.sales {
		if sale.ID == id {
			s.sales = append(s.sales[:i], s.sales[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("SALE_NOT_FOUND", "sale not found")
}

// recorder captures published events.
type recorder struct {
	mu     sync.Mutex
	events []ws.Event
}

func (r *recorder) Publish(e ws.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, string(e.Action))
	}
	sort.Strings(out)
	return out
}
