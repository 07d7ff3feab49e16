package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicksell-pos/internal/model"
	"quicksell-pos/internal/repository"
)

func TestSeedProducts(t *testing.T) {
	ctx := context.Background()

	newStore := func(t *testing.T) *repository.LocalStore {
		s, err := repository.NewLocalStore(ctx, filepath.Join(t.TempDir(), "seed.db"), false)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}

	t.Run("Should create every default product in an empty store", func(t *testing.T) {
		s := newStore(t)

		created, updated, skipped, err := seedProducts(ctx, s, model.DefaultProducts(), false, false)
		require.NoError(t, err)
		assert.Equal(t, 8, created)
		assert.Zero(t, updated)
		assert.Zero(t, skipped)

		products, err := s.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 8)
	})

	t.Run("Should skip existing products unless overwriting", func(t *testing.T) {
		s := newStore(t)
		_, _, _, err := seedProducts(ctx, s, model.DefaultProducts(), false, false)
		require.NoError(t, err)

		p := model.DefaultProducts()[0]
		p.StockQty = 0
		require.NoError(t, s.UpdateProduct(ctx, p))

		created, _, skipped, err := seedProducts(ctx, s, model.DefaultProducts(), false, false)
		require.NoError(t, err)
		assert.Zero(t, created)
		assert.Equal(t, 8, skipped)

		_, updated, _, err := seedProducts(ctx, s, model.DefaultProducts(), true, false)
		require.NoError(t, err)
		assert.Equal(t, 8, updated)

		products, err := s.ListProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 12, products[0].StockQty)
	})

	t.Run("Should not write on a dry run", func(t *testing.T) {
		s := newStore(t)

		created, _, _, err := seedProducts(ctx, s, model.DefaultProducts(), false, true)
		require.NoError(t, err)
		assert.Equal(t, 8, created)

		products, err := s.ListProducts(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}
