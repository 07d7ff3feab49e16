package repository

import (
	"context"
	"log/slog"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicksell-pos/internal/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	t.Run("Should use the local store in auto mode without a server url", func(t *testing.T) {
		s, err := Open(ctx, config.Store{
			Backend:   config.BackendAuto,
			LocalPath: filepath.Join(t.TempDir(), "pos.db"),
		}, config.Postgres{}, logger)
		require.NoError(t, err)
		defer s.Close()

		assert.Equal(t, "local", s.Name())
	})

	t.Run("Should use the remote store in auto mode when it answers", func(t *testing.T) {
		baseURL, _ := startFakeAPI(t)

		s, err := Open(ctx, config.Store{
			Backend:       config.BackendAuto,
			ServerURL:     baseURL,
			RemoteTimeout: time.Second,
			LocalPath:     filepath.Join(t.TempDir(), "pos.db"),
		}, config.Postgres{}, logger)
		require.NoError(t, err)
		defer s.Close()

		assert.Equal(t, "remote", s.Name())
	})

	t.Run("Should fall back to the local store when the remote is unreachable", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := ln.Addr().String()
		require.NoError(t, ln.Close())

		s, err := Open(ctx, config.Store{
			Backend:       config.BackendAuto,
			ServerURL:     "http://" + addr,
			RemoteTimeout: 500 * time.Millisecond,
			LocalPath:     filepath.Join(t.TempDir(), "pos.db"),
			SeedDefaults:  true,
		}, config.Postgres{}, logger)
		require.NoError(t, err)
		defer s.Close()

		assert.Equal(t, "local", s.Name())
		products, err := s.ListProducts(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, products)
	})

	t.Run("Should not probe when the remote backend is forced", func(t *testing.T) {
		s, err := Open(ctx, config.Store{Backend: config.BackendRemote, ServerURL: "http://127.0.0.1:1"}, config.Postgres{}, logger)
		require.NoError(t, err)
		assert.Equal(t, "remote", s.Name())
	})

	t.Run("Should reject an unknown backend", func(t *testing.T) {
		_, err := Open(ctx, config.Store{Backend: "ftp"}, config.Postgres{}, logger)
		assert.Error(t, err)
	})
}
