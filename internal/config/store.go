package config

import (
	"fmt"
	"strings"
	"time"
)

// Backend selects the persistence implementation at startup.
type Backend string

const (
	BackendAuto     Backend = "auto"
	BackendRemote   Backend = "remote"
	BackendLocal    Backend = "local"
	BackendPostgres Backend = "postgres"
)

func (b *Backend) UnmarshalText(text []byte) error {
	switch v := Backend(strings.ToLower(string(text))); v {
	case BackendAuto, BackendRemote, BackendLocal, BackendPostgres:
		*b = v
		return nil
	default:
		return fmt.Errorf("unknown store backend: %s", text)
	}
}

type Store struct {
	Backend       Backend       `env:"STORE_BACKEND" envDefault:"auto"`
	ServerURL     string        `env:"SERVER_URL"`
	RemoteTimeout time.Duration `env:"REMOTE_TIMEOUT" envDefault:"5s"`
	LocalPath     string        `env:"LOCAL_PATH" envDefault:"quicksell.db"`
	SeedDefaults  bool          `env:"SEED_DEFAULTS" envDefault:"true"`
}
