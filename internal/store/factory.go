package store

import (
	"fmt"

	"github.com/jask/packit/internal/backend"
	"github.com/jask/packit/internal/config"
	"github.com/jask/packit/internal/database"
)

var (
	_ Store = (*backend.Client)(nil)
	_ Store = (*SQLite)(nil)
)

// Open returns the store selected by cfg.Store.Driver and a function that
// releases it.
func Open(cfg config.Config, client *backend.Client) (Store, func() error, error) {
	switch cfg.Store.Driver {
	case config.DriverRemote, "":
		if client == nil {
			return nil, nil, fmt.Errorf("store: remote driver needs a backend client")
		}
		return client, func() error { return nil }, nil
	case config.DriverSQLite:
		db, err := database.OpenMigrated(cfg.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open local store: %w", err)
		}
		return NewSQLite(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("store: unknown driver %q", cfg.Store.Driver)
	}
}
