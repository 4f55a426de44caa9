package db

import (
	"github.com/pkg/errors"

	"github.com/hrygo/smartstudy/internal/profile"
	"github.com/hrygo/smartstudy/store"
	"github.com/hrygo/smartstudy/store/db/postgres"
	"github.com/hrygo/smartstudy/store/db/sqlite"
)

// NewDBDriver creates new db driver based on profile.
// The memory driver is an in-memory SQLite database.
func NewDBDriver(p *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch p.Driver {
	case profile.DriverSQLite, profile.DriverMemory:
		driver, err = sqlite.NewDB(p)
	case profile.DriverPostgres:
		driver, err = postgres.NewDB(p)
	default:
		return nil, errors.Errorf("unknown db driver %q: only 'sqlite', 'postgres' and 'memory' are supported", p.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
