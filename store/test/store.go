package test

import (
	"context"
	"os"
	"testing"

	"github.com/hrygo/smartstudy/internal/profile"
	"github.com/hrygo/smartstudy/store"
	"github.com/hrygo/smartstudy/store/db"
)

// NewTestingStore returns a migrated store. It runs on an in-memory SQLite
// database unless DRIVER=postgres, in which case POSTGRES_TEST_DSN must point
// to an empty database.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	t.Helper()
	return newTestingStoreWithMode(ctx, t, "dev")
}

// NewDemoTestingStore is NewTestingStore in demo mode, with seed data applied.
func NewDemoTestingStore(ctx context.Context, t *testing.T) *store.Store {
	t.Helper()
	return newTestingStoreWithMode(ctx, t, "demo")
}

func newTestingStoreWithMode(ctx context.Context, t *testing.T, mode string) *store.Store {
	t.Helper()

	p := getTestingProfile(t, mode)
	dbDriver, err := db.NewDBDriver(p)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	s := store.New(dbDriver, p)
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func getTestingProfile(t *testing.T, mode string) *profile.Profile {
	t.Helper()

	p := &profile.Profile{
		Mode:    mode,
		Data:    t.TempDir(),
		Driver:  getDriverFromEnv(),
		Version: "test",
	}
	switch p.Driver {
	case profile.DriverPostgres:
		p.DSN = os.Getenv("POSTGRES_TEST_DSN")
		if p.DSN == "" {
			t.Skip("POSTGRES_TEST_DSN is not set")
		}
	default:
		p.Driver = profile.DriverMemory
	}
	return p
}

func getDriverFromEnv() string {
	return os.Getenv("DRIVER")
}
