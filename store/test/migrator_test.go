package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/smartstudy/store"
)

func TestMigrateRecordsSchemaVersion(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	current, err := ts.GetCurrentSchemaVersion()
	require.NoError(t, err)
	require.Equal(t, "0.3.1", current)

	recorded, err := ts.GetSchemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, current, recorded)

	initialized, err := ts.GetDriver().IsInitialized(ctx)
	require.NoError(t, err)
	require.True(t, initialized)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	require.NoError(t, ts.Migrate(ctx))
	require.NoError(t, ts.Migrate(ctx))
}

func TestMigrateAppliesPendingMigrations(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	_, err := ts.UpsertKV(ctx, &store.UpsertKV{Key: store.SchemaVersionKey, Value: "0.3.0"})
	require.NoError(t, err)

	require.NoError(t, ts.Migrate(ctx))

	recorded, err := ts.GetSchemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, "0.3.1", recorded)
}

func TestMigrateRefusesDowngrade(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	_, err := ts.UpsertKV(ctx, &store.UpsertKV{Key: store.SchemaVersionKey, Value: "9.0.0"})
	require.NoError(t, err)

	err = ts.Migrate(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot downgrade")
}

func TestDemoSeed(t *testing.T) {
	ctx := context.Background()
	ts := NewDemoTestingStore(ctx, t)

	userID := "user1"
	list, err := ts.ListAudioRecordings(ctx, &store.FindAudioRecording{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, list, 5)
	require.Equal(t, "Derivadas - Regras Básicas", list[0].Title)
	require.Equal(t, "Segunda Guerra Mundial", list[4].Title)

	// Seeding twice keeps a single copy.
	require.NoError(t, ts.Migrate(ctx))
	list, err = ts.ListAudioRecordings(ctx, &store.FindAudioRecording{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, list, 5)
}
