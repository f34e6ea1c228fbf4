package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/repo"
)

func newBadgerRepo(t *testing.T) repo.TripRepo {
	t.Helper()
	db, err := repo.OpenBadger(repo.InMemoryBadgerConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repo.NewBadgerTripRepo(db.DB)
}

func TestBadgerTripRepo(t *testing.T) {
	testTripRepoContract(t, newBadgerRepo)
}

func TestOpenBadger_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cfg := repo.DefaultBadgerConfig(dir)
	db, err := repo.OpenBadger(cfg)
	require.NoError(t, err)
	created, err := repo.NewBadgerTripRepo(db.DB).Create(ctx, tripFixture())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = repo.OpenBadger(cfg)
	require.NoError(t, err)
	defer db.Close()

	got, err := repo.NewBadgerTripRepo(db.DB).GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Summary, got.Summary)
}

func TestOpenBadger_RequiresPath(t *testing.T) {
	_, err := repo.OpenBadger(repo.BadgerConfig{})

	assert.Error(t, err)
}
