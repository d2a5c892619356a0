package likes

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDB records executed statements; only Exec is exercised here.
type fakeDB struct {
	execs [][]any
	fail  error
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.fail != nil {
		return pgconn.CommandTag{}, f.fail
	}
	f.execs = append(f.execs, args)
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("unexpected Query")
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("unexpected QueryRow")
}

func TestReconciler_FoldsDeltas(t *testing.T) {
	ctx := context.Background()
	c, _ := testCounter(t)
	db := &fakeDB{}

	require.NoError(t, c.Incr(ctx, 7))
	require.NoError(t, c.Incr(ctx, 7))
	require.NoError(t, c.Decr(ctx, 8))

	require.NoError(t, NewReconciler(db, c).Run(ctx))

	require.Len(t, db.execs, 2)
	byProject := map[int64]int64{}
	for _, args := range db.execs {
		byProject[args[1].(int64)] = args[0].(int64)
	}
	assert.Equal(t, int64(2), byProject[7])
	assert.Equal(t, int64(-1), byProject[8])

	// everything drained
	delta, err := c.PendingDelta(ctx, 7)
	require.NoError(t, err)
	assert.Zero(t, delta)
	dirty, err := c.TakeDirty(ctx)
	require.NoError(t, err)
	assert.Empty(t, dirty)
}

func TestReconciler_RequeuesOnFailure(t *testing.T) {
	ctx := context.Background()
	c, _ := testCounter(t)
	db := &fakeDB{fail: errors.New("db down")}

	require.NoError(t, c.Incr(ctx, 7))

	err := NewReconciler(db, c).Run(ctx)
	require.Error(t, err)

	// the delta went back, nothing was lost
	delta, derr := c.PendingDelta(ctx, 7)
	require.NoError(t, derr)
	assert.Equal(t, int64(1), delta)
}
