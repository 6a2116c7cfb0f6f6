package game

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	podiumdb "podiumapi/db"
)

// newTestService builds a Service over a fresh in-memory SQLite database so
// upsert, transaction and aggregation semantics run against real SQL.
func newTestService(t *testing.T, opts Options) *Service {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and shared.
	sqldb.SetMaxOpenConns(1)

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = bdb.Close() })

	require.NoError(t, podiumdb.CreateTables(context.Background(), bdb))

	return New(bdb, opts)
}
