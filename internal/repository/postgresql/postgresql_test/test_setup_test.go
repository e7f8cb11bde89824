package postgresql_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// newTestDatabase connects to TEST_DATABASE_URL, applies the schema and
// empties every table. The test is skipped when the variable is unset.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "0001_dispatch.up.sql"))
	require.NoError(t, err)
	_, err = db.Exec(ctx, string(schema))
	require.NoError(t, err)

	_, err = db.Exec(ctx, "TRUNCATE TABLE bonuses, loads, drivers")
	require.NoError(t, err)

	return db
}
