//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const postgresImage = "postgres:16-alpine"

// PostgresContainer is a running Postgres server with an open handle.
type PostgresContainer struct {
	Container testcontainers.Container
	URL       string
	DB        *sql.DB
}

// NewPostgresContainer starts Postgres and fails the test if it cannot be
// reached. Callers own the container and call Terminate when done.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("consentflow"),
		tcpostgres.WithUsername("consentflow"),
		tcpostgres.WithPassword("consentflow"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "start postgres container")

	pc := &PostgresContainer{Container: container}
	pc.URL, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		pc.Terminate(ctx)
		require.NoError(t, err, "postgres connection string")
	}

	pc.DB, err = sql.Open("postgres", pc.URL)
	if err == nil {
		err = pc.DB.PingContext(ctx)
	}
	if err != nil {
		pc.Terminate(ctx)
		require.NoError(t, err, "connect postgres")
	}
	return pc
}

// TruncateTables empties the named tables between tests.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if _, err := p.DB.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// Terminate closes the handle and stops the container.
func (p *PostgresContainer) Terminate(ctx context.Context) {
	if p.DB != nil {
		_ = p.DB.Close()
	}
	_ = p.Container.Terminate(ctx)
}
