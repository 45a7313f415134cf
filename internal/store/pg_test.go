package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the PostgreSQL test database when one is requested.
// TEST_DB_HOST points at an external database; TEST_PG_CONTAINER=1 starts a container.
// Without either, the PostgreSQL suite is skipped and only the memory store is exercised.
func TestMain(m *testing.M) {
	ctx := context.Background()

	dbHost := os.Getenv("TEST_DB_HOST")
	useContainer := os.Getenv("TEST_PG_CONTAINER") == "1"

	if dbHost != "" || useContainer {
		if err := setupTestDatabase(ctx, dbHost); err != nil {
			fmt.Printf("Failed to set up test database: %v\n", err)
			terminateContainer(ctx)
			os.Exit(1)
		}
	}

	code := m.Run()

	terminateContainer(ctx)
	os.Exit(code)
}

func setupTestDatabase(ctx context.Context, dbHost string) error {
	var dsn string
	var err error

	if dbHost != "" {
		dbPort := envOr("TEST_DB_PORT", "5432")
		dbUser := envOr("TEST_DB_USER", "postgres")
		dbPassword := envOr("TEST_DB_PASSWORD", "postgres")
		dbName := envOr("TEST_DB_NAME", "test_db")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName)

		fmt.Printf("Using external database: %s:%s/%s\n", dbHost, dbPort, dbName)
	} else {
		pgContainer, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			return fmt.Errorf("failed to start PostgreSQL container: %w", err)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			return fmt.Errorf("failed to get connection string: %w", err)
		}

		fmt.Printf("Started PostgreSQL container\n")
	}

	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return AutoMigrate(testDB)
}

func terminateContainer(ctx context.Context) {
	if pgContainer == nil {
		return
	}
	if err := pgContainer.Terminate(ctx); err != nil {
		fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// initPGTestDB wraps each test in a transaction that is rolled back on cleanup
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

// cleanupPGTestDB is a no-op; the t.Cleanup rollback restores the database
func cleanupPGTestDB(t *testing.T) {}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	if testDB == nil {
		t.Skip("Skipping PostgreSQL store tests: TEST_DB_HOST or TEST_PG_CONTAINER=1 not set")
	}

	RunStoreTests(t, initPGTestDB, cleanupPGTestDB)
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	require.Equal(t, 10, open)
	require.Equal(t, 2, idle)
	require.Equal(t, 30*time.Minute, lifetime)
	require.Equal(t, 5*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(3, 8, time.Minute, time.Minute)
	require.Equal(t, 3, open)
	require.Equal(t, 3, idle)
}
