package lob

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Shared PostgreSQL container for all integration tests in this package.
// Unit tests (version parsing, error mapping, config) run even when no
// container could be started; integration tests skip instead of failing.
var (
	sharedTestConfig *Config
	containerErr     error
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("pglo_test"),
		postgres.WithUsername("pglo_test"),
		postgres.WithPassword("pglo_test"),
		testcontainers.WithWaitStrategyAndDeadline(2*time.Minute,
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		),
	)
	if err != nil {
		containerErr = fmt.Errorf("failed to start postgres container: %w", err)
		os.Exit(m.Run())
	}

	host, err := container.Host(ctx)
	if err != nil {
		containerErr = fmt.Errorf("failed to get container host: %w", err)
		_ = container.Terminate(ctx)
		os.Exit(m.Run())
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		containerErr = fmt.Errorf("failed to get container port: %w", err)
		_ = container.Terminate(ctx)
		os.Exit(m.Run())
	}

	sharedTestConfig = &Config{
		Host:     host,
		Port:     port.Int(),
		Database: "pglo_test",
		User:     "pglo_test",
		Password: "pglo_test",
		SSLMode:  "disable",
	}

	exitCode := m.Run()

	if err := container.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to terminate container: %v\n", err)
	}

	os.Exit(exitCode)
}

// setupTestStore connects a Store to the shared container, skipping the test
// when no container is available (e.g. no Docker on the host).
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	if sharedTestConfig == nil {
		t.Skipf("postgres container unavailable: %v", containerErr)
	}

	cfg := *sharedTestConfig
	store, err := NewStore(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("failed to connect to test postgres: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store
}
