package pg

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/padel-tracker/padel/shared/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var storage *Storage

func TestMain(m *testing.M) {
	ctx := context.Background()
	var container *postgres.PostgresContainer
	storage, container = mustSetup(ctx)

	exitCode := m.Run()
	teardown(ctx, storage, container)
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *postgres.PostgresContainer) {
	dbName := "padel"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithInitScripts(filepath.Join("migrations", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// the server restarts once after running init scripts
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}
	pgCfg, err := containerPg(ctx, container)
	if err != nil {
		log.Fatalf("failed to read container address: %s", err)
	}
	pgCfg.User, pgCfg.Password, pgCfg.Dbname = dbUser, dbPassword, dbName

	storage, err := New(ctx, &config.Config{Private: config.Private{Pg: pgCfg}})
	if err != nil {
		log.Fatalf("failed to connect to postgres container: %s", err)
	}
	return storage, container
}

// containerPg returns the host and mapped port of the running container
func containerPg(ctx context.Context, container *postgres.PostgresContainer) (config.Pg, error) {
	mapped, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return config.Pg{}, err
	}
	port, err := strconv.Atoi(mapped.Port())
	if err != nil {
		return config.Pg{}, err
	}
	host, err := container.Host(ctx)
	if err != nil {
		return config.Pg{}, err
	}
	return config.Pg{Host: host, Port: port}, nil
}

func teardown(ctx context.Context, storage *Storage, container *postgres.PostgresContainer) {
	if err := storage.Cleanup(); err != nil {
		log.Printf("failed to close storage connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}
