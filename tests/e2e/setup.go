//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"warehouse-booking/cmd/bootstrap"
	"warehouse-booking/cmd/bootstrap/components"
	"warehouse-booking/internal/infra/db"
	"warehouse-booking/internal/pkg/config"
	"warehouse-booking/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "booking"
	pgPassword = "booking-e2e"
	pgPort     = nat.Port("5432/tcp")
)

// one postgres per test binary; each suite gets its own database inside it
var (
	pgOnce sync.Once
	pgEnv  *postgresEnv
	pgErr  error
)

// the container itself is reaped by ryuk when the test binary exits
type postgresEnv struct {
	host string
	port nat.Port
}

func (e *postgresEnv) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		pgUser, pgPassword, e.host, e.port.Port(), database)
}

func (e *postgresEnv) dbConfig(database string) config.DBConfig {
	return config.DBConfig{
		Host:     e.host,
		Port:     e.port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   database,
		SSLMode:  "disable",
		TimeZone: "UTC",
		// concurrent admission tests open several serializable transactions at once
		MaxConns: 20,
	}
}

func sharedPostgres(t *testing.T) *postgresEnv {
	t.Helper()

	pgOnce.Do(func() {
		pgEnv, pgErr = startPostgres()
	})
	require.NoError(t, pgErr, "failed to start postgres container")
	return pgEnv
}

func startPostgres() (*postgresEnv, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{string(pgPort)},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
			// durability off: the data dies with the container anyway
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
				"-c", "log_statement=none",
			},
			WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					pgUser, pgPassword, host, port.Port())
			}).WithStartupTimeout(time.Minute),
			Labels: map[string]string{"purpose": "warehouse-booking-e2e"},
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}

	host, err := c.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := c.MappedPort(ctx, pgPort)
	if err != nil {
		return nil, err
	}
	return &postgresEnv{host: host, port: port}, nil
}

// createDatabase makes a fresh migrated and seeded database and drops it on cleanup.
func (e *postgresEnv) createDatabase(t *testing.T) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()

	name := "booking_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, e.dsn("postgres"))
	require.NoError(t, err, "failed to connect as admin")
	defer admin.Close()

	// CREATE DATABASE collides on template1 when suites start together
	err = retry(ctx, 5, func() error {
		_, err := admin.Exec(ctx, "CREATE DATABASE "+name)
		return err
	})
	require.NoError(t, err, "failed to create database %s", name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, e.dsn("postgres"))
		if err != nil {
			slog.Warn("drop database skipped", "database", name, "error", err)
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("drop database failed", "database", name, "error", err)
		}
	})

	dbCfg := e.dbConfig(name)
	pool, closePool, err := db.Connect(dbCfg)
	require.NoError(t, err, "failed to open pool")
	t.Cleanup(closePool)

	require.NoError(t, db.Migrate(ctx, pool), "failed to migrate")
	require.NoError(t, dbtest.SeedReferenceData(pool), "failed to seed reference data")
	return pool, dbCfg
}

func retry(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for i := range attempts {
		if err = fn(); err == nil {
			return nil
		}
		delay := min(time.Duration(i+1)*500*time.Millisecond, 3*time.Second)
		slog.Warn("retrying", "attempt", i+1, "delay", delay, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}

// startApp boots the HTTP graph against pool. The relay and batch graphs are not started.
func startApp(t *testing.T, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	t.Helper()

	var router *gin.Engine
	app := fx.New(
		fx.Supply(pool, cfg),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.ConfigSections,
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "failed to start app")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("app stop failed", "error", err)
		}
	})
	return router
}

// SharedSuite gives every e2e suite a router wired to its own database.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	pool, dbCfg := sharedPostgres(t).createDatabase(t)

	cfg := config.NewTestConfig()
	cfg.DB = dbCfg

	s.DB = pool
	s.Config = cfg
	s.Router = startApp(t, pool, cfg)
}

// SetupSubTest truncates everything so table cases do not see each other's bookings.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database")
}
