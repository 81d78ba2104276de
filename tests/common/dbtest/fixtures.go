//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const DefaultWarehouse = "Default Warehouse"

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx, so fixtures can run inside a test transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()
	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, first_name, last_name, role) VALUES ($1, $2, 'Test', 'User', $3) ON CONFLICT (email) DO NOTHING",
		userID, email, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func DefaultWarehouseID(t *testing.T, db DBLike) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT id FROM warehouses WHERE name = $1 LIMIT 1", DefaultWarehouse).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTestUnit inserts a bookable unit in the default warehouse.
func CreateTestUnit(t *testing.T, db DBLike, unitNumber string) uuid.UUID {
	t.Helper()

	unitID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO warehouse_units (id, warehouse_id, unit_number, square_meters) VALUES ($1, $2, $3, 12.50)",
		unitID, DefaultWarehouseID(t, db), unitNumber)
	require.NoError(t, err)
	return unitID
}

// CreateTestPricing adds an active rule; discount may be empty.
func CreateTestPricing(t *testing.T, db DBLike, unitID uuid.UUID, tier, price, discount string) uuid.UUID {
	t.Helper()

	var discountArg any
	if discount != "" {
		discountArg = discount
	}
	ruleID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO unit_pricing (id, unit_id, tier, price, discount_percentage) VALUES ($1, $2, $3, $4::numeric, $5::numeric)",
		ruleID, unitID, tier, price, discountArg)
	require.NoError(t, err)
	return ruleID
}

func SetUnitFlags(t *testing.T, db DBLike, unitID uuid.UUID, available, active bool) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE warehouse_units SET is_available = $2, is_active = $3, updated_at = now() WHERE id = $1",
		unitID, available, active)
	require.NoError(t, err)
}

func CountRows(t *testing.T, db DBLike, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO warehouses (id, name, location)
		SELECT gen_random_uuid(), $1, 'Test District'
		WHERE NOT EXISTS (SELECT 1 FROM warehouses WHERE name = $1);
	`, DefaultWarehouse)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('goose_db_version')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
