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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	passwordHash := "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."
	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, passwordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestShop(t *testing.T, db DBLike, ownerID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	shopID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `INSERT INTO shops (id, owner_id, name, pickup_name, pickup_phone, pickup_street, pickup_district, pickup_city)
		VALUES ($1, $2, $3, $3, '+84900000000', '1 Warehouse Rd', 'District 1', 'Ho Chi Minh City')
		ON CONFLICT (owner_id) DO NOTHING`,
		shopID, ownerID, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM shops WHERE owner_id = $1", ownerID).Scan(&shopID)
	}

	return shopID
}

// CreateTestVariant inserts a product with a single variant and its inventory
// row, returning the variant ID.
func CreateTestVariant(t *testing.T, db DBLike, shopID uuid.UUID, productName string, priceCents int64, stock int32) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	variantID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO products (id, shop_id, name) VALUES ($1, $2, $3)", productID, shopID, productName)
	require.NoError(t, err)

	_, err = db.Exec(ctx, "INSERT INTO variants (id, product_id, name, price_cents) VALUES ($1, $2, '', $3)", variantID, productID, priceCents)
	require.NoError(t, err)

	_, err = db.Exec(ctx, "INSERT INTO inventories (variant_id, stock) VALUES ($1, $2)", variantID, stock)
	require.NoError(t, err)

	return variantID
}

// VoucherFixture covers the columns tests care about; zero values mean
// "no cap" where the column is nullable.
type VoucherFixture struct {
	Code              string
	Scope             string
	DiscountType      string
	ShopID            *uuid.UUID
	PercentOff        int32
	AmountOffCents    int64
	MaxDiscountCents  *int64
	MinOrderCents     int64
	UsageLimit        *int32
	UsageLimitPerUser *int32
}

func CreateTestVoucher(t *testing.T, db DBLike, f VoucherFixture) uuid.UUID {
	t.Helper()

	voucherID := uuid.New()
	ctx := context.Background()
	now := time.Now()

	_, err := db.Exec(ctx, `INSERT INTO vouchers
		(id, code, scope, discount_type, shop_id, percent_off, amount_off_cents, max_discount_cents, min_order_cents, starts_at, ends_at, usage_limit, usage_limit_per_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		voucherID, f.Code, f.Scope, f.DiscountType, f.ShopID,
		f.PercentOff, f.AmountOffCents, f.MaxDiscountCents, f.MinOrderCents,
		now.Add(-time.Hour), now.Add(30*24*time.Hour),
		f.UsageLimit, f.UsageLimitPerUser)
	require.NoError(t, err)

	return voucherID
}

func VariantStock(t *testing.T, db DBLike, variantID uuid.UUID) int32 {
	t.Helper()

	var stock int32
	err := db.QueryRow(context.Background(), "SELECT stock FROM inventories WHERE variant_id = $1", variantID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

func VoucherUsedCount(t *testing.T, db DBLike, voucherID uuid.UUID) int32 {
	t.Helper()

	var used int32
	err := db.QueryRow(context.Background(), "SELECT used_count FROM vouchers WHERE id = $1", voucherID).Scan(&used)
	require.NoError(t, err)
	return used
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between tests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
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

	return nil
}
