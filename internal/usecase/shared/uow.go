package shared

import (
	"context"
	"time"

	"marketplace-api/internal/domain/order"
	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/domain/voucher"
	"marketplace-api/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: command-side reads outside any transaction
	CommandReads() CommandReads
}

type Tx interface {
	Orders() OrderRepository
	Inventory() InventoryRepository
	Vouchers() VoucherRepository
	Carts() CartRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the minimal lookups command usecases need before and
// during writes, returning write-side snapshots.
type CommandReads interface {
	CartLines(ctx context.Context, userID uuid.UUID) ([]CartLine, error)
	VariantsByIDs(ctx context.Context, ids []uuid.UUID) ([]VariantSnapshot, error)
	ShopsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ShopSnapshot, error)
	ShopByOwner(ctx context.Context, ownerID uuid.UUID) (*ShopSnapshot, error)
	VoucherByCode(ctx context.Context, code string) (*VoucherSnapshot, error)
	VoucherByID(ctx context.Context, id uuid.UUID) (*VoucherSnapshot, error)
	VoucherUserUsage(ctx context.Context, voucherID, userID uuid.UUID) (int32, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error)
}

type OrderRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, o *order.Order) error
	SaveAddressSnapshot(ctx context.Context, dbtx db.DBTX, orderID uuid.UUID, kind order.AddressKind, addr Address) error
	UpdateStatus(ctx context.Context, dbtx db.DBTX, orderID uuid.UUID, from, to order.Status, at time.Time) error
}

type InventoryRepository interface {
	// TryDecrement conditionally takes qty units of stock; false means the
	// row had fewer units than requested at update time.
	TryDecrement(ctx context.Context, dbtx db.DBTX, variantID uuid.UUID, qty int32) (bool, error)
	Restock(ctx context.Context, dbtx db.DBTX, variantID uuid.UUID, qty int32) error
}

type VoucherRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, v *voucher.Voucher) error
	Deactivate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
	// TryIncrementUsage bumps used_count while the total cap still holds.
	TryIncrementUsage(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (bool, error)
	RecordUsage(ctx context.Context, dbtx db.DBTX, voucherID, userID, orderID uuid.UUID) error
}

type CartRepository interface {
	Upsert(ctx context.Context, dbtx db.DBTX, userID, variantID uuid.UUID, quantity int32) error
	Remove(ctx context.Context, dbtx db.DBTX, userID, variantID uuid.UUID) error
	RemoveLines(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, variantIDs []uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, u *user.User) error
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error
}
