package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// SearchSweetsFilter carries the optional catalog search criteria. Provided
// predicates are ANDed; absent ones are omitted from the query entirely.
type SearchSweetsFilter struct {
	Name          string // substring match on name
	Category      string // exact match
	MinPriceCents *int64 // inclusive lower bound
	MaxPriceCents *int64 // inclusive upper bound
}

// UpdateSweetFields holds the partial-update payload. Nil fields keep their
// prior value.
type UpdateSweetFields struct {
	Name       *string
	Category   *string
	PriceCents *int64
	Quantity   *int64
}

// SweetRepository defines persistence operations for catalog entries.
//
// DecrementQuantity and IncrementQuantity are the only writers of stock
// deltas. Both are single conditional updates so concurrent purchases and
// restocks against the same id can never lose writes or drive the quantity
// negative.
type SweetRepository interface {
	Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	FindByID(ctx context.Context, id int64) (*domain.Sweet, error)
	// List returns the full catalog ordered by creation time, newest first.
	List(ctx context.Context) ([]*domain.Sweet, error)
	// Search returns entries matching filter, ordered like List.
	Search(ctx context.Context, filter SearchSweetsFilter) ([]*domain.Sweet, error)
	// Update applies only the provided fields and returns the updated entry.
	Update(ctx context.Context, id int64, fields UpdateSweetFields) (*domain.Sweet, error)
	// Delete removes the entry and returns the removed snapshot.
	Delete(ctx context.Context, id int64) (*domain.Sweet, error)
	// DecrementQuantity subtracts one unit where id matches and quantity > 0,
	// returning the updated entry. When no row qualifies it reports
	// domain.ErrSweetNotFound (unknown id) or domain.ErrOutOfStock (known id,
	// quantity already zero).
	DecrementQuantity(ctx context.Context, id int64) (*domain.Sweet, error)
	// IncrementQuantity adds amount (validated positive by the caller) where
	// the resulting quantity stays at or below domain.MaxQuantity, returning
	// the updated entry. When no row qualifies it reports
	// domain.ErrSweetNotFound (unknown id) or domain.ErrStockLimitExceeded
	// (known id, increment would exceed the cap).
	IncrementQuantity(ctx context.Context, id int64, amount int64) (*domain.Sweet, error)
}
