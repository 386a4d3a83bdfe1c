package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// CreateSweetInput carries a validated new catalog entry. Price is the
// decimal amount as received on the wire; the service converts it to cents.
type CreateSweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int64
}

// UpdateSweetInput carries a partial update; nil fields are left untouched.
type UpdateSweetInput struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int64
}

// SearchSweetsInput carries the optional search criteria from the query
// string. Nil price bounds mean the bound is absent, not zero.
type SearchSweetsInput struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// SweetService defines the catalog use-cases: CRUD, filtered search, and the
// atomic stock movements (purchase / restock).
type SweetService interface {
	CreateSweet(ctx context.Context, input CreateSweetInput) (*domain.Sweet, error)
	GetSweet(ctx context.Context, id int64) (*domain.Sweet, error)
	ListSweets(ctx context.Context) ([]*domain.Sweet, error)
	SearchSweets(ctx context.Context, input SearchSweetsInput) ([]*domain.Sweet, error)
	UpdateSweet(ctx context.Context, id int64, input UpdateSweetInput) (*domain.Sweet, error)
	DeleteSweet(ctx context.Context, id int64) (*domain.Sweet, error)
	PurchaseSweet(ctx context.Context, id int64) (*domain.Sweet, error)
	RestockSweet(ctx context.Context, id int64, amount int64) (*domain.Sweet, error)
}
