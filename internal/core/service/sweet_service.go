package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

// CatalogCache abstracts the short-TTL list cache (Redis). Lookups and
// invalidations are best-effort: a cache failure never fails the request.
type CatalogCache interface {
	GetList(ctx context.Context) ([]*domain.Sweet, bool)
	SetList(ctx context.Context, sweets []*domain.Sweet)
	Invalidate(ctx context.Context)
}

// SweetService implements the catalog use-cases on top of the repository's
// conditional updates. It owns all input validation so no out-of-range value
// ever reaches the store.
type SweetService struct {
	repo  ports.SweetRepository
	cache CatalogCache
	log   zerolog.Logger
}

func NewSweetService(repo ports.SweetRepository, cache CatalogCache, log zerolog.Logger) *SweetService {
	return &SweetService{repo: repo, cache: cache, log: log}
}

// CreateSweet validates and persists a new catalog entry.
func (s *SweetService) CreateSweet(ctx context.Context, input ports.CreateSweetInput) (*domain.Sweet, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	if name == "" || category == "" || input.Quantity < 0 || input.Quantity > domain.MaxQuantity {
		return nil, domain.ErrInvalidInput
	}
	cents, ok := domain.PriceToCents(input.Price)
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	created, err := s.repo.Create(ctx, &domain.Sweet{
		Name:       name,
		Category:   category,
		PriceCents: cents,
		Quantity:   input.Quantity,
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.log.Info().Int64("sweet_id", created.ID).Str("name", created.Name).Msg("sweet created")
	return created, nil
}

func (s *SweetService) GetSweet(ctx context.Context, id int64) (*domain.Sweet, error) {
	return s.repo.FindByID(ctx, id)
}

// ListSweets returns the full catalog, newest first, serving from the cache
// when a fresh copy is available.
func (s *SweetService) ListSweets(ctx context.Context) ([]*domain.Sweet, error) {
	if cached, ok := s.cache.GetList(ctx); ok {
		return cached, nil
	}
	sweets, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetList(ctx, sweets)
	return sweets, nil
}

// SearchSweets composes the provided criteria into a conjunctive filter.
// An empty criteria set is equivalent to ListSweets.
func (s *SweetService) SearchSweets(ctx context.Context, input ports.SearchSweetsInput) ([]*domain.Sweet, error) {
	filter := ports.SearchSweetsFilter{
		Name:     strings.TrimSpace(input.Name),
		Category: strings.TrimSpace(input.Category),
	}
	if input.MinPrice != nil {
		min := domain.PriceBoundToCents(*input.MinPrice)
		filter.MinPriceCents = &min
	}
	if input.MaxPrice != nil {
		max := domain.PriceBoundToCents(*input.MaxPrice)
		filter.MaxPriceCents = &max
	}
	return s.repo.Search(ctx, filter)
}

// UpdateSweet applies the provided fields only; everything else keeps its
// prior value. Provided fields are validated against the same constraints as
// creation.
func (s *SweetService) UpdateSweet(ctx context.Context, id int64, input ports.UpdateSweetInput) (*domain.Sweet, error) {
	fields := ports.UpdateSweetFields{}
	changed := false

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		fields.Name = &name
		changed = true
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, domain.ErrInvalidInput
		}
		fields.Category = &category
		changed = true
	}
	if input.Price != nil {
		cents, ok := domain.PriceToCents(*input.Price)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		fields.PriceCents = &cents
		changed = true
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 || *input.Quantity > domain.MaxQuantity {
			return nil, domain.ErrInvalidInput
		}
		fields.Quantity = input.Quantity
		changed = true
	}

	if !changed {
		// Nothing to apply; still confirm the id exists.
		return s.repo.FindByID(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.log.Info().Int64("sweet_id", id).Msg("sweet updated")
	return updated, nil
}

// DeleteSweet removes the entry and returns the removed snapshot.
func (s *SweetService) DeleteSweet(ctx context.Context, id int64) (*domain.Sweet, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.log.Info().Int64("sweet_id", id).Str("name", deleted.Name).Msg("sweet deleted")
	return deleted, nil
}

// PurchaseSweet takes one unit of stock. The decrement is a single
// conditional update in the repository, so two concurrent purchases can never
// both win the last unit.
func (s *SweetService) PurchaseSweet(ctx context.Context, id int64) (*domain.Sweet, error) {
	sweet, err := s.repo.DecrementQuantity(ctx, id)
	if err != nil {
		if err == domain.ErrOutOfStock {
			s.log.Info().Int64("sweet_id", id).Msg("purchase rejected, out of stock")
		}
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.log.Info().Int64("sweet_id", id).Int64("quantity", sweet.Quantity).Msg("sweet purchased")
	return sweet, nil
}

// RestockSweet adds amount units of stock. Non-positive amounts are rejected
// before the store is touched; amounts that would push the quantity past
// domain.MaxQuantity are rejected by the repository's conditional increment.
func (s *SweetService) RestockSweet(ctx context.Context, id int64, amount int64) (*domain.Sweet, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if amount > domain.MaxQuantity {
		return nil, domain.ErrStockLimitExceeded
	}

	sweet, err := s.repo.IncrementQuantity(ctx, id, amount)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.log.Info().Int64("sweet_id", id).Int64("amount", amount).Int64("quantity", sweet.Quantity).Msg("sweet restocked")
	return sweet, nil
}
