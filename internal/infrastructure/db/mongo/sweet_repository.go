package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

const (
	sweetsCollection = "sweets"
	sweetsSequence   = "sweets"
)

// SweetRepository implements ports.SweetRepository using MongoDB.
//
// Stock movements rely on single-document conditional updates: the filter
// carries the precondition (quantity > 0 for purchase) and the driver reports
// whether a document matched, which is what keeps quantity from ever going
// negative under concurrent requests.
type SweetRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewSweetRepository(db *mongo.Database) *SweetRepository {
	return &SweetRepository{db: db, col: db.Collection(sweetsCollection)}
}

// Create assigns a numeric id and timestamps, then inserts the entry.
func (r *SweetRepository) Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, sweetsSequence)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stored := *s
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("insert sweet: %w", err)
	}
	return &stored, nil
}

func (r *SweetRepository) FindByID(ctx context.Context, id int64) (*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Sweet
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		return nil, fmt.Errorf("find sweet: %w", err)
	}
	return &s, nil
}

// List returns the full catalog ordered by creation time, newest first.
func (r *SweetRepository) List(ctx context.Context) ([]*domain.Sweet, error) {
	return r.find(ctx, bson.M{})
}

// Search compiles the criteria into a conjunctive filter. Absent criteria are
// omitted; name matches by substring regardless of case, category exactly,
// and price bounds are inclusive.
func (r *SweetRepository) Search(ctx context.Context, filter ports.SearchSweetsFilter) ([]*domain.Sweet, error) {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.MinPriceCents != nil || filter.MaxPriceCents != nil {
		price := bson.M{}
		if filter.MinPriceCents != nil {
			price["$gte"] = *filter.MinPriceCents
		}
		if filter.MaxPriceCents != nil {
			price["$lte"] = *filter.MaxPriceCents
		}
		query["price_cents"] = price
	}
	return r.find(ctx, query)
}

func (r *SweetRepository) find(ctx context.Context, query bson.M) ([]*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find sweets: %w", err)
	}
	defer cur.Close(ctx)

	sweets := make([]*domain.Sweet, 0)
	for cur.Next(ctx) {
		var s domain.Sweet
		if err := cur.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode sweet: %w", err)
		}
		sweets = append(sweets, &s)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate sweets: %w", err)
	}
	return sweets, nil
}

// Update applies only the provided fields via $set and returns the updated
// document. Absolute writes never touch quantity-relative updates in flight:
// a partial $set cannot clobber a concurrent $inc on an unrelated field.
func (r *SweetRepository) Update(ctx context.Context, id int64, fields ports.UpdateSweetFields) (*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if fields.Name != nil {
		set["name"] = *fields.Name
	}
	if fields.Category != nil {
		set["category"] = *fields.Category
	}
	if fields.PriceCents != nil {
		set["price_cents"] = *fields.PriceCents
	}
	if fields.Quantity != nil {
		set["quantity"] = *fields.Quantity
	}

	var s domain.Sweet
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		return nil, fmt.Errorf("update sweet: %w", err)
	}
	return &s, nil
}

// Delete removes the entry and returns the removed snapshot.
func (r *SweetRepository) Delete(ctx context.Context, id int64) (*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Sweet
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		return nil, fmt.Errorf("delete sweet: %w", err)
	}
	return &s, nil
}

// DecrementQuantity subtracts one unit where the id matches and quantity > 0.
// A miss is disambiguated with a lookup: unknown id means not found, known id
// means the stock was already exhausted.
func (r *SweetRepository) DecrementQuantity(ctx context.Context, id int64) (*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Sweet
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "quantity": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"quantity": int64(-1)}, "$set": bson.M{"updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("decrement quantity: %w", err)
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("decrement quantity: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrSweetNotFound
	}
	return nil, domain.ErrOutOfStock
}

// IncrementQuantity adds amount to the stock in a single conditional $inc.
// The filter only matches while the result stays at or below
// domain.MaxQuantity, so the counter can never climb toward overflow. A miss
// is disambiguated with a lookup, like DecrementQuantity.
func (r *SweetRepository) IncrementQuantity(ctx context.Context, id int64, amount int64) (*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Sweet
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "quantity": bson.M{"$lte": domain.MaxQuantity - amount}},
		bson.M{"$inc": bson.M{"quantity": amount}, "$set": bson.M{"updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("increment quantity: %w", err)
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("increment quantity: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrSweetNotFound
	}
	return nil, domain.ErrStockLimitExceeded
}

// EnsureIndexes creates the secondary indexes used by search.
func (r *SweetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "price_cents", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
