package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skycart-api/internal/model"
)

type MongoProductRepository struct {
	col *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{col: db.Collection("products")}
}

func (m *MongoProductRepository) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	doc := toProductDocument(p)

	res, err := m.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toProductEntity(doc), nil
}

func (m *MongoProductRepository) GetByID(ctx context.Context, productID string) (*model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc productDocument
	err = m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toProductEntity(&doc), nil
}

// Update rewrites the catalog fields an admin may edit. Stock is included:
// an absolute restock goes through here, order-driven deltas go through
// AdjustStock.
func (m *MongoProductRepository) Update(ctx context.Context, p *model.Product) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return ErrNotFound
	}

	res, err := m.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        p.Name,
		"price":       toDecimal128(p.Price),
		"description": p.Description,
		"images":      p.Images,
		"category":    p.Category,
		"seller":      p.Seller,
		"stock":       p.Stock,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoProductRepository) Delete(ctx context.Context, productID string) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrNotFound
	}

	res, err := m.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustStock applies a signed stock delta as a single guarded update. For
// negative deltas the filter requires enough stock, so the counter can never
// go below zero even under concurrent orders. Returns false when the guard
// rejected the change (or the product is gone).
func (m *MongoProductRepository) AdjustStock(ctx context.Context, productID string, delta int) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return false, ErrNotFound
	}

	filter := bson.M{"_id": oid}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}

	res, err := m.col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"stock": delta}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// ProductFilter narrows catalog listings. Zero values mean "no constraint".
type ProductFilter struct {
	Keyword   string
	Category  string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	MinRating *float64
	SortBy    string
	SortDesc  bool
}

func (f ProductFilter) query() bson.M {
	q := bson.M{}

	if f.Keyword != "" {
		q["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": f.Keyword, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": f.Keyword, "$options": "i"}},
		}
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = toDecimal128(*f.MinPrice)
		}
		if f.MaxPrice != nil {
			price["$lte"] = toDecimal128(*f.MaxPrice)
		}
		q["price"] = price
	}
	if f.MinRating != nil {
		q["ratings"] = bson.M{"$gte": *f.MinRating}
	}
	return q
}

func (m *MongoProductRepository) Find(ctx context.Context, filter ProductFilter, skip, limit int64) ([]*model.Product, int64, error) {
	query := filter.query()

	total, err := m.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	order := 1
	if filter.SortDesc {
		order = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: order}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := m.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []*model.Product
	for cur.Next(ctx) {
		var doc productDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, toProductEntity(&doc))
	}
	return out, total, cur.Err()
}

// UpsertReview replaces the user's existing review or appends a new one,
// then recalculates the average rating.
func (m *MongoProductRepository) UpsertReview(ctx context.Context, productID string, review model.ProductReview) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrNotFound
	}

	res, err := m.col.UpdateOne(ctx,
		bson.M{"_id": oid, "reviews.user": review.User},
		bson.M{"$set": bson.M{
			"reviews.$.rating":  review.Rating,
			"reviews.$.comment": review.Comment,
		}},
	)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		review.CreatedAt = time.Now().UTC()
		res, err = m.col.UpdateOne(ctx,
			bson.M{"_id": oid},
			bson.M{
				"$push": bson.M{"reviews": review},
				"$inc":  bson.M{"num_of_reviews": 1},
			},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
	}

	return m.recalcRating(ctx, oid)
}

func (m *MongoProductRepository) RemoveReview(ctx context.Context, productID, userID string) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrNotFound
	}

	// The pull runs alone so the counter only moves when a review was
	// actually removed.
	res, err := m.col.UpdateOne(ctx,
		bson.M{"_id": oid, "reviews.user": userID},
		bson.M{"$pull": bson.M{"reviews": bson.M{"user": userID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	_, err = m.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"num_of_reviews": -1}})
	if err != nil {
		return err
	}

	return m.recalcRating(ctx, oid)
}

func (m *MongoProductRepository) recalcRating(ctx context.Context, oid primitive.ObjectID) error {
	pipeline := []bson.M{
		{"$match": bson.M{"_id": oid}},
		{"$project": bson.M{
			"ratings": bson.M{"$cond": bson.M{
				"if":   bson.M{"$eq": bson.A{bson.M{"$size": "$reviews"}, 0}},
				"then": 0,
				"else": bson.M{"$avg": "$reviews.rating"},
			}},
		}},
	}

	cur, err := m.col.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		return cur.Err()
	}

	var row struct {
		Ratings float64 `bson:"ratings"`
	}
	if err := cur.Decode(&row); err != nil {
		return err
	}

	rounded := math.Round(row.Ratings*10) / 10
	_, err = m.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"ratings": rounded}})
	return err
}
