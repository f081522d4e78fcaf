package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skycart-api/internal/model"
)

var ErrNotFound = errors.New("not found")

// Mongo implementation
type MongoOrderRepository struct {
	col *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{col: db.Collection("orders")}
}

func (m *MongoOrderRepository) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	doc := toOrderDocument(o)

	res, err := m.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toOrderEntity(doc), nil
}

func (m *MongoOrderRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc orderDocument
	err = m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toOrderEntity(&doc), nil
}

// UpdateStatus persists a status label. The state machine itself is
// enforced by the service; Delivered goes through MarkDelivered so the
// caller controls the timestamp.
func (m *MongoOrderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return ErrNotFound
	}

	res, err := m.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"order_status": string(status),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoOrderRepository) MarkDelivered(ctx context.Context, orderID string, deliveredAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return ErrNotFound
	}

	res, err := m.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"order_status": string(model.StatusDelivered),
			"delivered_at": deliveredAt,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoOrderRepository) FindByUser(ctx context.Context, userID string, skip, limit int64) ([]*model.Order, int64, error) {
	return m.findPage(ctx, bson.M{"user": userID}, skip, limit)
}

func (m *MongoOrderRepository) FindAll(ctx context.Context, skip, limit int64) ([]*model.Order, int64, error) {
	return m.findPage(ctx, bson.M{}, skip, limit)
}

func (m *MongoOrderRepository) findPage(ctx context.Context, filter bson.M, skip, limit int64) ([]*model.Order, int64, error) {
	total, err := m.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []*model.Order
	for cur.Next(ctx) {
		var doc orderDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, toOrderEntity(&doc))
	}
	return out, total, cur.Err()
}

type salesStatsDocument struct {
	TotalOrders       int64                `bson:"total_orders"`
	TotalSales        primitive.Decimal128 `bson:"total_sales"`
	AverageOrderValue primitive.Decimal128 `bson:"average_order_value"`
	DeliveredOrders   int64                `bson:"delivered_orders"`
	ProcessingOrders  int64                `bson:"processing_orders"`
	CancelledOrders   int64                `bson:"cancelled_orders"`
}

func statusCountExpr(status model.OrderStatus) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{
		bson.M{"$eq": bson.A{"$order_status", string(status)}}, 1, 0,
	}}}
}

// SalesStats aggregates order counts and totals, optionally bounded by a
// closed created_at interval. An empty match yields all-zero stats.
func (m *MongoOrderRepository) SalesStats(ctx context.Context, start, end *time.Time) (*SalesStats, error) {
	var pipeline []bson.M

	createdAt := bson.M{}
	if start != nil {
		createdAt["$gte"] = *start
	}
	if end != nil {
		createdAt["$lte"] = *end
	}
	if len(createdAt) > 0 {
		pipeline = append(pipeline, bson.M{"$match": bson.M{"created_at": createdAt}})
	}

	pipeline = append(pipeline, bson.M{"$group": bson.M{
		"_id":                 nil,
		"total_orders":        bson.M{"$sum": 1},
		"total_sales":         bson.M{"$sum": "$total_price"},
		"average_order_value": bson.M{"$avg": "$total_price"},
		"delivered_orders":    statusCountExpr(model.StatusDelivered),
		"processing_orders":   statusCountExpr(model.StatusProcessing),
		"cancelled_orders":    statusCountExpr(model.StatusCancelled),
	}})

	cur, err := m.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, err
		}
		return &SalesStats{}, nil
	}

	var doc salesStatsDocument
	if err := cur.Decode(&doc); err != nil {
		return nil, err
	}

	return &SalesStats{
		TotalOrders:       doc.TotalOrders,
		TotalSales:        fromDecimal128(doc.TotalSales),
		AverageOrderValue: fromDecimal128(doc.AverageOrderValue),
		DeliveredOrders:   doc.DeliveredOrders,
		ProcessingOrders:  doc.ProcessingOrders,
		CancelledOrders:   doc.CancelledOrders,
	}, nil
}

// DailySales returns per-day order counts and sales for the trailing window,
// excluding cancelled orders.
func (m *MongoOrderRepository) DailySales(ctx context.Context, days int) ([]DailySales, error) {
	start := time.Now().UTC().AddDate(0, 0, -days)

	pipeline := []bson.M{
		{"$match": bson.M{
			"created_at":   bson.M{"$gte": start},
			"order_status": bson.M{"$ne": string(model.StatusCancelled)},
		}},
		{"$group": bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$created_at",
			}},
			"orders": bson.M{"$sum": 1},
			"sales":  bson.M{"$sum": "$total_price"},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	cur, err := m.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []DailySales
	for cur.Next(ctx) {
		var row struct {
			Date   string               `bson:"_id"`
			Orders int64                `bson:"orders"`
			Sales  primitive.Decimal128 `bson:"sales"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out = append(out, DailySales{
			Date:   row.Date,
			Orders: row.Orders,
			Sales:  fromDecimal128(row.Sales),
		})
	}
	return out, cur.Err()
}
