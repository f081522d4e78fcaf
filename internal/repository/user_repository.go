package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skycart-api/internal/model"
)

type MongoUserRepository struct {
	col *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{col: db.Collection("users")}
}

// EnsureIndexes creates the unique email index. Called once at startup.
func (m *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := m.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (m *MongoUserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	doc := toUserDocument(u)

	res, err := m.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toUserEntity(doc), nil
}

func (m *MongoUserRepository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return m.findOne(ctx, bson.M{"_id": oid})
}

func (m *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (m *MongoUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := m.col.CountDocuments(ctx, bson.M{"email": strings.ToLower(email)})
	return n > 0, err
}

func (m *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var doc userDocument
	err := m.col.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toUserEntity(&doc), nil
}

func (m *MongoUserRepository) UpdateProfile(ctx context.Context, userID, name, avatar string) error {
	set := bson.M{"name": name}
	if avatar != "" {
		set["avatar"] = avatar
	}
	return m.updateByID(ctx, userID, bson.M{"$set": set})
}

func (m *MongoUserRepository) UpdatePassword(ctx context.Context, userID, hashedPassword string) error {
	return m.updateByID(ctx, userID, bson.M{
		"$set":   bson.M{"password": hashedPassword},
		"$unset": bson.M{"reset_password_token": "", "reset_password_token_expire": ""},
	})
}

func (m *MongoUserRepository) SetResetToken(ctx context.Context, userID, hashedToken string, expireAt time.Time) error {
	return m.updateByID(ctx, userID, bson.M{"$set": bson.M{
		"reset_password_token":        hashedToken,
		"reset_password_token_expire": expireAt,
	}})
}

// GetByResetToken matches an unexpired reset token (stored hashed).
func (m *MongoUserRepository) GetByResetToken(ctx context.Context, hashedToken string) (*model.User, error) {
	return m.findOne(ctx, bson.M{
		"reset_password_token":        hashedToken,
		"reset_password_token_expire": bson.M{"$gt": time.Now().UTC()},
	})
}

func (m *MongoUserRepository) UpdateRole(ctx context.Context, userID string, role model.Role) error {
	return m.updateByID(ctx, userID, bson.M{"$set": bson.M{"role": string(role)}})
}

func (m *MongoUserRepository) Delete(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
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

func (m *MongoUserRepository) FindAll(ctx context.Context, skip, limit int64) ([]*model.User, int64, error) {
	total, err := m.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []*model.User
	for cur.Next(ctx) {
		var doc userDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, toUserEntity(&doc))
	}
	return out, total, cur.Err()
}

func (m *MongoUserRepository) updateByID(ctx context.Context, userID string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}

	res, err := m.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
