package notification

import (
	"context"
	"time"

	"jzf-portal/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]Notification, error)
	UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error)
	MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) error
}

type NotificationRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewNotificationRepository(mongodb *database.MongodbDB) NotificationRepository {
	return &NotificationRepositoryImpl{
		Collection: mongodb.DB.Collection("notifications"),
	}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	n.CreatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, n)
	return err
}

// userScope matches a user's own notifications plus office broadcasts.
func userScope(userID primitive.ObjectID) bson.M {
	return bson.M{"$or": []bson.M{
		{"user_id": userID},
		{"user_id": nil},
	}}
}

func (r *NotificationRepositoryImpl) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]Notification, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit)
	cursor, err := r.Collection.Find(ctx, userScope(userID), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []Notification
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *NotificationRepositoryImpl) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	query := userScope(userID)
	query["is_read"] = false
	return r.Collection.CountDocuments(ctx, query)
}

func (r *NotificationRepositoryImpl) MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error {
	now := time.Now()
	_, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_read": true, "read_at": now}},
	)
	return err
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) error {
	now := time.Now()
	query := userScope(userID)
	query["is_read"] = false
	_, err := r.Collection.UpdateMany(ctx, query, bson.M{"$set": bson.M{"is_read": true, "read_at": now}})
	return err
}
