package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

const notificationsCollection = "notifications"

// NotificationRepository implements ports.NotificationRepository using
// MongoDB. Records are immutable after insert except for the read flag.
type NotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) ports.NotificationRepository {
	return &NotificationRepository{coll: db.Collection(notificationsCollection)}
}

type mongoNotification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Message   string             `bson:"message"`
	Read      bool               `bson:"read"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mn *mongoNotification) toDomain() *domain.Notification {
	return &domain.Notification{
		ID:        mn.ID.Hex(),
		UserID:    mn.UserID,
		Message:   mn.Message,
		Read:      mn.Read,
		CreatedAt: mn.CreatedAt.UTC(),
	}
}

func (r *NotificationRepository) Insert(ctx context.Context, userID, message string) (*domain.Notification, error) {
	doc := mongoNotification{
		UserID:    userID,
		Message:   message,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}

	n := doc.toDomain()
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid.Hex()
	}
	return n, nil
}

func (r *NotificationRepository) FindByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find notifications: %w", err)
	}
	defer cur.Close(ctx)

	var result []domain.Notification
	for cur.Next(ctx) {
		var mn mongoNotification
		if err := cur.Decode(&mn); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		result = append(result, *mn.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return result, nil
}

func (r *NotificationRepository) FindOne(ctx context.Context, userID, notificationID string) (*domain.Notification, error) {
	oid, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return nil, domain.ErrNotificationNotFound
	}

	var mn mongoNotification
	err = r.coll.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&mn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("find notification: %w", err)
	}
	return mn.toDomain(), nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	oid, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return domain.ErrNotificationNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
