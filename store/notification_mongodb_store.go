package store

import (
	"context"

	"github.com/rahe01/StayVista/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const NOTIFICATION_COLLECTION = "notifications"

type NotificationMongoDBStore struct {
	notifications *mongo.Collection
	tracer        trace.Tracer
}

func NewNotificationMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.NotificationStore {
	notifications := client.Database(DATABASE).Collection(NOTIFICATION_COLLECTION)
	return &NotificationMongoDBStore{
		notifications: notifications,
		tracer:        tracer,
	}
}

func (store *NotificationMongoDBStore) Insert(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	ctx, span := store.tracer.Start(ctx, "NotificationStore.Insert")
	defer span.End()

	notification.ID = primitive.NewObjectID()
	result, err := store.notifications.InsertOne(ctx, notification)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	notification.ID = result.InsertedID.(primitive.ObjectID)
	return notification, nil
}

func (store *NotificationMongoDBStore) GetByEmail(ctx context.Context, email string) ([]*domain.Notification, error) {
	ctx, span := store.tracer.Start(ctx, "NotificationStore.GetByEmail")
	defer span.End()

	cursor, err := store.notifications.Find(ctx, bson.M{"email": email})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []*domain.Notification
	for cursor.Next(ctx) {
		var notification domain.Notification
		if err := cursor.Decode(&notification); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		notifications = append(notifications, &notification)
	}
	if err := cursor.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return notifications, nil
}
