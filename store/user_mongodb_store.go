package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rahe01/StayVista/domain"
	"github.com/rahe01/StayVista/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DATABASE        = "stayVista"
	USER_COLLECTION = "users"
)

type UserMongoDBStore struct {
	users  *mongo.Collection
	tracer trace.Tracer
}

func NewUserMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.UserStore {
	users := client.Database(DATABASE).Collection(USER_COLLECTION)
	return &UserMongoDBStore{
		users:  users,
		tracer: tracer,
	}
}

func (store *UserMongoDBStore) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.Insert")
	defer span.End()

	user.ID = primitive.NewObjectID()
	user.Timestamp = time.Now().UnixMilli()
	result, err := store.users.InsertOne(ctx, user)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (store *UserMongoDBStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.GetAll")
	defer span.End()

	filter := bson.D{{}}
	return store.filter(ctx, filter)
}

func (store *UserMongoDBStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.GetByEmail")
	defer span.End()

	filter := bson.M{"email": email}
	user, err := store.filterOne(ctx, filter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf(errors.UserNotFoundError)
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return user, nil
}

func (store *UserMongoDBStore) UpdateStatus(ctx context.Context, email string, status domain.Status) error {
	ctx, span := store.tracer.Start(ctx, "UserStore.UpdateStatus")
	defer span.End()

	filter := bson.M{"email": email}
	update := bson.M{"$set": bson.M{"status": status}}

	_, err := store.users.UpdateOne(ctx, filter, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (store *UserMongoDBStore) UpdateRole(ctx context.Context, email string, role domain.Role, status domain.Status) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.UpdateRole")
	defer span.End()

	filter := bson.M{"email": email}
	update := bson.M{"$set": bson.M{
		"role":      role,
		"status":    status,
		"timestamp": time.Now().UnixMilli(),
	}}

	result, err := store.users.UpdateOne(ctx, filter, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf(errors.UserNotFoundError)
	}

	return store.filterOne(ctx, filter)
}

func (store *UserMongoDBStore) CountUsers(ctx context.Context) (int64, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.CountUsers")
	defer span.End()

	return store.users.CountDocuments(ctx, bson.D{{}})
}

func (store *UserMongoDBStore) filter(ctx context.Context, filter interface{}) ([]*domain.User, error) {
	cursor, err := store.users.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeUsers(ctx, cursor)
}

func (store *UserMongoDBStore) filterOne(ctx context.Context, filter interface{}) (user *domain.User, err error) {
	result := store.users.FindOne(ctx, filter)
	err = result.Decode(&user)
	return
}

func decodeUsers(ctx context.Context, cursor *mongo.Cursor) (users []*domain.User, err error) {
	for cursor.Next(ctx) {
		var user domain.User
		err = cursor.Decode(&user)
		if err != nil {
			return
		}
		users = append(users, &user)
	}
	err = cursor.Err()
	return
}
