package store

import (
	"context"
	"fmt"

	"github.com/rahe01/StayVista/domain"
	"github.com/rahe01/StayVista/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const ROOM_COLLECTION = "rooms"

type RoomMongoDBStore struct {
	rooms  *mongo.Collection
	tracer trace.Tracer
}

func NewRoomMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.RoomStore {
	rooms := client.Database(DATABASE).Collection(ROOM_COLLECTION)
	return &RoomMongoDBStore{
		rooms:  rooms,
		tracer: tracer,
	}
}

func (store *RoomMongoDBStore) Insert(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.Insert")
	defer span.End()

	room.ID = primitive.NewObjectID()
	result, err := store.rooms.InsertOne(ctx, room)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	room.ID = result.InsertedID.(primitive.ObjectID)
	return room, nil
}

func (store *RoomMongoDBStore) GetAll(ctx context.Context, category string) ([]*domain.Room, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.GetAll")
	defer span.End()

	filter := bson.M{}
	if category != "" && category != "null" {
		filter["category"] = category
	}
	return store.filter(ctx, filter)
}

func (store *RoomMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Room, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.Get")
	defer span.End()

	filter := bson.M{"_id": id}
	room, err := store.filterOne(ctx, filter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf(errors.RoomNotFoundError)
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return room, nil
}

func (store *RoomMongoDBStore) GetByHost(ctx context.Context, email string) ([]*domain.Room, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.GetByHost")
	defer span.End()

	filter := bson.M{"host.email": email}
	return store.filter(ctx, filter)
}

func (store *RoomMongoDBStore) Update(ctx context.Context, room *domain.Room) error {
	ctx, span := store.tracer.Start(ctx, "RoomStore.Update")
	defer span.End()

	filter := bson.M{"_id": room.ID}
	update := bson.M{"$set": room}

	result, err := store.rooms.UpdateOne(ctx, filter, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf(errors.RoomNotFoundError)
	}
	return nil
}

func (store *RoomMongoDBStore) SetBooked(ctx context.Context, id primitive.ObjectID, booked bool) error {
	ctx, span := store.tracer.Start(ctx, "RoomStore.SetBooked")
	defer span.End()

	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"booked": booked}}

	result, err := store.rooms.UpdateOne(ctx, filter, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf(errors.RoomNotFoundError)
	}
	return nil
}

// ClaimForBooking is the double-booking guard: a single-document conditional
// update, so two concurrent bookings against the same room cannot both win.
func (store *RoomMongoDBStore) ClaimForBooking(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := store.tracer.Start(ctx, "RoomStore.ClaimForBooking")
	defer span.End()

	filter := bson.M{"_id": id, "booked": false}
	update := bson.M{"$set": bson.M{"booked": true}}

	result, err := store.rooms.UpdateOne(ctx, filter, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.ModifiedCount == 0 {
		count, err := store.rooms.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		if count == 0 {
			return fmt.Errorf(errors.RoomNotFoundError)
		}
		return fmt.Errorf(errors.RoomAlreadyBookedError)
	}
	return nil
}

func (store *RoomMongoDBStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := store.tracer.Start(ctx, "RoomStore.Delete")
	defer span.End()

	filter := bson.M{"_id": id}
	result, err := store.rooms.DeleteOne(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf(errors.RoomNotFoundError)
	}
	return nil
}

func (store *RoomMongoDBStore) CountRooms(ctx context.Context) (int64, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.CountRooms")
	defer span.End()

	return store.rooms.CountDocuments(ctx, bson.D{{}})
}

func (store *RoomMongoDBStore) CountRoomsByHost(ctx context.Context, email string) (int64, error) {
	ctx, span := store.tracer.Start(ctx, "RoomStore.CountRoomsByHost")
	defer span.End()

	return store.rooms.CountDocuments(ctx, bson.M{"host.email": email})
}

func (store *RoomMongoDBStore) filter(ctx context.Context, filter interface{}) ([]*domain.Room, error) {
	cursor, err := store.rooms.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeRooms(ctx, cursor)
}

func (store *RoomMongoDBStore) filterOne(ctx context.Context, filter interface{}) (room *domain.Room, err error) {
	result := store.rooms.FindOne(ctx, filter)
	err = result.Decode(&room)
	return
}

func decodeRooms(ctx context.Context, cursor *mongo.Cursor) (rooms []*domain.Room, err error) {
	for cursor.Next(ctx) {
		var room domain.Room
		err = cursor.Decode(&room)
		if err != nil {
			return
		}
		rooms = append(rooms, &room)
	}
	err = cursor.Err()
	return
}
