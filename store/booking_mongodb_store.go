package store

import (
	"context"
	"fmt"

	"github.com/rahe01/StayVista/domain"
	"github.com/rahe01/StayVista/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const BOOKING_COLLECTION = "bookings"

type BookingMongoDBStore struct {
	bookings *mongo.Collection
	tracer   trace.Tracer
}

func NewBookingMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.BookingStore {
	bookings := client.Database(DATABASE).Collection(BOOKING_COLLECTION)
	return &BookingMongoDBStore{
		bookings: bookings,
		tracer:   tracer,
	}
}

func (store *BookingMongoDBStore) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.Insert")
	defer span.End()

	booking.ID = primitive.NewObjectID()
	result, err := store.bookings.InsertOne(ctx, booking)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	booking.ID = result.InsertedID.(primitive.ObjectID)
	return booking, nil
}

func (store *BookingMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.Get")
	defer span.End()

	filter := bson.M{"_id": id}
	booking, err := store.filterOne(ctx, filter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf(errors.BookingNotFoundError)
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return booking, nil
}

func (store *BookingMongoDBStore) GetByGuest(ctx context.Context, email string) ([]*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.GetByGuest")
	defer span.End()

	filter := bson.M{"guest.email": email}
	return store.filter(ctx, filter)
}

func (store *BookingMongoDBStore) GetByHost(ctx context.Context, email string) ([]*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.GetByHost")
	defer span.End()

	filter := bson.M{"host.email": email}
	return store.filter(ctx, filter)
}

func (store *BookingMongoDBStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := store.tracer.Start(ctx, "BookingStore.Delete")
	defer span.End()

	filter := bson.M{"_id": id}
	result, err := store.bookings.DeleteOne(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf(errors.BookingNotFoundError)
	}
	return nil
}

// Points projects only the date and price fields, the way the statistics
// views read the ledger.
func (store *BookingMongoDBStore) Points(ctx context.Context, scope domain.ChartScope) ([]domain.ChartPoint, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.Points")
	defer span.End()

	filter := bson.M{}
	if scope.GuestEmail != "" {
		filter["guest.email"] = scope.GuestEmail
	}
	if scope.HostEmail != "" {
		filter["host.email"] = scope.HostEmail
	}

	projection := options.Find().SetProjection(bson.M{"date": 1, "price": 1})
	cursor, err := store.bookings.Find(ctx, filter, projection)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	var points []domain.ChartPoint
	for cursor.Next(ctx) {
		var point domain.ChartPoint
		if err := cursor.Decode(&point); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		points = append(points, point)
	}
	if err := cursor.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return points, nil
}

func (store *BookingMongoDBStore) filter(ctx context.Context, filter interface{}) ([]*domain.Booking, error) {
	cursor, err := store.bookings.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

func (store *BookingMongoDBStore) filterOne(ctx context.Context, filter interface{}) (booking *domain.Booking, err error) {
	result := store.bookings.FindOne(ctx, filter)
	err = result.Decode(&booking)
	return
}

func decodeBookings(ctx context.Context, cursor *mongo.Cursor) (bookings []*domain.Booking, err error) {
	for cursor.Next(ctx) {
		var booking domain.Booking
		err = cursor.Decode(&booking)
		if err != nil {
			return
		}
		bookings = append(bookings, &booking)
	}
	err = cursor.Err()
	return
}
