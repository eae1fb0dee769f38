package application

import (
	"context"
	"fmt"
	"time"

	"github.com/rahe01/StayVista/domain"
	"github.com/rahe01/StayVista/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"
)

func noopTracer() trace.Tracer {
	return trace.NewNoopTracerProvider().Tracer("")
}

type fakeUserStore struct {
	users map[string]*domain.User

	insertCalls       int
	updateStatusCalls int
}

func newFakeUserStore(users ...*domain.User) *fakeUserStore {
	store := &fakeUserStore{users: make(map[string]*domain.User)}
	for _, user := range users {
		store.users[user.Email] = user
	}
	return store
}

func (store *fakeUserStore) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	store.insertCalls++
	user.Timestamp = time.Now().UnixMilli()
	store.users[user.Email] = user
	return user, nil
}

func (store *fakeUserStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	all := make([]*domain.User, 0, len(store.users))
	for _, user := range store.users {
		all = append(all, user)
	}
	return all, nil
}

func (store *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := store.users[email]
	if !ok {
		return nil, fmt.Errorf(errors.UserNotFoundError)
	}
	return user, nil
}

func (store *fakeUserStore) UpdateStatus(ctx context.Context, email string, status domain.Status) error {
	store.updateStatusCalls++
	user, ok := store.users[email]
	if !ok {
		return fmt.Errorf(errors.UserNotFoundError)
	}
	user.Status = status
	return nil
}

func (store *fakeUserStore) UpdateRole(ctx context.Context, email string, role domain.Role, status domain.Status) (*domain.User, error) {
	user, ok := store.users[email]
	if !ok {
		return nil, fmt.Errorf(errors.UserNotFoundError)
	}
	user.Role = role
	user.Status = status
	return user, nil
}

func (store *fakeUserStore) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(store.users)), nil
}

type fakeRoomStore struct {
	rooms map[primitive.ObjectID]*domain.Room
}

func newFakeRoomStore(rooms ...*domain.Room) *fakeRoomStore {
	store := &fakeRoomStore{rooms: make(map[primitive.ObjectID]*domain.Room)}
	for _, room := range rooms {
		store.rooms[room.ID] = room
	}
	return store
}

func (store *fakeRoomStore) Insert(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	room.ID = primitive.NewObjectID()
	store.rooms[room.ID] = room
	return room, nil
}

func (store *fakeRoomStore) GetAll(ctx context.Context, category string) ([]*domain.Room, error) {
	all := make([]*domain.Room, 0, len(store.rooms))
	for _, room := range store.rooms {
		if category == "" || category == "null" || room.Category == category {
			all = append(all, room)
		}
	}
	return all, nil
}

func (store *fakeRoomStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Room, error) {
	room, ok := store.rooms[id]
	if !ok {
		return nil, fmt.Errorf(errors.RoomNotFoundError)
	}
	return room, nil
}

func (store *fakeRoomStore) GetByHost(ctx context.Context, email string) ([]*domain.Room, error) {
	var owned []*domain.Room
	for _, room := range store.rooms {
		if room.Host.Email == email {
			owned = append(owned, room)
		}
	}
	return owned, nil
}

func (store *fakeRoomStore) Update(ctx context.Context, room *domain.Room) error {
	if _, ok := store.rooms[room.ID]; !ok {
		return fmt.Errorf(errors.RoomNotFoundError)
	}
	store.rooms[room.ID] = room
	return nil
}

func (store *fakeRoomStore) SetBooked(ctx context.Context, id primitive.ObjectID, booked bool) error {
	room, ok := store.rooms[id]
	if !ok {
		return fmt.Errorf(errors.RoomNotFoundError)
	}
	room.Booked = booked
	return nil
}

func (store *fakeRoomStore) ClaimForBooking(ctx context.Context, id primitive.ObjectID) error {
	room, ok := store.rooms[id]
	if !ok {
		return fmt.Errorf(errors.RoomNotFoundError)
	}
	if room.Booked {
		return fmt.Errorf(errors.RoomAlreadyBookedError)
	}
	room.Booked = true
	return nil
}

func (store *fakeRoomStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := store.rooms[id]; !ok {
		return fmt.Errorf(errors.RoomNotFoundError)
	}
	delete(store.rooms, id)
	return nil
}

func (store *fakeRoomStore) CountRooms(ctx context.Context) (int64, error) {
	return int64(len(store.rooms)), nil
}

func (store *fakeRoomStore) CountRoomsByHost(ctx context.Context, email string) (int64, error) {
	owned, _ := store.GetByHost(ctx, email)
	return int64(len(owned)), nil
}

type fakeBookingStore struct {
	bookings map[primitive.ObjectID]*domain.Booking
	points   []domain.ChartPoint

	insertCalls int
	insertErr   error
}

func newFakeBookingStore(bookings ...*domain.Booking) *fakeBookingStore {
	store := &fakeBookingStore{bookings: make(map[primitive.ObjectID]*domain.Booking)}
	for _, booking := range bookings {
		store.bookings[booking.ID] = booking
	}
	return store
}

func (store *fakeBookingStore) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	store.insertCalls++
	if store.insertErr != nil {
		return nil, store.insertErr
	}
	booking.ID = primitive.NewObjectID()
	store.bookings[booking.ID] = booking
	return booking, nil
}

func (store *fakeBookingStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	booking, ok := store.bookings[id]
	if !ok {
		return nil, fmt.Errorf(errors.BookingNotFoundError)
	}
	return booking, nil
}

func (store *fakeBookingStore) GetByGuest(ctx context.Context, email string) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, booking := range store.bookings {
		if booking.Guest.Email == email {
			result = append(result, booking)
		}
	}
	return result, nil
}

func (store *fakeBookingStore) GetByHost(ctx context.Context, email string) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, booking := range store.bookings {
		if booking.Host.Email == email {
			result = append(result, booking)
		}
	}
	return result, nil
}

func (store *fakeBookingStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := store.bookings[id]; !ok {
		return fmt.Errorf(errors.BookingNotFoundError)
	}
	delete(store.bookings, id)
	return nil
}

func (store *fakeBookingStore) Points(ctx context.Context, scope domain.ChartScope) ([]domain.ChartPoint, error) {
	return store.points, nil
}

type fakeTokenCache struct {
	denied map[string]time.Duration
}

func newFakeTokenCache() *fakeTokenCache {
	return &fakeTokenCache{denied: make(map[string]time.Duration)}
}

func (cache *fakeTokenCache) Deny(ctx context.Context, tokenID string, ttl time.Duration) error {
	cache.denied[tokenID] = ttl
	return nil
}

func (cache *fakeTokenCache) IsDenied(ctx context.Context, tokenID string) (bool, error) {
	_, ok := cache.denied[tokenID]
	return ok, nil
}

type fakeNotifier struct {
	sent []*domain.Notification
}

func (notifier *fakeNotifier) Enqueue(ctx context.Context, notification *domain.Notification) {
	notifier.sent = append(notifier.sent, notification)
}
