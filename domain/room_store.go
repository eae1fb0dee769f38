package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RoomStore interface {
	Insert(ctx context.Context, room *Room) (*Room, error)
	// GetAll filters by category; an empty or "null" category means no filter.
	GetAll(ctx context.Context, category string) ([]*Room, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Room, error)
	GetByHost(ctx context.Context, email string) ([]*Room, error)
	Update(ctx context.Context, room *Room) error
	SetBooked(ctx context.Context, id primitive.ObjectID, booked bool) error
	// ClaimForBooking flips the booked flag only when the room is currently
	// free, as a single-document conditional write. It fails when the room
	// is already booked.
	ClaimForBooking(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountRooms(ctx context.Context) (int64, error)
	CountRoomsByHost(ctx context.Context, email string) (int64, error)
}
