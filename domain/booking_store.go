package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChartScope narrows the ledger scan for the statistics views. Zero value
// means the whole ledger (admin view).
type ChartScope struct {
	GuestEmail string
	HostEmail  string
}

type BookingStore interface {
	Insert(ctx context.Context, booking *Booking) (*Booking, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	GetByGuest(ctx context.Context, email string) ([]*Booking, error)
	GetByHost(ctx context.Context, email string) ([]*Booking, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Points(ctx context.Context, scope ChartScope) ([]ChartPoint, error)
}
