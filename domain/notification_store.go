package domain

import (
	"context"
)

type NotificationStore interface {
	Insert(ctx context.Context, notification *Notification) (*Notification, error)
	GetByEmail(ctx context.Context, email string) ([]*Notification, error)
}
