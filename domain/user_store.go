package domain

import (
	"context"
)

type UserStore interface {
	Insert(ctx context.Context, user *User) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateStatus(ctx context.Context, email string, status Status) error
	UpdateRole(ctx context.Context, email string, role Role, status Status) (*User, error)
	CountUsers(ctx context.Context) (int64, error)
}
