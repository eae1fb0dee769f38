package application

import (
	"context"
	"fmt"

	"github.com/rahe01/StayVista/domain"
	"github.com/rahe01/StayVista/errors"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type UserService struct {
	store  domain.UserStore
	tracer trace.Tracer
}

func NewUserService(store domain.UserStore, tracer trace.Tracer) *UserService {
	return &UserService{
		store:  store,
		tracer: tracer,
	}
}

// Upsert runs on every sign-in. An unknown email becomes a new record with a
// server-assigned timestamp. A known email only gets its status bumped when
// the client is applying to become a host; anything else returns the stored
// record untouched, so stale client payloads can never overwrite a role.
func (service *UserService) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.Upsert")
	defer span.End()

	existing, err := service.store.GetByEmail(ctx, user.Email)
	if err == nil && existing != nil {
		if user.Status == domain.StatusRequested {
			if err := service.store.UpdateStatus(ctx, user.Email, user.Status); err != nil {
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}
			existing.Status = user.Status
		}
		return existing, nil
	}
	if err != nil && err.Error() != errors.UserNotFoundError {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if user.Role == "" {
		user.Role = domain.Guest
	}
	return service.store.Insert(ctx, user)
}

func (service *UserService) GetAll(ctx context.Context) ([]*domain.User, error) {
	return service.store.GetAll(ctx)
}

func (service *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return service.store.GetByEmail(ctx, email)
}

// UpdateRole applies the role elevation after the self-elevation policy
// check. Role and status land in one single-document write.
func (service *UserService) UpdateRole(ctx context.Context, actorEmail, targetEmail string, role domain.Role, status domain.Status) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.UpdateRole")
	defer span.End()

	if err := domain.CanChangeRole(actorEmail, targetEmail); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	switch role {
	case domain.Guest, domain.Host, domain.Admin:
	default:
		return nil, fmt.Errorf(errors.InvalidRequestFormatError)
	}

	return service.store.UpdateRole(ctx, targetEmail, role, status)
}
