package application

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/rahe01/StayVista/domain"
	"github.com/rahe01/StayVista/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type RoomService struct {
	store  domain.RoomStore
	tracer trace.Tracer
}

func NewRoomService(store domain.RoomStore, tracer trace.Tracer) *RoomService {
	return &RoomService{
		store:  store,
		tracer: tracer,
	}
}

func (service *RoomService) Create(ctx context.Context, room *domain.Room, ownerEmail string) (*domain.Room, error) {
	ctx, span := service.tracer.Start(ctx, "RoomService.Create")
	defer span.End()

	if err := room.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf(errors.InvalidRequestFormatError)
	}

	// The owning host is the authenticated identity, not whatever the
	// payload claims.
	room.Host.Email = ownerEmail
	room.Booked = false

	return service.store.Insert(ctx, room)
}

func (service *RoomService) GetAll(ctx context.Context, category string) ([]*domain.Room, error) {
	return service.store.GetAll(ctx, category)
}

func (service *RoomService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Room, error) {
	return service.store.Get(ctx, id)
}

func (service *RoomService) GetByHost(ctx context.Context, email string) ([]*domain.Room, error) {
	return service.store.GetByHost(ctx, email)
}

// Update merges the patch over the stored room. The data layer does not know
// about ownership, so the owner re-check lives here: only the owning host or
// an admin may mutate a room.
func (service *RoomService) Update(ctx context.Context, id primitive.ObjectID, patch map[string]interface{}, actorEmail string, actorRole domain.Role) (*domain.Room, error) {
	ctx, span := service.tracer.Start(ctx, "RoomService.Update")
	defer span.End()

	room, err := service.store.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if actorRole != domain.Admin && room.Host.Email != actorEmail {
		span.SetStatus(codes.Error, errors.NotRoomOwnerError)
		return nil, fmt.Errorf(errors.NotRoomOwnerError)
	}

	for key := range patch {
		switch key {
		case "_id", "host", "booked":
			delete(patch, key)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           room,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := decoder.Decode(patch); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf(errors.InvalidRequestFormatError)
	}

	if err := service.store.Update(ctx, room); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return room, nil
}

func (service *RoomService) SetBooked(ctx context.Context, id primitive.ObjectID, booked bool) error {
	return service.store.SetBooked(ctx, id, booked)
}

func (service *RoomService) Delete(ctx context.Context, id primitive.ObjectID, actorEmail string, actorRole domain.Role) error {
	ctx, span := service.tracer.Start(ctx, "RoomService.Delete")
	defer span.End()

	room, err := service.store.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if actorRole != domain.Admin && room.Host.Email != actorEmail {
		span.SetStatus(codes.Error, errors.NotRoomOwnerError)
		return fmt.Errorf(errors.NotRoomOwnerError)
	}

	return service.store.Delete(ctx, id)
}
