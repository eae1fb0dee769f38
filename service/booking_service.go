package application

import (
	"context"
	"fmt"
	"time"

	"github.com/rahe01/StayVista/domain"
	"github.com/rahe01/StayVista/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Notifier is what the booking flow needs from the dispatcher: a
// fire-and-forget enqueue.
type Notifier interface {
	Enqueue(ctx context.Context, notification *domain.Notification)
}

type BookingService struct {
	bookings      domain.BookingStore
	rooms         domain.RoomStore
	notifications Notifier
	tracer        trace.Tracer
}

func NewBookingService(bookings domain.BookingStore, rooms domain.RoomStore, notifications Notifier, tracer trace.Tracer) *BookingService {
	return &BookingService{
		bookings:      bookings,
		rooms:         rooms,
		notifications: notifications,
		tracer:        tracer,
	}
}

// Create claims the room, writes the ledger entry, then hands the two
// confirmation mails to the dispatcher. The claim is the double-booking
// guard: losing it aborts before anything is written. The mails run after
// the commit and their failure never rolls the booking back.
func (service *BookingService) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.Create")
	defer span.End()

	if err := booking.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf(errors.InvalidRequestFormatError)
	}
	if booking.Date.IsZero() {
		booking.Date = time.Now()
	}

	if err := service.rooms.ClaimForBooking(ctx, booking.RoomID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	created, err := service.bookings.Insert(ctx, booking)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		// Best-effort release of the claim so a failed ledger write does
		// not leave the room stuck unbookable.
		if unclaimErr := service.rooms.SetBooked(ctx, booking.RoomID, false); unclaimErr != nil {
			span.SetStatus(codes.Error, unclaimErr.Error())
		}
		return nil, err
	}

	service.notifications.Enqueue(ctx, &domain.Notification{
		Email:   created.Guest.Email,
		Subject: "Booking Successful!",
		Message: fmt.Sprintf("You've successfully booked a room through StayVista. Transaction Id: %s", created.TransactionID),
	})
	service.notifications.Enqueue(ctx, &domain.Notification{
		Email:   created.Host.Email,
		Subject: "Your room got booked!",
		Message: fmt.Sprintf("Get ready to welcome %s.", created.Guest.Name),
	})

	return created, nil
}

func (service *BookingService) GetByGuest(ctx context.Context, email string) ([]*domain.Booking, error) {
	return service.bookings.GetByGuest(ctx, email)
}

func (service *BookingService) GetByHost(ctx context.Context, email string) ([]*domain.Booking, error) {
	return service.bookings.GetByHost(ctx, email)
}

// Delete removes a ledger entry. Only the booking's guest, its host, or an
// admin may delete it. The room's booked flag is untouched; cancellation
// flips it through its own endpoint.
func (service *BookingService) Delete(ctx context.Context, id primitive.ObjectID, actorEmail string, actorRole domain.Role) error {
	ctx, span := service.tracer.Start(ctx, "BookingService.Delete")
	defer span.End()

	booking, err := service.bookings.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if actorRole != domain.Admin && booking.Guest.Email != actorEmail && booking.Host.Email != actorEmail {
		span.SetStatus(codes.Error, errors.NotBookingOwnerError)
		return fmt.Errorf(errors.NotBookingOwnerError)
	}

	return service.bookings.Delete(ctx, id)
}
