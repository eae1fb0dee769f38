package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rahe01/StayVista/domain"
	"github.com/rahe01/StayVista/errors"
	application "github.com/rahe01/StayVista/service"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubBookingStore struct {
	bookings map[primitive.ObjectID]*domain.Booking
}

func (store *stubBookingStore) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.ID = primitive.NewObjectID()
	store.bookings[booking.ID] = booking
	return booking, nil
}

func (store *stubBookingStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	booking, ok := store.bookings[id]
	if !ok {
		return nil, fmt.Errorf(errors.BookingNotFoundError)
	}
	return booking, nil
}

func (store *stubBookingStore) GetByGuest(ctx context.Context, email string) ([]*domain.Booking, error) {
	return nil, nil
}

func (store *stubBookingStore) GetByHost(ctx context.Context, email string) ([]*domain.Booking, error) {
	return nil, nil
}

func (store *stubBookingStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := store.bookings[id]; !ok {
		return fmt.Errorf(errors.BookingNotFoundError)
	}
	delete(store.bookings, id)
	return nil
}

func (store *stubBookingStore) Points(ctx context.Context, scope domain.ChartScope) ([]domain.ChartPoint, error) {
	return nil, nil
}

type stubRoomStore struct{}

func (store *stubRoomStore) Insert(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	return room, nil
}

func (store *stubRoomStore) GetAll(ctx context.Context, category string) ([]*domain.Room, error) {
	return nil, nil
}

func (store *stubRoomStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Room, error) {
	return nil, fmt.Errorf(errors.RoomNotFoundError)
}

func (store *stubRoomStore) GetByHost(ctx context.Context, email string) ([]*domain.Room, error) {
	return nil, nil
}

func (store *stubRoomStore) Update(ctx context.Context, room *domain.Room) error {
	return nil
}

func (store *stubRoomStore) SetBooked(ctx context.Context, id primitive.ObjectID, booked bool) error {
	return nil
}

func (store *stubRoomStore) ClaimForBooking(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (store *stubRoomStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (store *stubRoomStore) CountRooms(ctx context.Context) (int64, error) {
	return 0, nil
}

func (store *stubRoomStore) CountRoomsByHost(ctx context.Context, email string) (int64, error) {
	return 0, nil
}

type stubNotifier struct{}

func (stubNotifier) Enqueue(ctx context.Context, notification *domain.Notification) {}

func TestDemotedAdminCannotDeleteForeignBooking(t *testing.T) {
	ac, auth := newTestAccessControl(&domain.User{Email: "former-admin@stayvista.com", Role: domain.Admin})

	booking := &domain.Booking{
		ID:    primitive.NewObjectID(),
		Guest: domain.BookingParty{Email: "guest@stayvista.com"},
		Host:  domain.BookingParty{Email: "host@stayvista.com"},
	}
	bookings := &stubBookingStore{bookings: map[primitive.ObjectID]*domain.Booking{booking.ID: booking}}

	service := application.NewBookingService(bookings, &stubRoomStore{}, stubNotifier{}, noopTracer())
	handler := NewBookingHandler(service, application.NewPaymentService(noopTracer(), logrus.New()), noopTracer())

	router := mux.NewRouter()
	handler.Init(router, ac)

	// Token minted while the directory still said admin, then the user is
	// demoted. The stale claim must not keep admin delete powers alive.
	session := sessionRequest(t, auth, "former-admin@stayvista.com")
	cookie, _ := session.Cookie("token")
	ac.users.(*stubUserStore).users["former-admin@stayvista.com"].Role = domain.Guest

	req := httptest.NewRequest("DELETE", "/booking/"+booking.ID.Hex(), nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	if len(bookings.bookings) != 1 {
		t.Error("booking must survive a delete by a demoted admin")
	}
}

func TestAdminDeletesForeignBooking(t *testing.T) {
	ac, auth := newTestAccessControl(&domain.User{Email: "admin@stayvista.com", Role: domain.Admin})

	booking := &domain.Booking{
		ID:    primitive.NewObjectID(),
		Guest: domain.BookingParty{Email: "guest@stayvista.com"},
		Host:  domain.BookingParty{Email: "host@stayvista.com"},
	}
	bookings := &stubBookingStore{bookings: map[primitive.ObjectID]*domain.Booking{booking.ID: booking}}

	service := application.NewBookingService(bookings, &stubRoomStore{}, stubNotifier{}, noopTracer())
	handler := NewBookingHandler(service, application.NewPaymentService(noopTracer(), logrus.New()), noopTracer())

	router := mux.NewRouter()
	handler.Init(router, ac)

	session := sessionRequest(t, auth, "admin@stayvista.com")
	cookie, _ := session.Cookie("token")

	req := httptest.NewRequest("DELETE", "/booking/"+booking.ID.Hex(), nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if len(bookings.bookings) != 0 {
		t.Error("an admin in good standing may delete any booking")
	}
}
