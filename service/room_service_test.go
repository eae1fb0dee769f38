package application

import (
	"context"
	"testing"
	"time"

	"github.com/rahe01/StayVista/domain"
	"github.com/rahe01/StayVista/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRoomCreateForcesOwnerAndAvailability(t *testing.T) {
	store := newFakeRoomStore()
	service := NewRoomService(store, noopTracer())

	room := freshRoom()
	room.ID = primitive.NilObjectID
	room.Host.Email = "spoofed@stayvista.com"
	room.Booked = true

	created, err := service.Create(context.Background(), room, "host@stayvista.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Host.Email != "host@stayvista.com" {
		t.Errorf("owner: got %q; payload must not pick the owner", created.Host.Email)
	}
	if created.Booked {
		t.Error("Create: a new listing starts available")
	}
}

func TestRoomCreateRejectsInvalidListing(t *testing.T) {
	service := NewRoomService(newFakeRoomStore(), noopTracer())

	_, err := service.Create(context.Background(), &domain.Room{Title: "No location"}, "host@stayvista.com")
	if err == nil || err.Error() != errors.InvalidRequestFormatError {
		t.Fatalf("Create: got %v, want %q", err, errors.InvalidRequestFormatError)
	}
}

func TestRoomUpdateMergesPatch(t *testing.T) {
	room := freshRoom()
	service := NewRoomService(newFakeRoomStore(room), noopTracer())

	patch := map[string]interface{}{
		"title": "Renovated loft",
		"price": "150",
		"from":  "2026-09-01T00:00:00Z",
	}
	updated, err := service.Update(context.Background(), room.ID, patch, "host@stayvista.com", domain.Host)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Renovated loft" {
		t.Errorf("title: got %q", updated.Title)
	}
	if updated.Price != 150 {
		t.Errorf("price: got %v, want 150", updated.Price)
	}
	want := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	if !updated.From.Equal(want) {
		t.Errorf("from: got %v, want %v", updated.From, want)
	}
	if updated.Location != "Lisbon" {
		t.Errorf("location: got %q; untouched fields must survive the merge", updated.Location)
	}
}

func TestRoomUpdateStripsProtectedFields(t *testing.T) {
	room := freshRoom()
	service := NewRoomService(newFakeRoomStore(room), noopTracer())

	patch := map[string]interface{}{
		"booked": true,
		"host":   map[string]interface{}{"email": "thief@stayvista.com"},
		"title":  "Still mine",
	}
	updated, err := service.Update(context.Background(), room.ID, patch, "host@stayvista.com", domain.Host)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Booked {
		t.Error("Update: availability must not change through the edit endpoint")
	}
	if updated.Host.Email != "host@stayvista.com" {
		t.Errorf("owner: got %q; ownership must not change through the edit endpoint", updated.Host.Email)
	}
	if updated.Title != "Still mine" {
		t.Errorf("title: got %q", updated.Title)
	}
}

func TestRoomUpdateOwnership(t *testing.T) {
	room := freshRoom()
	service := NewRoomService(newFakeRoomStore(room), noopTracer())

	_, err := service.Update(context.Background(), room.ID, map[string]interface{}{"title": "x"}, "other@stayvista.com", domain.Host)
	if err == nil || err.Error() != errors.NotRoomOwnerError {
		t.Fatalf("Update: got %v, want %q", err, errors.NotRoomOwnerError)
	}

	if _, err := service.Update(context.Background(), room.ID, map[string]interface{}{"title": "x"}, "admin@stayvista.com", domain.Admin); err != nil {
		t.Errorf("Update: admin override failed: %v", err)
	}
}

func TestRoomDeleteOwnership(t *testing.T) {
	room := freshRoom()
	store := newFakeRoomStore(room)
	service := NewRoomService(store, noopTracer())

	err := service.Delete(context.Background(), room.ID, "other@stayvista.com", domain.Guest)
	if err == nil || err.Error() != errors.NotRoomOwnerError {
		t.Fatalf("Delete: got %v, want %q", err, errors.NotRoomOwnerError)
	}

	if err := service.Delete(context.Background(), room.ID, "host@stayvista.com", domain.Host); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(store.rooms) != 0 {
		t.Error("Delete: room should be gone")
	}
}

func TestRoomDeleteUnknownID(t *testing.T) {
	service := NewRoomService(newFakeRoomStore(), noopTracer())

	err := service.Delete(context.Background(), primitive.NewObjectID(), "host@stayvista.com", domain.Host)
	if err == nil || err.Error() != errors.RoomNotFoundError {
		t.Fatalf("Delete: got %v, want %q", err, errors.RoomNotFoundError)
	}
}
