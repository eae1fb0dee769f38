package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rahe01/StayVista/domain"
	application "github.com/rahe01/StayVista/service"
)

func statRequest(email string, role domain.Role) *http.Request {
	req := httptest.NewRequest("GET", "/host-stat", nil)
	claims := &domain.Claims{Email: email, Role: role}
	return req.WithContext(context.WithValue(req.Context(), KeyClaims{}, claims))
}

func TestHostStatsUnknownIdentityIsNotFound(t *testing.T) {
	users := &stubUserStore{users: make(map[string]*domain.User)}
	service := application.NewStatService(&stubBookingStore{bookings: nil}, &stubRoomStore{}, users, noopTracer())
	handler := NewStatHandler(service, noopTracer())

	rec := httptest.NewRecorder()
	handler.HostStats(rec, statRequest("ghost@stayvista.com", domain.Host))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGuestStatsUnknownIdentityIsNotFound(t *testing.T) {
	users := &stubUserStore{users: make(map[string]*domain.User)}
	service := application.NewStatService(&stubBookingStore{bookings: nil}, &stubRoomStore{}, users, noopTracer())
	handler := NewStatHandler(service, noopTracer())

	rec := httptest.NewRecorder()
	handler.GuestStats(rec, statRequest("ghost@stayvista.com", domain.Guest))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHostStatsKnownHost(t *testing.T) {
	users := &stubUserStore{users: map[string]*domain.User{
		"host@stayvista.com": {Email: "host@stayvista.com", Role: domain.Host, Timestamp: 1700000000000},
	}}
	service := application.NewStatService(&stubBookingStore{bookings: nil}, &stubRoomStore{}, users, noopTracer())
	handler := NewStatHandler(service, noopTracer())

	rec := httptest.NewRecorder()
	handler.HostStats(rec, statRequest("host@stayvista.com", domain.Host))

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}
