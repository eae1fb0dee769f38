package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rahe01/StayVista/domain"
	"github.com/rahe01/StayVista/errors"
	application "github.com/rahe01/StayVista/service"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type StatHandler struct {
	service *application.StatService
	tracer  trace.Tracer
}

func NewStatHandler(service *application.StatService, tracer trace.Tracer) *StatHandler {
	return &StatHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *StatHandler) Init(router *mux.Router, ac *AccessControl) {
	adminRouter := router.NewRoute().Subrouter()
	adminRouter.HandleFunc("/admin-stat", handler.AdminStats).Methods("GET")
	adminRouter.Use(ac.Authenticate, ac.RequireRole(domain.Admin))

	hostRouter := router.NewRoute().Subrouter()
	hostRouter.HandleFunc("/host-stat", handler.HostStats).Methods("GET")
	hostRouter.Use(ac.Authenticate, ac.RequireRole(domain.Host))

	guestRouter := router.NewRoute().Subrouter()
	guestRouter.HandleFunc("/guest-stat", handler.GuestStats).Methods("GET")
	guestRouter.Use(ac.Authenticate)
}

func (handler *StatHandler) AdminStats(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "StatHandler.AdminStats")
	defer span.End()

	stats, err := handler.service.AdminStats(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(stats, writer)
}

// HostStats and GuestStats scope to the caller's own email, taken from the
// token claims rather than the request.
func (handler *StatHandler) HostStats(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "StatHandler.HostStats")
	defer span.End()

	claims, ok := claimsFrom(req)
	if !ok {
		http.Error(writer, errors.UnauthorizedError, http.StatusUnauthorized)
		return
	}

	stats, err := handler.service.HostStats(ctx, claims.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if err.Error() == errors.UserNotFoundError {
			http.Error(writer, err.Error(), http.StatusNotFound)
			return
		}
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(stats, writer)
}

func (handler *StatHandler) GuestStats(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "StatHandler.GuestStats")
	defer span.End()

	claims, ok := claimsFrom(req)
	if !ok {
		http.Error(writer, errors.UnauthorizedError, http.StatusUnauthorized)
		return
	}

	stats, err := handler.service.GuestStats(ctx, claims.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if err.Error() == errors.UserNotFoundError {
			http.Error(writer, err.Error(), http.StatusNotFound)
			return
		}
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(stats, writer)
}
