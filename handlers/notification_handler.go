package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rahe01/StayVista/domain"
	application "github.com/rahe01/StayVista/service"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type NotificationHandler struct {
	service *application.NotificationService
	tracer  trace.Tracer
}

func NewNotificationHandler(service *application.NotificationService, tracer trace.Tracer) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *NotificationHandler) Init(router *mux.Router, ac *AccessControl) {
	hostRouter := router.NewRoute().Subrouter()
	hostRouter.HandleFunc("/notifications/{email}", handler.GetByEmail).Methods("GET")
	hostRouter.Use(ac.Authenticate, ac.RequireRole(domain.Host))
}

func (handler *NotificationHandler) GetByEmail(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "NotificationHandler.GetByEmail")
	defer span.End()

	notifications, err := handler.service.GetByEmail(ctx, mux.Vars(req)["email"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(notifications, writer)
}
