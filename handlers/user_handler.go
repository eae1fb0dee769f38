package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rahe01/StayVista/domain"
	"github.com/rahe01/StayVista/errors"
	application "github.com/rahe01/StayVista/service"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type UserHandler struct {
	service *application.UserService
	tracer  trace.Tracer
}

func NewUserHandler(service *application.UserService, tracer trace.Tracer) *UserHandler {
	return &UserHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *UserHandler) Init(router *mux.Router, ac *AccessControl) {
	router.HandleFunc("/user", handler.Upsert).Methods("PUT")
	router.HandleFunc("/user/{email}", handler.Get).Methods("GET")

	adminRouter := router.NewRoute().Subrouter()
	adminRouter.HandleFunc("/users", handler.GetAll).Methods("GET")
	adminRouter.Use(ac.Authenticate, ac.RequireRole(domain.Admin))

	updateRouter := router.NewRoute().Subrouter()
	updateRouter.HandleFunc("/users/update/{email}", handler.UpdateRole).Methods("PATCH")
	updateRouter.Use(ac.Authenticate)
}

func (handler *UserHandler) Upsert(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Upsert")
	defer span.End()

	var user domain.User
	if err := user.FromJSON(req.Body); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}
	if user.Email == "" {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	saved, err := handler.service.Upsert(ctx, &user)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
	jsonResponse(saved, writer)
}

func (handler *UserHandler) GetAll(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.GetAll")
	defer span.End()

	users, err := handler.service.GetAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(users, writer)
}

func (handler *UserHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Get")
	defer span.End()

	vars := mux.Vars(req)
	user, err := handler.service.GetByEmail(ctx, vars["email"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusNotFound)
		return
	}
	jsonResponse(user, writer)
}

type roleUpdateRequest struct {
	Role   domain.Role   `json:"role"`
	Status domain.Status `json:"status"`
}

func (handler *UserHandler) UpdateRole(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.UpdateRole")
	defer span.End()

	claims, ok := claimsFrom(req)
	if !ok {
		http.Error(writer, "unauthorized access", http.StatusUnauthorized)
		return
	}

	var request roleUpdateRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	vars := mux.Vars(req)
	updated, err := handler.service.UpdateRole(ctx, claims.Email, vars["email"], request.Role, request.Status)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch err.Error() {
		case errors.SelfRoleChangeError:
			http.Error(writer, err.Error(), http.StatusForbidden)
		case errors.UserNotFoundError:
			http.Error(writer, err.Error(), http.StatusNotFound)
		default:
			http.Error(writer, err.Error(), http.StatusBadRequest)
		}
		return
	}
	jsonResponse(updated, writer)
}
