package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rahe01/StayVista/domain"
	"github.com/rahe01/StayVista/errors"
	application "github.com/rahe01/StayVista/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type RoomHandler struct {
	service *application.RoomService
	tracer  trace.Tracer
}

func NewRoomHandler(service *application.RoomService, tracer trace.Tracer) *RoomHandler {
	return &RoomHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *RoomHandler) Init(router *mux.Router, ac *AccessControl) {
	router.HandleFunc("/rooms", handler.GetAll).Methods("GET")
	router.HandleFunc("/room/{id}", handler.Get).Methods("GET")

	hostRouter := router.NewRoute().Subrouter()
	hostRouter.HandleFunc("/room", handler.Create).Methods("POST")
	// The route spelling is what the dashboard calls.
	hostRouter.HandleFunc("/roommm/{id}", handler.Delete).Methods("DELETE")
	hostRouter.HandleFunc("/my-listings/{email}", handler.GetByHost).Methods("GET")
	hostRouter.HandleFunc("/room/update/{id}", handler.Update).Methods("PUT")
	hostRouter.Use(ac.Authenticate, ac.RequireRole(domain.Host))

	statusRouter := router.NewRoute().Subrouter()
	statusRouter.HandleFunc("/room/status/{id}", handler.SetBooked).Methods("PATCH")
	statusRouter.Use(ac.Authenticate)
}

func (handler *RoomHandler) GetAll(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.GetAll")
	defer span.End()

	category := req.URL.Query().Get("category")
	rooms, err := handler.service.GetAll(ctx, category)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(rooms, writer)
}

func (handler *RoomHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.Get")
	defer span.End()

	id, err := primitive.ObjectIDFromHex(mux.Vars(req)["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Invalid room ID", http.StatusBadRequest)
		return
	}

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusNotFound)
		return
	}
	jsonResponse(room, writer)
}

func (handler *RoomHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.Create")
	defer span.End()

	claims, ok := claimsFrom(req)
	if !ok {
		http.Error(writer, "unauthorized access", http.StatusUnauthorized)
		return
	}

	var room domain.Room
	if err := room.FromJSON(req.Body); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(ctx, &room, claims.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}
	jsonResponse(created, writer)
}

func (handler *RoomHandler) GetByHost(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.GetByHost")
	defer span.End()

	rooms, err := handler.service.GetByHost(ctx, mux.Vars(req)["email"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(rooms, writer)
}

func (handler *RoomHandler) Update(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.Update")
	defer span.End()

	claims, ok := claimsFrom(req)
	if !ok {
		http.Error(writer, "unauthorized access", http.StatusUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(req)["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Invalid room ID", http.StatusBadRequest)
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&patch); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(ctx, id, patch, claims.Email, claims.Role)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch err.Error() {
		case errors.NotRoomOwnerError:
			http.Error(writer, err.Error(), http.StatusForbidden)
		case errors.RoomNotFoundError:
			http.Error(writer, err.Error(), http.StatusNotFound)
		default:
			http.Error(writer, err.Error(), http.StatusBadRequest)
		}
		return
	}
	jsonResponse(updated, writer)
}

type bookedStatusRequest struct {
	Status bool `json:"status"`
}

func (handler *RoomHandler) SetBooked(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.SetBooked")
	defer span.End()

	id, err := primitive.ObjectIDFromHex(mux.Vars(req)["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Invalid room ID", http.StatusBadRequest)
		return
	}

	var request bookedStatusRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	if err := handler.service.SetBooked(ctx, id, request.Status); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusNotFound)
		return
	}
	jsonResponse(map[string]bool{"success": true}, writer)
}

func (handler *RoomHandler) Delete(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.Delete")
	defer span.End()

	claims, ok := claimsFrom(req)
	if !ok {
		http.Error(writer, "unauthorized access", http.StatusUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(req)["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Invalid room ID", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, id, claims.Email, claims.Role); err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch err.Error() {
		case errors.NotRoomOwnerError:
			http.Error(writer, err.Error(), http.StatusForbidden)
		case errors.RoomNotFoundError:
			http.Error(writer, err.Error(), http.StatusNotFound)
		default:
			http.Error(writer, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	jsonResponse(map[string]bool{"success": true}, writer)
}
