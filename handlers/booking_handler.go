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

type BookingHandler struct {
	service  *application.BookingService
	payments *application.PaymentService
	tracer   trace.Tracer
}

func NewBookingHandler(service *application.BookingService, payments *application.PaymentService, tracer trace.Tracer) *BookingHandler {
	return &BookingHandler{
		service:  service,
		payments: payments,
		tracer:   tracer,
	}
}

func (handler *BookingHandler) Init(router *mux.Router, ac *AccessControl) {
	authRouter := router.NewRoute().Subrouter()
	authRouter.HandleFunc("/create-payment-intent", handler.CreatePaymentIntent).Methods("POST")
	authRouter.HandleFunc("/booking", handler.Create).Methods("POST")
	authRouter.HandleFunc("/my-bookings/{email}", handler.GetByGuest).Methods("GET")
	authRouter.HandleFunc("/booking/{id}", handler.Delete).Methods("DELETE")
	authRouter.Use(ac.Authenticate)

	hostRouter := router.NewRoute().Subrouter()
	hostRouter.HandleFunc("/manage-bookings/{email}", handler.GetByHost).Methods("GET")
	hostRouter.Use(ac.Authenticate, ac.RequireRole(domain.Host))
}

type paymentIntentRequest struct {
	Price float64 `json:"price"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

func (handler *BookingHandler) CreatePaymentIntent(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.CreatePaymentIntent")
	defer span.End()

	var request paymentIntentRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	clientSecret, err := handler.payments.CreatePaymentIntent(ctx, request.Price)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if err.Error() == errors.InvalidPriceError {
			http.Error(writer, err.Error(), http.StatusBadRequest)
		} else {
			http.Error(writer, err.Error(), http.StatusBadGateway)
		}
		return
	}
	jsonResponse(paymentIntentResponse{ClientSecret: clientSecret}, writer)
}

func (handler *BookingHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Create")
	defer span.End()

	var booking domain.Booking
	if err := booking.FromJSON(req.Body); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(ctx, &booking)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch err.Error() {
		case errors.RoomAlreadyBookedError:
			http.Error(writer, err.Error(), http.StatusConflict)
		case errors.RoomNotFoundError:
			http.Error(writer, err.Error(), http.StatusNotFound)
		case errors.InvalidRequestFormatError:
			http.Error(writer, err.Error(), http.StatusBadRequest)
		default:
			http.Error(writer, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	jsonResponse(created, writer)
}

func (handler *BookingHandler) GetByGuest(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.GetByGuest")
	defer span.End()

	bookings, err := handler.service.GetByGuest(ctx, mux.Vars(req)["email"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(bookings, writer)
}

func (handler *BookingHandler) GetByHost(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.GetByHost")
	defer span.End()

	bookings, err := handler.service.GetByHost(ctx, mux.Vars(req)["email"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(bookings, writer)
}

func (handler *BookingHandler) Delete(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Delete")
	defer span.End()

	claims, ok := claimsFrom(req)
	if !ok {
		http.Error(writer, errors.UnauthorizedError, http.StatusUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(req)["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Invalid booking ID", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, id, claims.Email, claims.Role); err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch err.Error() {
		case errors.NotBookingOwnerError:
			http.Error(writer, err.Error(), http.StatusForbidden)
		case errors.BookingNotFoundError:
			http.Error(writer, err.Error(), http.StatusNotFound)
		default:
			http.Error(writer, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	jsonResponse(map[string]bool{"success": true}, writer)
}
