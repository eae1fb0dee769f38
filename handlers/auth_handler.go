package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rahe01/StayVista/domain"
	application "github.com/rahe01/StayVista/service"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type AuthHandler struct {
	service *application.AuthService
	tracer  trace.Tracer
}

func NewAuthHandler(service *application.AuthService, tracer trace.Tracer) *AuthHandler {
	return &AuthHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *AuthHandler) Init(router *mux.Router) {
	router.HandleFunc("/jwt", handler.CreateToken).Methods("POST")
	router.HandleFunc("/logout", handler.Logout).Methods("GET")
}

// CreateToken mints the session cookie for a signed-in identity.
func (handler *AuthHandler) CreateToken(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.CreateToken")
	defer span.End()

	var identity domain.User
	err := json.NewDecoder(req.Body).Decode(&identity)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	token, _, err := handler.service.IssueToken(ctx, identity.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	http.SetCookie(writer, sessionCookie(token))
	jsonResponse(map[string]bool{"success": true}, writer)
}

// Logout denylists the presented token and clears the cookie. A request
// without a cookie still clears; there is nothing to revoke.
func (handler *AuthHandler) Logout(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Logout")
	defer span.End()

	if cookie, err := req.Cookie("token"); err == nil && cookie.Value != "" {
		handler.service.Logout(ctx, cookie.Value)
	}

	expired := sessionCookie("")
	expired.MaxAge = -1
	http.SetCookie(writer, expired)
	jsonResponse(map[string]bool{"success": true}, writer)
}

// Production needs SameSite=None so the cookie crosses sites; anywhere else
// Strict keeps local development honest.
func sessionCookie(token string) *http.Cookie {
	production := os.Getenv("ENV") == "production"

	cookie := &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteStrictMode,
	}
	if production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
