package handlers

import (
	"context"
	"net/http"

	"github.com/rahe01/StayVista/domain"
	application "github.com/rahe01/StayVista/service"
	"github.com/sirupsen/logrus"
)

// AccessControl is the per-request guard chain: authentication first, then
// the authoritative role check against the user directory. The role inside
// the token is only a hint; the directory decides.
type AccessControl struct {
	auth   *application.AuthService
	users  domain.UserStore
	logger *logrus.Logger
}

func NewAccessControl(auth *application.AuthService, users domain.UserStore, logger *logrus.Logger) *AccessControl {
	return &AccessControl{
		auth:   auth,
		users:  users,
		logger: logger,
	}
}

func (ac *AccessControl) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
		cookie, err := req.Cookie("token")
		if err != nil || cookie.Value == "" {
			http.Error(writer, "unauthorized access", http.StatusUnauthorized)
			return
		}

		claims, err := ac.auth.Authenticate(req.Context(), cookie.Value)
		if err != nil {
			ac.logger.Warnf("rejected token: %s", err)
			http.Error(writer, "unauthorized access", http.StatusUnauthorized)
			return
		}

		// The role baked into the token goes stale over its lifetime; the
		// directory is authoritative for everything downstream.
		if user, err := ac.users.GetByEmail(req.Context(), claims.Email); err == nil && user != nil {
			claims.Role = user.Role
		}

		ctx := context.WithValue(req.Context(), KeyClaims{}, claims)
		next.ServeHTTP(writer, req.WithContext(ctx))
	})
}

func (ac *AccessControl) RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
			claims, ok := claimsFrom(req)
			if !ok {
				http.Error(writer, "unauthorized access", http.StatusUnauthorized)
				return
			}

			user, err := ac.users.GetByEmail(req.Context(), claims.Email)
			if err != nil || user == nil {
				ac.logger.Warnf("forbidden: no directory record for %s", claims.Email)
				http.Error(writer, "forbidden access", http.StatusForbidden)
				return
			}
			// Admins may do anything a host may do.
			if user.Role != role && user.Role != domain.Admin {
				ac.logger.Warnf("forbidden: %s is not %s", claims.Email, role)
				http.Error(writer, "forbidden access", http.StatusForbidden)
				return
			}

			next.ServeHTTP(writer, req)
		})
	}
}
