package casbinAuthorization

import (
	"net/http"

	"github.com/casbin/casbin"
	"github.com/rahe01/StayVista/authorization"
	"github.com/sirupsen/logrus"
)

// extractUserRole reads the session cookie. Requests without a cookie are
// not rejected here; they carry the Unauthenticated pseudo-role and the
// policy decides which routes that role may reach.
func extractUserRole(r *http.Request) (string, error) {
	cookie, err := r.Cookie("token")
	if err != nil || cookie.Value == "" {
		return "Unauthenticated", nil
	}

	claims, err := authorization.VerifyToken(cookie.Value)
	if err != nil {
		return "", err
	}

	return string(claims.Role), nil
}

func CasbinMiddleware(e *casbin.Enforcer, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			userRole, err := extractUserRole(r)
			if err != nil {
				logger.Error("Unauthorized access attempt")
				http.Error(w, "unauthorized access", http.StatusUnauthorized)
				return
			}

			res, err := e.EnforceSafe(userRole, r.URL.Path, r.Method)
			if err != nil {
				logger.Error("Error enforcing authorization policy")
				http.Error(w, "unauthorized access", http.StatusUnauthorized)
				return
			}

			if res {
				next.ServeHTTP(w, r)
			} else if userRole == "Unauthenticated" {
				logger.Warn("Unauthorized access attempt: no session")
				http.Error(w, "unauthorized access", http.StatusUnauthorized)
				return
			} else {
				logger.Warn("Unauthorized access attempt: forbidden")
				http.Error(w, "forbidden access", http.StatusForbidden)
				return
			}
		}

		return http.HandlerFunc(fn)
	}
}
