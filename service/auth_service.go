package application

import (
	"context"
	"fmt"
	"time"

	"github.com/rahe01/StayVista/authorization"
	"github.com/rahe01/StayVista/domain"
	"github.com/rahe01/StayVista/errors"
	"github.com/sirupsen/logrus"
)

type AuthService struct {
	users  domain.UserStore
	cache  domain.TokenCache
	logger *logrus.Logger
}

func NewAuthService(users domain.UserStore, cache domain.TokenCache, logger *logrus.Logger) *AuthService {
	return &AuthService{
		users:  users,
		cache:  cache,
		logger: logger,
	}
}

// IssueToken mints a session token for the given identity. The role claim
// comes from the directory record when one exists; a first-time sign-in
// gets the guest role.
func (service *AuthService) IssueToken(ctx context.Context, email string) (string, *domain.Claims, error) {
	if email == "" {
		return "", nil, fmt.Errorf(errors.InvalidRequestFormatError)
	}

	role := domain.Guest
	user, err := service.users.GetByEmail(ctx, email)
	if err == nil && user != nil && user.Role != "" {
		role = user.Role
	}

	return authorization.GenerateToken(email, role)
}

// Authenticate verifies the signature and validity window, then checks the
// denylist so a logged-out token stays dead for its remaining lifetime.
func (service *AuthService) Authenticate(ctx context.Context, tokenString string) (*domain.Claims, error) {
	claims, err := authorization.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	denied, err := service.cache.IsDenied(ctx, claims.TokenID)
	if err != nil {
		service.logger.Errorf("denylist lookup failed: %s", err)
		return nil, fmt.Errorf(errors.InvalidTokenError)
	}
	if denied {
		return nil, fmt.Errorf(errors.RevokedTokenError)
	}

	return claims, nil
}

// Logout pushes the token id onto the denylist for the token's remaining
// validity. A missing or broken cache degrades to best-effort client-side
// cookie deletion, which is logged, not surfaced.
func (service *AuthService) Logout(ctx context.Context, tokenString string) {
	claims, err := authorization.VerifyToken(tokenString)
	if err != nil {
		return
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return
	}

	if err := service.cache.Deny(ctx, claims.TokenID, ttl); err != nil {
		service.logger.Warnf("could not denylist token %s, falling back to cookie deletion: %s", claims.TokenID, err)
	}
}
