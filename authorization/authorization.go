package authorization

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cristalhq/jwt/v4"
	"github.com/google/uuid"
	"github.com/rahe01/StayVista/domain"
	"github.com/rahe01/StayVista/errors"
)

// Tokens stay valid for a year; a logout before that lands the token id on
// the denylist instead.
const TokenValidity = 365 * 24 * time.Hour

var jwtKey = secretKey()

var verifier, _ = jwt.NewVerifierHS(jwt.HS256, jwtKey)

// secretKey reads SECRET_KEY; local runs without the env set fall back to a
// fixed dev key.
func secretKey() []byte {
	if key := os.Getenv("SECRET_KEY"); key != "" {
		return []byte(key)
	}
	return []byte("stayvista-dev-secret")
}

func GenerateToken(email string, role domain.Role) (string, *domain.Claims, error) {
	signer, err := jwt.NewSignerHS(jwt.HS256, jwtKey)
	if err != nil {
		log.Println(err)
		return "", nil, err
	}

	builder := jwt.NewBuilder(signer)

	now := time.Now()
	claims := &domain.Claims{
		Email:     email,
		Role:      role,
		TokenID:   uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(TokenValidity),
	}

	token, err := builder.Build(claims)
	if err != nil {
		log.Println(err)
		return "", nil, err
	}

	return token.String(), claims, nil
}

// VerifyToken checks the signature and the validity window. The denylist
// lookup happens one level up, in the auth service.
func VerifyToken(tokenString string) (*domain.Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf(errors.InvalidTokenError)
	}

	var claims domain.Claims
	err := jwt.ParseClaims([]byte(tokenString), verifier, &claims)
	if err != nil {
		return nil, fmt.Errorf(errors.InvalidTokenError)
	}

	if time.Now().After(claims.ExpiresAt) {
		return nil, fmt.Errorf(errors.ExpiredTokenError)
	}

	return &claims, nil
}
