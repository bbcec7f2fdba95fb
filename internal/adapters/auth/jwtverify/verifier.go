package jwtverify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"front-desk/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Verifier valida localmente los tokens HS256 que emite el servicio de
// autenticación (gatehouse), compartiendo el secreto de firma. Evita un
// round-trip por request cuando ambos servicios comparten despliegue.
type Verifier struct {
	secret []byte
}

func New(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// tokenClaims replica el payload que firma gatehouse.
type tokenClaims struct {
	UserID        int64  `json:"id"`
	Role          string `json:"role"`
	DestinationID *int64 `json:"destinationId"`
	Name          string `json:"name"`

	jwt.RegisteredClaims
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Identity{}, ErrTokenEmpty
	}

	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return auth.Identity{}, ErrTokenInvalid
	}

	if claims.UserID <= 0 {
		return auth.Identity{}, fmt.Errorf("%w: missing user id", ErrTokenInvalid)
	}

	return auth.Identity{
		UserID:            strconv.FormatInt(claims.UserID, 10),
		DisplayName:       strings.TrimSpace(claims.Name),
		Role:              auth.ParseRole(claims.Role),
		HomeDestinationID: claims.DestinationID,
	}, nil
}
