package gatehouse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"front-desk/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier delegando en gatehouse.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Identity, error) {
	if v == nil || v.client == nil {
		return auth.Identity{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Identity{}, ErrTokenEmpty
	}

	id, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		// El middleware decide si corta o no; acá solo normalizamos.
		return auth.Identity{}, fmt.Errorf("gatehouse verify failed: %w", err)
	}

	if strings.TrimSpace(id.UserID) == "" {
		return auth.Identity{}, errors.New("gatehouse claims missing user id")
	}
	return id, nil
}
