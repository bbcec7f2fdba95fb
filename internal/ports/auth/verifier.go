package auth

import "context"

// AuthVerifier verifica un token bearer y devuelve la identidad o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}
