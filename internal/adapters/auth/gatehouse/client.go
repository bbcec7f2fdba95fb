package gatehouse

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"front-desk/internal/platform/httpclient"
	"front-desk/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("gatehouse client not configured")
	ErrUnauthorized  = errors.New("gatehouse unauthorized")
	ErrUpstream      = errors.New("gatehouse upstream error")
)

// Config del cliente gatehouse. BaseURL y APIKey vienen de env en quien
// lo instancie (main).
type Config struct {
	BaseURL string
	APIKey  string

	// Header de la API key; vacío => "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// VerifyToken llama a gatehouse para verificar un token y traer la
// identidad del usuario.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Identity, error) {
	if !c.IsConfigured() {
		return auth.Identity{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Identity{}, ErrUnauthorized
	}

	var out struct {
		UserID        string `json:"user_id"`
		Name          string `json:"name"`
		Role          string `json:"role"`
		DestinationID *int64 `json:"destination_id"`
	}

	err := c.http.DoJSON(ctx, http.MethodPost, "/v1/tokens/verify",
		map[string]string{
			c.apiKeyHeader:  c.apiKey,
			"Authorization": "Bearer " + token,
		},
		map[string]string{"token": token},
		&out,
	)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return auth.Identity{}, ErrUnauthorized
			}
			return auth.Identity{}, fmt.Errorf("%w: status=%d", ErrUpstream, httpErr.StatusCode)
		}
		return auth.Identity{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Identity{}, errors.New("gatehouse response missing user_id")
	}

	return auth.Identity{
		UserID:            out.UserID,
		DisplayName:       strings.TrimSpace(out.Name),
		Role:              auth.ParseRole(out.Role),
		HomeDestinationID: out.DestinationID,
	}, nil
}
