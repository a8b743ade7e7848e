package gotrue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"petcontrol/internal/errs"
	"petcontrol/internal/platform/httpclient"
	"petcontrol/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("gotrue client not configured")
)

// Config del cliente GoTrue (auth de Supabase).
type Config struct {
	BaseURL string // https://<proyecto>.supabase.co
	APIKey  string // anon key

	Timeout time.Duration
	Log     *zap.Logger
}

type Client struct {
	http *httpclient.Client
	now  func() time.Time
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	key := strings.TrimSpace(cfg.APIKey)
	if base == "" || key == "" {
		return nil, ErrNotConfigured
	}

	hc, err := httpclient.NewWithBaseURL(base+"/auth/v1", cfg.Timeout)
	if err != nil {
		return nil, err
	}
	hc.Headers = map[string]string{"apikey": key}
	if cfg.Log != nil {
		hc.Log = cfg.Log
	}
	return &Client{http: hc, now: time.Now}, nil
}

var _ auth.IdentityProvider = (*Client)(nil)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type user struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	ExpiresAt   int64  `json:"expires_at"`
	User        user   `json:"user"`
}

// Login cambia email/password por un access token.
func (c *Client) Login(ctx context.Context, email, password string) (auth.Session, error) {
	var out tokenResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/token?grant_type=password", nil,
		credentials{Email: email, Password: password}, &out)
	if err != nil {
		return auth.Session{}, upstream("login", err)
	}
	if out.AccessToken == "" || out.User.ID == "" {
		return auth.Session{}, fmt.Errorf("%w: login: incomplete token response", errs.ErrUpstream)
	}

	s := auth.Session{
		AccessToken: out.AccessToken,
		UserID:      out.User.ID,
		Email:       out.User.Email,
	}
	switch {
	case out.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(out.ExpiresAt, 0).UTC()
	case out.ExpiresIn > 0:
		s.ExpiresAt = c.now().Add(time.Duration(out.ExpiresIn) * time.Second).UTC()
	}
	return s, nil
}

// Signup crea la cuenta en el proveedor. El gate de perfiles se aplica antes, en accounts.
func (c *Client) Signup(ctx context.Context, email, password string) error {
	err := c.http.DoJSON(ctx, http.MethodPost, "/signup", nil,
		credentials{Email: email, Password: password}, nil)
	if err != nil {
		return upstream("signup", err)
	}
	return nil
}

// GetUser resuelve la cuenta dueña del token.
func (c *Client) GetUser(ctx context.Context, token string) (auth.Claims, error) {
	var out user
	err := c.http.DoJSON(ctx, http.MethodGet, "/user",
		map[string]string{"Authorization": "Bearer " + token}, nil, &out)
	if err != nil {
		return auth.Claims{}, upstream("get user", err)
	}
	if strings.TrimSpace(out.ID) == "" {
		return auth.Claims{}, errs.ErrUnauthorized
	}
	return auth.Claims{UserID: out.ID, Email: out.Email, AccessToken: token}, nil
}

func upstream(op string, err error) error {
	switch httpclient.StatusCode(err) {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusUnprocessableEntity:
		// credenciales inválidas / email ya registrado / token vencido
		return fmt.Errorf("%s: %w", op, &errs.AuthorizationError{Message: "invalid credentials or session"})
	default:
		return fmt.Errorf("%w: %s: %v", errs.ErrUpstream, op, err)
	}
}
