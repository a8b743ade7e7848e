package gotrue

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"petcontrol/internal/errs"
	"petcontrol/internal/ports/auth"
)

// Verifier implementa auth.AuthVerifier: rechaza localmente tokens vencidos
// y resuelve el resto contra GET /user.
type Verifier struct {
	client *Client
	parser *jwt.Parser
	now    func() time.Time
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client, parser: jwt.NewParser(), now: time.Now}
}

var _ auth.AuthVerifier = (*Verifier)(nil)

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, errs.ErrUnauthorized
	}
	if v.expired(token) {
		return auth.Claims{}, &errs.AuthorizationError{Message: "session expired, please log in again"}
	}
	return v.client.GetUser(ctx, token)
}

// expired solo mira exp; la firma la valida el proveedor.
func (v *Verifier) expired(token string) bool {
	var rc jwt.RegisteredClaims
	if _, _, err := v.parser.ParseUnverified(token, &rc); err != nil {
		return false
	}
	return rc.ExpiresAt != nil && rc.ExpiresAt.Time.Before(v.now())
}
