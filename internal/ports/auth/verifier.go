package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// IdentityProvider hace el intercambio email/password por token.
// No hay refresh: la sesión dura hasta que falla o el usuario sale.
type IdentityProvider interface {
	Login(ctx context.Context, email, password string) (Session, error)
	Signup(ctx context.Context, email, password string) error
}
