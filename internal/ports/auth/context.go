package auth

import "context"

type ctxKey struct{}

// WithClaims deja las claims en el contexto. Los adapters de storage las leen
// para estampar user_id y reenviar el bearer token.
func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func ClaimsFrom(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(Claims)
	return c, ok
}
