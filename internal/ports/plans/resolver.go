package plans

import "context"

// Resolver traduce el plan de una cuenta a su cupo de mascotas.
type Resolver interface {
	PetLimit(ctx context.Context, plan string) (int, error)
}
