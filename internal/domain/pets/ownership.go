package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"petcontrol/internal/errs"
)

// RequireOwned valida que petID exista y sea de la cuenta de la sesión.
// Lo usan care y medications antes de insertar registros dependientes.
func (s *Service) RequireOwned(ctx context.Context, petID string) error {
	if strings.TrimSpace(petID) == "" {
		return errs.Invalid("pet_id", "pet is required")
	}
	if _, err := s.Get(ctx, petID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.Invalid("pet_id", fmt.Sprintf("pet %s not found", petID))
		}
		return err
	}
	return nil
}
