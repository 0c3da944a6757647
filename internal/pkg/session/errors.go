package session

import (
	"errors"

	xerrors "carsales-service/internal/pkg/errors"
)

// a second logout with the same token hits the unique jti index
func isConflict(err error) bool {
	return errors.Is(err, xerrors.ErrConflict)
}
