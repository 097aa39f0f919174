package application

import (
	"errors"
	"fmt"

	"github.com/oksasatya/go-user-admin/internal/domain/repository"
)

// ErrConflict classifies every error that must surface as a conflict.
var ErrConflict = errors.New("conflict")

// ConflictError is a conflict with a caller-facing reason.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string        { return e.Reason }
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

var (
	ErrEmailExists        error = &ConflictError{Reason: "email already exists"}
	ErrRolesSystemManaged error = &ConflictError{Reason: "roles are system-managed and cannot be modified"}
)

// asConflict reclassifies storage uniqueness violations; other errors pass through unchanged.
func asConflict(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
