// Package service implements the outdoor registry and the reservation
// engine on top of the repositories. It owns transactional boundaries and
// translates storage failures into apperrors kinds.
package service

import (
	"errors"

	"github.com/iliyamo/outdoor-rental/internal/apperrors"
	"github.com/iliyamo/outdoor-rental/internal/repository"
)

// translate maps repository sentinels and MySQL error numbers onto
// apperrors kinds. AppErrors pass through untouched.
func translate(err error, storageMsg string) error {
	if err == nil {
		return nil
	}
	var ae *apperrors.AppError
	if errors.As(err, &ae) {
		return err
	}
	switch {
	case errors.Is(err, repository.ErrOutdoorNotFound):
		return apperrors.NewNotFoundError("outdoor not found")
	case errors.Is(err, repository.ErrReservationNotFound):
		return apperrors.NewNotFoundError("reservation not found")
	case repository.IsDuplicate(err):
		return &apperrors.AppError{Type: apperrors.ErrorTypeConflict, Message: "record already exists", Err: err}
	case repository.IsForeignKeyViolation(err):
		return &apperrors.AppError{Type: apperrors.ErrorTypeValidation, Message: "referenced record does not exist", Err: err}
	}
	return apperrors.NewStorageError(storageMsg, err)
}
