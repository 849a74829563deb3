// file: internals/helpers/apperr.go
package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Taksonomi error service layer. Controller tidak pernah menerima error mentah
// dari infrastruktur tanpa dipetakan lewat salah satu sentinel ini, kecuali
// kegagalan storage (dibiarkan naik sebagai 500).
var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInvalidState        = errors.New("invalid state transition")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// FromServiceError memetakan sentinel service ke *fiber.Error dengan status
// yang konsisten di semua endpoint settlement.
func FromServiceError(err error, msg string) error {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, msg)
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, msg)
	case errors.Is(err, ErrConflict):
		return fiber.NewError(fiber.StatusConflict, msg)
	case errors.Is(err, ErrInvalidState):
		return fiber.NewError(fiber.StatusConflict, msg)
	case errors.Is(err, ErrInsufficientBalance):
		return fiber.NewError(fiber.StatusBadRequest, msg)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, msg)
	}
}
