package routes

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ewallet/ewallet/internal/bank"
	"github.com/ewallet/ewallet/internal/identity"
	"github.com/ewallet/ewallet/internal/wallet"
)

// httpError translates service failures into the API error taxonomy:
// validation 400, duplicate identity 409, not found 404, everything else a
// server fault.
func httpError(err error) error {
	var verr *identity.ValidationError
	if errors.As(err, &verr) {
		return fiber.NewError(http.StatusBadRequest, verr.Error())
	}
	var derr *identity.DuplicateError
	if errors.As(err, &derr) {
		return fiber.NewError(http.StatusConflict, derr.Error())
	}
	switch {
	case errors.Is(err, bank.ErrDuplicateAccountNumber),
		errors.Is(err, bank.ErrDuplicatePhone),
		errors.Is(err, wallet.ErrDuplicateWallet):
		return fiber.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, identity.ErrNotFound),
		errors.Is(err, bank.ErrNotFound),
		errors.Is(err, wallet.ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	}
	return fiber.NewError(http.StatusInternalServerError, err.Error())
}
