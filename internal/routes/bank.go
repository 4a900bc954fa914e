package routes

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ewallet/ewallet/internal/bank"
)

type bankResponse struct {
	ID            int64  `json:"id"`
	AccountNumber string `json:"account_number"`
	PhoneNumber   string `json:"phone_number"`
	Balance       int64  `json:"balance"`
	Currency      string `json:"currency"`
	UserID        int64  `json:"user_id"`
}

// RegisterBankRoutes wires bank account endpoints keyed by owning user.
func RegisterBankRoutes(r fiber.Router, banks *bank.Service) {
	r.Get("/banks/user/:userId", func(c *fiber.Ctx) error {
		userID, err := parseUserID(c)
		if err != nil {
			return err
		}
		account, err := banks.GetByUserID(c.UserContext(), userID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(bankResponse{
			ID:            account.ID,
			AccountNumber: account.AccountNumber,
			PhoneNumber:   account.PhoneNumber,
			Balance:       account.Balance,
			Currency:      account.Currency,
			UserID:        account.UserID,
		})
	})

	r.Delete("/banks/user/:userId", func(c *fiber.Ctx) error {
		userID, err := parseUserID(c)
		if err != nil {
			return err
		}
		if err := banks.DeleteByUserID(c.UserContext(), userID); err != nil {
			return httpError(err)
		}
		return c.SendStatus(http.StatusNoContent)
	})
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid user id")
	}
	return id, nil
}
