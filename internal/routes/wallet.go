package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ewallet/ewallet/internal/wallet"
)

type walletResponse struct {
	ID          int64  `json:"id"`
	PhoneNumber string `json:"phone_number"`
	Balance     int64  `json:"balance"`
	Currency    string `json:"currency"`
	UserID      int64  `json:"user_id"`
}

// RegisterWalletRoutes wires wallet endpoints keyed by owning user.
func RegisterWalletRoutes(r fiber.Router, wallets *wallet.Service) {
	r.Get("/wallets/user/:userId", func(c *fiber.Ctx) error {
		userID, err := parseUserID(c)
		if err != nil {
			return err
		}
		w, err := wallets.GetByUserID(c.UserContext(), userID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(walletResponse{
			ID:          w.ID,
			PhoneNumber: w.PhoneNumber,
			Balance:     w.Balance,
			Currency:    w.Currency,
			UserID:      w.UserID,
		})
	})

	r.Delete("/wallets/user/:userId", func(c *fiber.Ctx) error {
		userID, err := parseUserID(c)
		if err != nil {
			return err
		}
		if err := wallets.DeleteByUserID(c.UserContext(), userID); err != nil {
			return httpError(err)
		}
		return c.SendStatus(http.StatusNoContent)
	})
}
