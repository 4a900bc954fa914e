package routes

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ewallet/ewallet/internal/identity"
)

type userRequest struct {
	Name            string `json:"name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	CountryCode     string `json:"country_code"`
	PhoneNumber     string `json:"phone_number"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// RegisterUserRoutes wires the user provisioning and lookup endpoints.
func RegisterUserRoutes(r fiber.Router, users *identity.Service) {
	r.Post("/users", func(c *fiber.Ctx) error {
		var req userRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		projection, err := users.Provision(c.UserContext(), identity.RegistrationInput{
			Name:            req.Name,
			Username:        req.Username,
			Email:           req.Email,
			CountryCode:     req.CountryCode,
			PhoneNumber:     req.PhoneNumber,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
		})
		if err != nil {
			return httpError(err)
		}
		return c.Status(http.StatusCreated).JSON(projection)
	})

	r.Get("/users", func(c *fiber.Ctx) error {
		projections, err := users.List(c.UserContext())
		if err != nil {
			return httpError(err)
		}
		return c.JSON(projections)
	})

	// Static segments before the /users/:id wildcard.
	r.Get("/users/email/:email", func(c *fiber.Ctx) error {
		projection, err := users.GetByEmail(c.UserContext(), c.Params("email"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(projection)
	})

	r.Get("/users/username/:username", func(c *fiber.Ctx) error {
		projection, err := users.GetByUsername(c.UserContext(), c.Params("username"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(projection)
	})

	r.Get("/users/phone/:phone", func(c *fiber.Ctx) error {
		projection, err := users.GetByPhone(c.UserContext(), c.Params("phone"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(projection)
	})

	r.Get("/users/lookup", func(c *fiber.Ctx) error {
		username := c.Query("username")
		phone := c.Query("phone")
		if username == "" || phone == "" {
			return fiber.NewError(http.StatusBadRequest, "username and phone are required")
		}
		projection, err := users.GetByUsernameAndPhone(c.UserContext(), username, phone)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(projection)
	})

	r.Get("/users/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		projection, err := users.GetByID(c.UserContext(), id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(projection)
	})

	r.Put("/users/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var req userRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		projection, err := users.Update(c.UserContext(), id, identity.UpdateInput{
			Name:            req.Name,
			Username:        req.Username,
			Email:           req.Email,
			CountryCode:     req.CountryCode,
			PhoneNumber:     req.PhoneNumber,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
		})
		if err != nil {
			return httpError(err)
		}
		return c.JSON(projection)
	})

	r.Delete("/users/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := users.Delete(c.UserContext(), id); err != nil {
			return httpError(err)
		}
		return c.SendStatus(http.StatusNoContent)
	})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid user id")
	}
	return id, nil
}
