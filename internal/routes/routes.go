package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ewallet/ewallet/internal/auth"
	"github.com/ewallet/ewallet/internal/bank"
	"github.com/ewallet/ewallet/internal/config"
	"github.com/ewallet/ewallet/internal/country"
	"github.com/ewallet/ewallet/internal/identity"
	"github.com/ewallet/ewallet/internal/middleware"
	"github.com/ewallet/ewallet/internal/notification"
	"github.com/ewallet/ewallet/internal/storage"
	"github.com/ewallet/ewallet/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Without a
// database the in-memory repositories and transaction manager stand in,
// which keeps development and tests database-free.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var (
		userRepo   identity.Repository
		bankRepo   bank.Repository
		walletRepo wallet.Repository
		txManager  storage.Manager
	)
	if d.DB != nil {
		userRepo = identity.NewPostgresRepository(d.DB)
		bankRepo = bank.NewPostgresRepository(d.DB)
		walletRepo = wallet.NewPostgresRepository(d.DB)
		txManager = storage.NewPgxManager(d.DB)
	} else {
		users := identity.NewMemoryRepository()
		banks := bank.NewMemoryRepository()
		wallets := wallet.NewMemoryRepository()
		userRepo, bankRepo, walletRepo = users, banks, wallets
		txManager = storage.NewMemoryManager(users, banks, wallets)
	}

	policies := country.NewTable(d.Cfg.SignupBonus)
	hasher := identity.BcryptHasher{}
	notifier := notification.NewLoggerNotifier(d.Logger)

	userSvc := identity.NewService(userRepo, bankRepo, walletRepo, txManager, policies, hasher, notifier, d.Logger)
	bankSvc := bank.NewService(bankRepo, userRepo)
	walletSvc := wallet.NewService(walletRepo, userRepo)
	authSvc := auth.NewService(d.Cfg, userRepo, hasher)
	authHandler := auth.NewHandler(authSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterUserRoutes(api, userSvc)
	RegisterBankRoutes(api, bankSvc)
	RegisterWalletRoutes(api, walletSvc)

	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	jwtmw := middleware.JWTAuth(d.Cfg, userRepo)
	protected := api.Group("", jwtmw)
	protected.Get("/me", func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(int64)
		if uid == 0 {
			return c.SendStatus(http.StatusUnauthorized)
		}
		projection, err := userSvc.GetByID(c.UserContext(), uid)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "user not found")
		}
		return c.JSON(projection)
	})

	return nil
}
