package server

import (
	"log/slog"

	"github.com/focochat/transfer-ledger/internal/config"
	"github.com/focochat/transfer-ledger/internal/ledger"
	"github.com/focochat/transfer-ledger/internal/ramp"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// New builds the Fiber app and registers all routes.
func New(cfg *config.App, engine *ledger.Engine, ramps *ramp.Service, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "transfer-ledger",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	protected := Protected(cfg.Auth.JwtSecret)
	app.Post("/transfers", protected, Transfer(engine, logger))
	app.Get("/accounts/:id/balance", AccountBalance(engine, logger))
	app.Get("/ledger/records", LedgerRecords(engine, logger))
	app.Post("/ramp/onramp", Onramp(ramps, logger))
	app.Post("/ramp/offramp", Offramp(ramps, logger))

	return app
}
