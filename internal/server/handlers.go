package server

import (
	"context"
	"log/slog"

	"github.com/focochat/transfer-ledger/internal/ledger"
	"github.com/focochat/transfer-ledger/internal/models"
	"github.com/focochat/transfer-ledger/internal/ramp"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type rampOp func(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (models.MovementRecord, error)

// Transfer moves funds from the authenticated caller to the target account.
func Transfer(engine *ledger.Engine, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fromID, err := CurrentAccountID(c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := BindAndValidate[TransferRequest](c)
		if input == nil {
			return err // error response already written
		}
		toID, err := uuid.Parse(input.ToAccountID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}

		rec, err := engine.Transfer(c.UserContext(), fromID, toID, input.Amount)
		if err != nil {
			logger.Error("transfer failed", "from_account", fromID, "to_account", toID, "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Transfer failed", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Transfer successful", rec)
	}
}

// AccountBalance returns the derived balance of one account.
func AccountBalance(engine *ledger.Engine, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		balance, err := engine.BalanceOf(c.UserContext(), accountID)
		if err != nil {
			logger.Error("balance query failed", "account_id", accountID, "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Balance query failed", err.Error())
		}
		return c.JSON(BalanceResponse{AccountID: accountID, Balance: balance})
	}
}

// LedgerRecords returns the full ledger, most-recent-first.
func LedgerRecords(engine *ledger.Engine, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := engine.Records(c.UserContext())
		if err != nil {
			logger.Error("ledger query failed", "error", err)
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Ledger query failed", err.Error())
		}
		return c.JSON(records)
	}
}

// Onramp appends an ONRAMP record crediting the given account.
func Onramp(ramps *ramp.Service, logger *slog.Logger) fiber.Handler {
	return rampHandler(logger, "Onramp failed", ramps.Onramp)
}

// Offramp appends an OFFRAMP record debiting the given account.
func Offramp(ramps *ramp.Service, logger *slog.Logger) fiber.Handler {
	return rampHandler(logger, "Offramp failed", ramps.Offramp)
}

func rampHandler(logger *slog.Logger, failTitle string, op rampOp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[RampRequest](c)
		if input == nil {
			return err
		}
		accountID, err := uuid.Parse(input.AccountID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		rec, err := op(c.UserContext(), accountID, input.Amount)
		if err != nil {
			logger.Error("ramp operation failed", "account_id", accountID, "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), failTitle, err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Record committed", rec)
	}
}
