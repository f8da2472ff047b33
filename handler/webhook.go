package handler

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/ALuiell/Cinema/database"
	"github.com/ALuiell/Cinema/helper"
	"github.com/ALuiell/Cinema/model"
	"github.com/ALuiell/Cinema/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProcessCheckoutEvent reconciles a provider event against the order ledger.
// It returns whether the event changed anything. Replayed events and events
// for already-settled orders are acknowledged without effect, so redelivery
// is safe.
func ProcessCheckoutEvent(db *gorm.DB, event model.CheckoutEvent) (bool, error) {
	if event.Type != model.EventCheckoutCompleted {
		return false, nil
	}
	code := event.Data.Object.ClientReferenceID
	if code == "" {
		return false, ErrMissingReference
	}
	if event.Data.Object.PaymentStatus != "paid" {
		return false, nil
	}

	var order model.Order
	processed := false
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := database.Locked(tx).Where("public_code = ?", code).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		switch order.Status {
		case model.OrderPending:
			if err := TransitionOrder(tx, &order, model.OrderCompleted); err != nil {
				return err
			}
			if err := MarkTicketsBooked(tx, order.ID); err != nil {
				return err
			}
			processed = true
			return nil
		case model.OrderCompleted:
			// duplicate delivery
			return nil
		default:
			log.Printf("payment received for cancelled order %s, ignoring", order.PublicCode)
			return nil
		}
	})
	if err != nil {
		return false, err
	}

	if processed {
		helper.InvalidateSeats(order.SessionID)
	}
	return processed, nil
}

// CheckoutWebhook receives provider callbacks. The raw body signature is
// checked before anything is parsed.
func CheckoutWebhook(c *fiber.Ctx) error {
	body := c.Body()
	if !NewCheckout().VerifySignature(body, c.Get("Checkout-Signature")) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid signature", ErrBadSignature)
	}

	var event model.CheckoutEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "malformed event", err)
	}

	processed, err := ProcessCheckoutEvent(database.DB, event)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "unknown order reference", err)
		case errors.Is(err, ErrMissingReference):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "event carries no order reference", err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to process event", err)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"processed": processed})
}
