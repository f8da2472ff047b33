package handler

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/ALuiell/Cinema/database"
	"github.com/ALuiell/Cinema/helper"
	"github.com/ALuiell/Cinema/model"
	"github.com/ALuiell/Cinema/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReserveSeats is the ticket ledger's batch reservation: inside one
// transaction it re-checks every requested seat against the live tickets of
// the session (under a row lock on postgres), then creates the PENDING order
// and one RESERVED ticket per seat with the price frozen at booking time.
// Any taken seat fails the whole batch with SeatConflictError; nothing is
// partially persisted.
func ReserveSeats(db *gorm.DB, sessionID, userID uint, seats []int, policy helper.PricingPolicy) (*model.Order, error) {
	seen := make(map[int]bool, len(seats))
	for _, seat := range seats {
		if seen[seat] {
			return nil, ErrDuplicateSeat
		}
		seen[seat] = true
	}

	var order model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var session model.Session
		if err := tx.Preload("Hall").First(&session, sessionID).Error; err != nil {
			return err
		}
		if !session.StartTime.After(time.Now()) {
			return ErrSessionStarted
		}

		var takenSeats []int
		if err := database.Locked(tx).Model(&model.Ticket{}).
			Where("session_id = ? AND status <> ?", session.ID, model.TicketCancelled).
			Pluck("seat_number", &takenSeats).Error; err != nil {
			return err
		}
		taken := make(map[int]bool, len(takenSeats))
		for _, seat := range takenSeats {
			taken[seat] = true
		}

		var conflicts []int
		for _, seat := range seats {
			if seat < 1 || seat > session.Hall.Capacity {
				return &model.SeatRangeError{Seat: seat, Capacity: session.Hall.Capacity}
			}
			if taken[seat] {
				conflicts = append(conflicts, seat)
			}
		}
		if len(conflicts) > 0 {
			return &SeatConflictError{Seats: conflicts}
		}

		order = model.Order{
			PublicCode: "ORD-" + strings.ToUpper(uuid.New().String()[:8]),
			UserID:     userID,
			SessionID:  session.ID,
			Status:     model.OrderPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		tickets := make([]model.Ticket, 0, len(seats))
		for _, seat := range seats {
			price, err := policy.PriceForSeat(seat, session.BaseTicketPrice, session.Hall.Capacity)
			if err != nil {
				return err
			}
			tickets = append(tickets, model.Ticket{
				TicketCode: "TKT-" + strings.ToUpper(uuid.New().String()[:10]),
				SessionID:  session.ID,
				OrderID:    order.ID,
				UserID:     userID,
				SeatNumber: seat,
				Price:      price,
				Status:     model.TicketReserved,
			})
		}
		if err := tx.Create(&tickets).Error; err != nil {
			if isUniqueViolation(err) {
				// a concurrent reservation committed first
				return &SeatConflictError{Seats: seats}
			}
			return err
		}

		if err := RecomputeOrderTotal(tx, order.ID); err != nil {
			return err
		}
		return tx.Preload("Tickets").Preload("Session.Hall").Preload("Session.Movie").
			First(&order, order.ID).Error
	})
	if err != nil {
		return nil, err
	}

	helper.InvalidateSeats(order.SessionID)
	return &order, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// PurchaseTickets runs the purchase workflow: reserve the seats, then ask
// the checkout provider for a redirect URL. A provider failure keeps the
// order PENDING — the caller can retry payment, and the sweeper remains the
// backstop.
func PurchaseTickets(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateBookingInput)

	claim, err := helper.GetInfoUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "login required", err)
	}

	order, err := ReserveSeats(database.DB, input.SessionID, claim.UserID, input.Seats, helper.DefaultPricingPolicy)
	if err != nil {
		return respondReservationError(c, err)
	}

	redirectURL, err := NewCheckout().CreateSession(order)
	if err != nil {
		log.Printf("payment initiation for order %s: %v", order.PublicCode, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message":   "payment could not be started, the reservation is kept",
			"error":     ErrPaymentInitiation.Error(),
			"orderCode": order.PublicCode,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderCode":   order.PublicCode,
		"totalPrice":  order.TotalPrice,
		"seats":       order.SeatNumbers(),
		"redirectUrl": redirectURL,
	})
}

// RetryPayment re-initiates checkout for a PENDING order of the acting user.
func RetryPayment(c *fiber.Ctx) error {
	code := c.Params("code")

	claim, err := helper.GetInfoUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "login required", err)
	}

	var order model.Order
	if err := database.DB.Preload("Tickets").Preload("Session.Hall").Preload("Session.Movie").
		Where("public_code = ?", code).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "order not found", ErrOrderNotFound)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to load order", err)
	}
	if order.UserID != claim.UserID && !claim.IsManager {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "not your order", ErrNotOrderOwner)
	}
	if order.Status != model.OrderPending {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "order is not awaiting payment", ErrNotRetriable)
	}

	redirectURL, err := NewCheckout().CreateSession(&order)
	if err != nil {
		log.Printf("payment retry for order %s: %v", order.PublicCode, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message":   "payment could not be started, try again later",
			"error":     ErrPaymentInitiation.Error(),
			"orderCode": order.PublicCode,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderCode":   order.PublicCode,
		"redirectUrl": redirectURL,
	})
}

func respondReservationError(c *fiber.Ctx, err error) error {
	var conflict *SeatConflictError
	var seatRange *model.SeatRangeError
	switch {
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "some seats are no longer available",
			"error":   conflict.Error(),
			"seats":   conflict.Seats,
		})
	case errors.As(err, &seatRange):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid seat selection", err)
	case errors.Is(err, ErrDuplicateSeat), errors.Is(err, helper.ErrPriceInput):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid seat selection", err)
	case errors.Is(err, ErrSessionStarted):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "session has already started", err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "session not found", err)
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "reservation failed", err)
	}
}
