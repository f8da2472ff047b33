package handler

import (
	"errors"

	"github.com/ALuiell/Cinema/database"
	"github.com/ALuiell/Cinema/helper"
	"github.com/ALuiell/Cinema/model"
	"github.com/ALuiell/Cinema/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RecomputeOrderTotal rewrites the order total as the sum of every ticket
// the order owns, cancelled ones included. The total reflects what was sold,
// not what is currently live.
func RecomputeOrderTotal(tx *gorm.DB, orderID uint) error {
	var total float64
	err := tx.Model(&model.Ticket{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(price), 0)").
		Scan(&total).Error
	if err != nil {
		return err
	}
	return tx.Model(&model.Order{}).Where("id = ?", orderID).
		Update("total_price", total).Error
}

// TransitionOrder moves the order to the target status, rejecting anything
// the state machine does not allow. Cancelling cascades to the order's live
// tickets so their seats free up.
func TransitionOrder(tx *gorm.DB, order *model.Order, to model.OrderStatus) error {
	if !order.Status.CanTransition(to) {
		return ErrInvalidTransition
	}
	if err := tx.Model(order).Update("status", to).Error; err != nil {
		return err
	}
	if to == model.OrderCancelled {
		err := tx.Model(&model.Ticket{}).
			Where("order_id = ? AND status <> ?", order.ID, model.TicketCancelled).
			Update("status", model.TicketCancelled).Error
		if err != nil {
			return err
		}
	}
	order.Status = to
	return nil
}

// MarkTicketsBooked flips the order's reserved tickets to BOOKED once
// payment is confirmed.
func MarkTicketsBooked(tx *gorm.DB, orderID uint) error {
	return tx.Model(&model.Ticket{}).
		Where("order_id = ? AND status = ?", orderID, model.TicketReserved).
		Update("status", model.TicketBooked).Error
}

// CancelOrderAs cancels a PENDING order on behalf of the given user. Owners
// and managers may cancel; the row is locked so the webhook and the sweeper
// cannot race this decision.
func CancelOrderAs(db *gorm.DB, publicCode string, claim model.TokenClaim) (*model.Order, error) {
	var order model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := database.Locked(tx).Where("public_code = ?", publicCode).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.UserID != claim.UserID && !claim.IsManager {
			return ErrNotOrderOwner
		}
		return TransitionOrder(tx, &order, model.OrderCancelled)
	})
	if err != nil {
		return nil, err
	}

	helper.InvalidateSeats(order.SessionID)
	return &order, nil
}

// CancelTicket cancels a single ticket of a PENDING order, freeing its seat
// while the rest of the order stays reserved.
func CancelTicket(db *gorm.DB, ticketCode string, claim model.TokenClaim) (*model.Ticket, error) {
	var ticket model.Ticket
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_code = ?", ticketCode).First(&ticket).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		var order model.Order
		if err := database.Locked(tx).First(&order, ticket.OrderID).Error; err != nil {
			return err
		}
		if order.UserID != claim.UserID && !claim.IsManager {
			return ErrNotOrderOwner
		}
		if order.Status != model.OrderPending || ticket.Status == model.TicketCancelled {
			return ErrInvalidTransition
		}

		if err := tx.Model(&model.Ticket{}).Where("id = ?", ticket.ID).
			Update("status", model.TicketCancelled).Error; err != nil {
			return err
		}
		ticket.Status = model.TicketCancelled
		return RecomputeOrderTotal(tx, order.ID)
	})
	if err != nil {
		return nil, err
	}

	helper.InvalidateSeats(ticket.SessionID)
	return &ticket, nil
}

func GetMyOrders(c *fiber.Ctx) error {
	claim, err := helper.GetInfoUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "login required", err)
	}

	var pagination model.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid pagination", err)
	}

	var orders []model.Order
	query := database.DB.Preload("Tickets").Preload("Session.Movie").
		Where("user_id = ?", claim.UserID).Order("created_at DESC")
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to load orders", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

func GetOrderDetail(c *fiber.Ctx) error {
	claim, err := helper.GetInfoUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "login required", err)
	}

	var order model.Order
	err = database.DB.Preload("Tickets").Preload("Session.Movie").Preload("Session.Hall").
		Where("public_code = ?", c.Params("code")).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "order not found", ErrOrderNotFound)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to load order", err)
	}
	if order.UserID != claim.UserID && !claim.IsManager {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "not your order", ErrNotOrderOwner)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func CancelOrder(c *fiber.Ctx) error {
	claim, err := helper.GetInfoUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "login required", err)
	}

	order, err := CancelOrderAs(database.DB, c.Params("code"), claim)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "order not found", err)
		case errors.Is(err, ErrNotOrderOwner):
			return utils.ErrorResponse(c, fiber.StatusForbidden, "not your order", err)
		case errors.Is(err, ErrInvalidTransition):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "order can no longer be cancelled", err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to cancel order", err)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderCode": order.PublicCode,
		"status":    order.Status,
	})
}
