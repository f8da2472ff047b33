package handler

import (
	"errors"
	"fmt"

	"github.com/ALuiell/Cinema/database"
	"github.com/ALuiell/Cinema/helper"
	"github.com/ALuiell/Cinema/model"
	"github.com/ALuiell/Cinema/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetTicketQRCode renders the entry QR for a booked ticket of the acting
// user.
func GetTicketQRCode(c *fiber.Ctx) error {
	claim, err := helper.GetInfoUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "login required", err)
	}

	var ticket model.Ticket
	err = database.DB.Where("ticket_code = ?", c.Params("code")).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "ticket not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to load ticket", err)
	}
	if ticket.UserID != claim.UserID && !claim.IsManager {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "not your ticket", ErrNotOrderOwner)
	}
	if ticket.Status != model.TicketBooked {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "ticket is not paid for", ErrInvalidTransition)
	}

	png, err := utils.GenerateQRCode(ticket.TicketCode, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to render qr code", err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%s.png", ticket.TicketCode))
	return c.Send(png)
}

// CancelTicketHandler drops one seat from a pending order.
func CancelTicketHandler(c *fiber.Ctx) error {
	claim, err := helper.GetInfoUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "login required", err)
	}

	ticket, err := CancelTicket(database.DB, c.Params("code"), claim)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "ticket not found", err)
		case errors.Is(err, ErrNotOrderOwner):
			return utils.ErrorResponse(c, fiber.StatusForbidden, "not your ticket", err)
		case errors.Is(err, ErrInvalidTransition):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "ticket can no longer be cancelled", err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to cancel ticket", err)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"ticketCode": ticket.TicketCode,
		"status":     ticket.Status,
	})
}
