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

func CreateSession(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateSessionInput)

	session := model.Session{
		HallID:          input.HallID,
		MovieID:         input.MovieID,
		BaseTicketPrice: input.BaseTicketPrice,
		StartTime:       input.StartTime,
	}
	if err := database.DB.Create(&session).Error; err != nil {
		switch {
		case errors.Is(err, model.ErrSessionPrice),
			errors.Is(err, model.ErrSessionPast),
			errors.Is(err, model.ErrSessionWindow):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid session", err)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "movie or hall not found", err)
		case isUniqueViolation(err):
			return utils.ErrorResponse(c, fiber.StatusConflict, "the hall is already booked at that time", err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to create session", err)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, session)
}

func GetSessions(c *fiber.Ctx) error {
	input := c.Locals("input").(model.FilterSessionInput)

	filter := func(q *gorm.DB) *gorm.DB {
		if input.MovieID != 0 {
			q = q.Where("movie_id = ?", input.MovieID)
		}
		if input.HallID != 0 {
			q = q.Where("hall_id = ?", input.HallID)
		}
		if input.Date != "" {
			q = q.Where("DATE(start_time) = ?", input.Date)
		}
		return q
	}

	var total int64
	if err := filter(database.DB.Model(&model.Session{})).Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to load sessions", err)
	}

	query := filter(database.DB.Preload("Movie").Preload("Hall").Order("start_time ASC"))

	var sessions []model.Session
	if err := utils.ApplyPagination(query, input.Limit, input.Page).Find(&sessions).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to load sessions", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows: sessions, Limit: input.Limit, Page: input.Page, TotalCount: total,
	})
}

func GetSessionBySlug(c *fiber.Ctx) error {
	var session model.Session
	err := database.DB.Preload("Movie").Preload("Hall").
		Where("slug = ?", c.Params("slug")).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "session not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to load session", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, session)
}

// GetSessionSeats lists the free seats of a session, served from the redis
// cache when one is configured.
func GetSessionSeats(c *fiber.Ctx) error {
	var session model.Session
	err := database.DB.Preload("Hall").
		Where("slug = ?", c.Params("slug")).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "session not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to load session", err)
	}

	seats, err := helper.CachedAvailableSeats(c.UserContext(), database.DB, &session)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to load seats", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"sessionSlug":    session.Slug,
		"capacity":       session.Hall.Capacity,
		"availableSeats": seats,
	})
}
