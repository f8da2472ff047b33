package validate

import (
	"github.com/ALuiell/Cinema/helper"
	"github.com/ALuiell/Cinema/model"
	"github.com/ALuiell/Cinema/utils"
	"github.com/gofiber/fiber/v2"
)

func CreateMovie() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, err := helper.GetInfoUserFromToken(c)
		if err != nil || !claim.IsManager {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "manager role required", err)
		}

		var input model.CreateMovieInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid movie payload", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func FilterMovies() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.FilterMovieInput
		if err := c.QueryParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid filter", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}
