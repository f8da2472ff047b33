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

func CreateMovie(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateMovieInput)

	var movie model.Movie
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		movie = model.Movie{
			Title:        input.Title,
			OriginalName: input.OriginalName,
			Description:  input.Description,
			Duration:     input.Duration,
			ReleaseDate:  input.ReleaseDate,
			EndDate:      input.EndDate,
			AgeLimit:     input.AgeLimit,
			Status:       model.MovieComingSoon,
			Slug:         helper.GenerateUniqueMovieSlug(tx, input.OriginalName),
		}
		if len(input.GenreIDs) > 0 {
			if err := tx.Find(&movie.Genres, input.GenreIDs).Error; err != nil {
				return err
			}
		}
		return tx.Create(&movie).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrMovieOriginalName), errors.Is(err, model.ErrMovieDuration):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid movie", err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to create movie", err)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, movie)
}

func GetMovies(c *fiber.Ctx) error {
	input := c.Locals("input").(model.FilterMovieInput)

	filter := func(q *gorm.DB) *gorm.DB {
		if input.Status != "" {
			q = q.Where("status = ?", input.Status)
		}
		return q
	}

	var total int64
	if err := filter(database.DB.Model(&model.Movie{})).Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to load movies", err)
	}

	query := filter(database.DB.Preload("Genres").Order("release_date DESC"))

	var movies []model.Movie
	if err := utils.ApplyPagination(query, input.Limit, input.Page).Find(&movies).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to load movies", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows: movies, Limit: input.Limit, Page: input.Page, TotalCount: total,
	})
}

func GetMovieBySlug(c *fiber.Ctx) error {
	var movie model.Movie
	err := database.DB.Preload("Genres").
		Where("slug = ?", c.Params("slug")).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "movie not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to load movie", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, movie)
}
