package model

import (
	"errors"
	"regexp"

	"github.com/ALuiell/Cinema/utils"
	"gorm.io/gorm"
)

const (
	MovieComingSoon = "COMING_SOON"
	MovieNowShowing = "NOW_SHOWING"
	MovieEnded      = "ENDED"
)

var (
	ErrMovieOriginalName = errors.New("original name must contain only latin characters, numbers and punctuation")
	ErrMovieDuration     = errors.New("movie duration must be greater than zero")

	originalNamePattern = regexp.MustCompile(`^[A-Za-z0-9\s:,'\-&!?.]+$`)
)

type Genre struct {
	DTO
	Name string `gorm:"size:50;uniqueIndex" validate:"required" json:"name"`
}

type Movie struct {
	DTO
	Title        string            `gorm:"size:100;not null" validate:"required" json:"title"`
	OriginalName string            `gorm:"size:100;not null" validate:"required" json:"originalName"`
	Description  string            `json:"description"`
	Duration     int               `gorm:"not null" validate:"required,gt=0" json:"duration"` // minutes
	ReleaseDate  utils.CustomDate  `json:"releaseDate"`
	EndDate      *utils.CustomDate `json:"endDate,omitempty"`
	AgeLimit     int               `validate:"oneof=0 6 12 16 18" json:"ageLimit"`
	Status       string            `gorm:"size:20;default:'COMING_SOON'" json:"status"`
	Slug         string            `gorm:"size:100;uniqueIndex" json:"slug"`

	Genres   []Genre   `gorm:"many2many:movie_genres" json:"genres"`
	Sessions []Session `gorm:"foreignKey:MovieID" json:"-"`
}

func (m *Movie) BeforeSave(tx *gorm.DB) error {
	if m.Duration <= 0 {
		return ErrMovieDuration
	}
	if !originalNamePattern.MatchString(m.OriginalName) {
		return ErrMovieOriginalName
	}
	return nil
}

type CreateMovieInput struct {
	Title        string            `json:"title" validate:"required"`
	OriginalName string            `json:"originalName" validate:"required"`
	Description  string            `json:"description"`
	Duration     int               `json:"duration" validate:"required,gt=0"`
	ReleaseDate  utils.CustomDate  `json:"releaseDate" validate:"required"`
	EndDate      *utils.CustomDate `json:"endDate"`
	AgeLimit     int               `json:"ageLimit" validate:"oneof=0 6 12 16 18"`
	GenreIDs     []uint            `json:"genreIds" validate:"omitempty,dive,gt=0"`
}

type FilterMovieInput struct {
	Pagination
	Status string `query:"status" validate:"omitempty,oneof=COMING_SOON NOW_SHOWING ENDED"`
}
