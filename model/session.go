package model

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TurnoverBuffer is added after the movie runtime when computing a session's
// end time, covering credits and hall cleanup.
const TurnoverBuffer = 15 * time.Minute

// Earliest hour of day a session may start; the last slot is 23:59.
const sessionOpeningHour = 10

var (
	ErrSessionPrice  = errors.New("base ticket price must be greater than zero")
	ErrSessionPast   = errors.New("session start time cannot be in the past")
	ErrSessionWindow = errors.New("session must start between 10:00 and 23:59")
)

type Session struct {
	DTO
	HallID          uint      `gorm:"not null;uniqueIndex:idx_sessions_hall_start" json:"hallId"`
	Hall            Hall      `json:"hall"`
	MovieID         uint      `gorm:"not null;index" json:"movieId"`
	Movie           Movie     `json:"movie"`
	BaseTicketPrice float64   `gorm:"not null" validate:"required,gt=0" json:"baseTicketPrice"`
	StartTime       time.Time `gorm:"not null;uniqueIndex:idx_sessions_hall_start;index" validate:"required" json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Slug            string    `gorm:"size:255;uniqueIndex" json:"slug"`

	Tickets []Ticket `gorm:"foreignKey:SessionID" json:"-"`
	Orders  []Order  `gorm:"foreignKey:SessionID" json:"-"`
}

// BeforeSave recomputes the derived end time and slug and enforces the
// session invariants on every save, mirroring how sessions are validated at
// creation and update alike.
func (s *Session) BeforeSave(tx *gorm.DB) error {
	var movie Movie
	if err := tx.First(&movie, s.MovieID).Error; err != nil {
		return fmt.Errorf("session movie: %w", err)
	}
	if s.BaseTicketPrice <= 0 {
		return ErrSessionPrice
	}
	if s.StartTime.Before(time.Now()) {
		return ErrSessionPast
	}
	if s.StartTime.Hour() < sessionOpeningHour {
		return ErrSessionWindow
	}
	s.EndTime = s.StartTime.Add(time.Duration(movie.Duration)*time.Minute + TurnoverBuffer)
	s.Slug = fmt.Sprintf("%s-%s", movie.Slug, s.StartTime.Format("2006-01-02-15-04"))
	return nil
}

// SessionDate is the calendar day the session runs on.
func (s *Session) SessionDate() time.Time {
	return s.StartTime.Truncate(24 * time.Hour)
}

type CreateSessionInput struct {
	HallID          uint      `json:"hallId" validate:"required,gt=0"`
	MovieID         uint      `json:"movieId" validate:"required,gt=0"`
	BaseTicketPrice float64   `json:"baseTicketPrice" validate:"required,gt=0"`
	StartTime       time.Time `json:"startTime" validate:"required"`
}

type FilterSessionInput struct {
	Pagination
	MovieID uint   `query:"movieId" validate:"omitempty,gt=0"`
	HallID  uint   `query:"hallId" validate:"omitempty,gt=0"`
	Date    string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}
