package model

import (
	"errors"

	"gorm.io/gorm"
)

var ErrHallCapacity = errors.New("hall capacity must be greater than zero")

type Hall struct {
	DTO
	Name     string `gorm:"size:100;index" validate:"required" json:"name"`
	Capacity int    `gorm:"not null" validate:"required,gt=0" json:"capacity"`

	Sessions []Session `gorm:"foreignKey:HallID" json:"-"`
}

func (h *Hall) BeforeSave(tx *gorm.DB) error {
	if h.Capacity <= 0 {
		return ErrHallCapacity
	}
	return nil
}
