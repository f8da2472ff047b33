package model

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type TicketStatus string

const (
	TicketReserved  TicketStatus = "RESERVED"
	TicketBooked    TicketStatus = "BOOKED"
	TicketCancelled TicketStatus = "CANCELLED"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketReserved, TicketBooked, TicketCancelled:
		return true
	}
	return false
}

var (
	ErrTicketStatus = errors.New("invalid ticket status")
	ErrTicketPrice  = errors.New("ticket price must be greater than zero")
	ErrTicketOwner  = errors.New("ticket user must match the order's user")
)

// SeatRangeError reports a seat number outside the hall's capacity.
type SeatRangeError struct {
	Seat     int
	Capacity int
}

func (e *SeatRangeError) Error() string {
	return fmt.Sprintf("seat number must be between 1 and %d, got %d", e.Capacity, e.Seat)
}

type Ticket struct {
	DTO
	TicketCode string       `gorm:"size:20;uniqueIndex" json:"ticketCode"`
	SessionID  uint         `gorm:"not null;index:idx_tickets_session_seat" json:"sessionId"`
	OrderID    uint         `gorm:"not null;index" json:"orderId"`
	UserID     uint         `gorm:"not null;index" json:"userId"`
	SeatNumber int          `gorm:"not null;index:idx_tickets_session_seat" json:"seatNumber"`
	Price      float64      `gorm:"not null" json:"price"` // frozen at reservation time
	Status     TicketStatus `gorm:"size:20;default:'RESERVED'" json:"status"`

	Session Session `json:"-"`
	Order   Order   `json:"-"`
	User    User    `json:"-"`
}

// BeforeSave enforces the ticket invariants on every instance-level create
// or update: seat within hall capacity, owner matching the order's owner,
// positive frozen price and a known status.
func (t *Ticket) BeforeSave(tx *gorm.DB) error {
	if !t.Status.Valid() {
		return ErrTicketStatus
	}
	if t.Price <= 0 {
		return ErrTicketPrice
	}
	var session Session
	if err := tx.Preload("Hall").First(&session, t.SessionID).Error; err != nil {
		return fmt.Errorf("ticket session: %w", err)
	}
	if t.SeatNumber < 1 || t.SeatNumber > session.Hall.Capacity {
		return &SeatRangeError{Seat: t.SeatNumber, Capacity: session.Hall.Capacity}
	}
	var order Order
	if err := tx.First(&order, t.OrderID).Error; err != nil {
		return fmt.Errorf("ticket order: %w", err)
	}
	if order.UserID != t.UserID {
		return ErrTicketOwner
	}
	return nil
}

type CreateBookingInput struct {
	SessionID uint  `json:"sessionId" validate:"required,gt=0"`
	Seats     []int `json:"seats" validate:"required,min=1,dive,gt=0"`
}
