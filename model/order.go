package model

import (
	"errors"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the order state machine allows moving to the
// given status. COMPLETED and CANCELLED are terminal.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	switch s {
	case OrderPending:
		return to == OrderCompleted || to == OrderCancelled
	default:
		return false
	}
}

var ErrOrderStatus = errors.New("invalid order status")

type Order struct {
	DTO
	PublicCode string      `gorm:"size:20;uniqueIndex" json:"publicCode"`
	UserID     uint        `gorm:"not null;index" json:"userId"`
	User       User        `json:"-"`
	SessionID  uint        `gorm:"not null;index" json:"sessionId"`
	Session    Session     `json:"session"`
	Status     OrderStatus `gorm:"size:20;default:'PENDING'" json:"status"`
	TotalPrice float64     `gorm:"default:0" json:"totalPrice"`

	Tickets []Ticket `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"tickets"`
}

func (o *Order) BeforeSave(tx *gorm.DB) error {
	if !o.Status.Valid() {
		return ErrOrderStatus
	}
	if o.TotalPrice < 0 {
		return errors.New("order total price cannot be negative")
	}
	return nil
}

// SeatNumbers lists the seats covered by the order's tickets.
func (o *Order) SeatNumbers() []int {
	seats := make([]int, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		seats = append(seats, t.SeatNumber)
	}
	return seats
}
