package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusCanTransition(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderCompleted, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderPending, false},
		{OrderCompleted, OrderCancelled, false},
		{OrderCompleted, OrderPending, false},
		{OrderCompleted, OrderCompleted, false},
		{OrderCancelled, OrderCompleted, false},
		{OrderCancelled, OrderPending, false},
		{OrderCancelled, OrderCancelled, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderPending.Valid())
	assert.True(t, OrderCompleted.Valid())
	assert.True(t, OrderCancelled.Valid())
	assert.False(t, OrderStatus("PAID").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestTicketStatusValid(t *testing.T) {
	assert.True(t, TicketReserved.Valid())
	assert.True(t, TicketBooked.Valid())
	assert.True(t, TicketCancelled.Valid())
	assert.False(t, TicketStatus("HELD").Valid())
}
