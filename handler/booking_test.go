package handler_test

import (
	"testing"

	"github.com/ALuiell/Cinema/handler"
	"github.com/ALuiell/Cinema/helper"
	"github.com/ALuiell/Cinema/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveSeatsCreatesPendingOrder(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)

	order, err := handler.ReserveSeats(db, f.Session.ID, f.Owner.ID, []int{55, 51, 5}, helper.DefaultPricingPolicy)
	require.NoError(t, err)

	assert.Equal(t, model.OrderPending, order.Status)
	assert.True(t, len(order.PublicCode) > 4 && order.PublicCode[:4] == "ORD-")
	require.Len(t, order.Tickets, 3)

	priceBySeat := map[int]float64{}
	for _, ticket := range order.Tickets {
		assert.Equal(t, model.TicketReserved, ticket.Status)
		assert.Equal(t, f.Owner.ID, ticket.UserID)
		priceBySeat[ticket.SeatNumber] = ticket.Price
	}
	assert.Equal(t, 150.0, priceBySeat[55])
	assert.Equal(t, 120.0, priceBySeat[51])
	assert.Equal(t, 100.0, priceBySeat[5])
	assert.Equal(t, 370.0, order.TotalPrice)
}

func TestReserveSeatsRejectsTakenSeats(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)

	_, err := handler.ReserveSeats(db, f.Session.ID, f.Owner.ID, []int{10, 11}, helper.DefaultPricingPolicy)
	require.NoError(t, err)

	_, err = handler.ReserveSeats(db, f.Session.ID, f.Other.ID, []int{11, 12}, helper.DefaultPricingPolicy)
	var conflict *handler.SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []int{11}, conflict.Seats)

	// the whole batch must roll back
	var orders int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orders).Error)
	assert.EqualValues(t, 1, orders)

	var tickets int64
	require.NoError(t, db.Model(&model.Ticket{}).Count(&tickets).Error)
	assert.EqualValues(t, 2, tickets)
}

func TestReserveSeatsRejectsDuplicateSeatInput(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)

	_, err := handler.ReserveSeats(db, f.Session.ID, f.Owner.ID, []int{5, 5}, helper.DefaultPricingPolicy)
	assert.ErrorIs(t, err, handler.ErrDuplicateSeat)
}

func TestReserveSeatsRejectsOutOfRangeSeat(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)

	_, err := handler.ReserveSeats(db, f.Session.ID, f.Owner.ID, []int{101}, helper.DefaultPricingPolicy)
	var seatRange *model.SeatRangeError
	require.ErrorAs(t, err, &seatRange)
	assert.Equal(t, 101, seatRange.Seat)
	assert.Equal(t, 100, seatRange.Capacity)
}

func TestReserveSeatsRejectsStartedSession(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)
	startSession(t, db, f.Session.ID)

	_, err := handler.ReserveSeats(db, f.Session.ID, f.Owner.ID, []int{1}, helper.DefaultPricingPolicy)
	assert.ErrorIs(t, err, handler.ErrSessionStarted)
}

func TestCancelledSeatsCanBeRebooked(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)

	first, err := handler.ReserveSeats(db, f.Session.ID, f.Owner.ID, []int{20}, helper.DefaultPricingPolicy)
	require.NoError(t, err)

	seats, err := helper.AvailableSeats(db, &f.Session)
	require.NoError(t, err)
	assert.NotContains(t, seats, 20)

	_, err = handler.CancelOrderAs(db, first.PublicCode, claimFor(f.Owner))
	require.NoError(t, err)

	seats, err = helper.AvailableSeats(db, &f.Session)
	require.NoError(t, err)
	assert.Contains(t, seats, 20)

	second, err := handler.ReserveSeats(db, f.Session.ID, f.Other.ID, []int{20}, helper.DefaultPricingPolicy)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, second.Status)
}

func TestLiveSeatIndexBlocksDuplicateInsert(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)

	order, err := handler.ReserveSeats(db, f.Session.ID, f.Owner.ID, []int{30}, helper.DefaultPricingPolicy)
	require.NoError(t, err)

	dup := model.Ticket{
		TicketCode: "TKT-DUP",
		SessionID:  f.Session.ID,
		OrderID:    order.ID,
		UserID:     f.Owner.ID,
		SeatNumber: 30,
		Price:      100,
		Status:     model.TicketReserved,
	}
	assert.Error(t, db.Create(&dup).Error)
}
