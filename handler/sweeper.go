package handler

import (
	"log"
	"time"

	"github.com/ALuiell/Cinema/config"
	"github.com/ALuiell/Cinema/database"
	"github.com/ALuiell/Cinema/helper"
	"github.com/ALuiell/Cinema/model"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CancelUnpaidOrders expires every PENDING order older than the grace
// period. Each order is settled in its own transaction with its row locked,
// so an order paid between the candidate scan and the cancel is left alone.
// Returns how many orders were actually cancelled.
func CancelUnpaidOrders(db *gorm.DB, grace time.Duration) (int, error) {
	cutoff := time.Now().Add(-grace)

	var candidates []uint
	err := db.Model(&model.Order{}).
		Where("status = ? AND created_at < ?", model.OrderPending, cutoff).
		Pluck("id", &candidates).Error
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, id := range candidates {
		var order model.Order
		did := false
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := database.Locked(tx).First(&order, id).Error; err != nil {
				return err
			}
			if order.Status != model.OrderPending {
				return nil
			}
			if err := TransitionOrder(tx, &order, model.OrderCancelled); err != nil {
				return err
			}
			did = true
			return nil
		})
		if err != nil {
			log.Printf("expire order %d: %v", id, err)
			continue
		}
		if did {
			cancelled++
			helper.InvalidateSeats(order.SessionID)
		}
	}
	return cancelled, nil
}

var orderSweeper *cron.Cron

// StartOrderSweeper runs the unpaid-order sweep on the configured schedule.
// Runs never overlap; a sweep that outlasts the interval skips the next tick.
func StartOrderSweeper() {
	orderSweeper = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	_, err := orderSweeper.AddFunc(config.SweepCron(), func() {
		n, err := CancelUnpaidOrders(database.DB, config.OrderGracePeriod())
		if err != nil {
			log.Printf("order sweep: %v", err)
			return
		}
		if n > 0 {
			log.Printf("order sweep cancelled %d unpaid orders", n)
		}
	})
	if err != nil {
		log.Fatalf("order sweeper schedule: %v", err)
	}
	orderSweeper.Start()
}

func StopOrderSweeper() {
	if orderSweeper != nil {
		orderSweeper.Stop()
	}
}
