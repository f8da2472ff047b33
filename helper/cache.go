package helper

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ALuiell/Cinema/database"
	"github.com/ALuiell/Cinema/model"
	"gorm.io/gorm"
)

const seatCacheTTL = 30 * time.Second

func seatCacheKey(sessionID uint) string {
	return fmt.Sprintf("seats:session:%d", sessionID)
}

// CachedAvailableSeats serves the display-only availability query from
// redis, falling back to the database. Never use the cached result to gate a
// reservation; the ledger re-checks under lock.
func CachedAvailableSeats(ctx context.Context, db *gorm.DB, session *model.Session) ([]int, error) {
	if database.Redis != nil {
		raw, err := database.Redis.Get(ctx, seatCacheKey(session.ID)).Result()
		if err == nil {
			var seats []int
			if json.Unmarshal([]byte(raw), &seats) == nil {
				return seats, nil
			}
		}
	}

	seats, err := AvailableSeats(db, session)
	if err != nil {
		return nil, err
	}

	if database.Redis != nil {
		if payload, err := json.Marshal(seats); err == nil {
			if err := database.Redis.Set(ctx, seatCacheKey(session.ID), payload, seatCacheTTL).Err(); err != nil {
				log.Printf("seat cache write for session %d: %v", session.ID, err)
			}
		}
	}
	return seats, nil
}

// InvalidateSeats drops the cached availability of a session and publishes a
// change notification on its channel after any ticket mutation.
func InvalidateSeats(sessionID uint) {
	if database.Redis == nil {
		return
	}
	ctx := context.Background()
	if err := database.Redis.Del(ctx, seatCacheKey(sessionID)).Err(); err != nil {
		log.Printf("seat cache invalidation for session %d: %v", sessionID, err)
	}
	if err := database.Redis.Publish(ctx, fmt.Sprintf("session:%d", sessionID), "seats-changed").Err(); err != nil {
		log.Printf("seat change publish for session %d: %v", sessionID, err)
	}
}
