package helper

import (
	"github.com/ALuiell/Cinema/model"
	"gorm.io/gorm"
)

// AvailableSeats resolves which seats of the session's hall are currently
// free: {1..capacity} minus the seats of non-cancelled tickets. Read-only;
// writers must re-run the check inside their own transaction, the snapshot
// here is only good for display.
func AvailableSeats(db *gorm.DB, session *model.Session) ([]int, error) {
	capacity := session.Hall.Capacity
	if capacity == 0 {
		var hall model.Hall
		if err := db.First(&hall, session.HallID).Error; err != nil {
			return nil, err
		}
		capacity = hall.Capacity
	}

	var taken []int
	if err := db.Model(&model.Ticket{}).
		Where("session_id = ? AND status <> ?", session.ID, model.TicketCancelled).
		Pluck("seat_number", &taken).Error; err != nil {
		return nil, err
	}

	occupied := make(map[int]bool, len(taken))
	for _, seat := range taken {
		occupied[seat] = true
	}

	free := make([]int, 0, capacity-len(taken))
	for seat := 1; seat <= capacity; seat++ {
		if !occupied[seat] {
			free = append(free, seat)
		}
	}
	return free, nil
}
