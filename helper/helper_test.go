package helper

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ALuiell/Cinema/database"
	"github.com/ALuiell/Cinema/model"
	"github.com/ALuiell/Cinema/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:helper_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestGenerateUniqueMovieSlug(t *testing.T) {
	db := openTestDB(t)

	first := GenerateUniqueMovieSlug(db, "The Grand Budapest Hotel")
	assert.Equal(t, "the-grand-budapest-hotel", first)

	movie := model.Movie{
		Title: "The Grand Budapest Hotel", OriginalName: "The Grand Budapest Hotel",
		Duration: 99, ReleaseDate: utils.Date(2014, time.March, 28), Slug: first,
	}
	require.NoError(t, db.Create(&movie).Error)

	assert.Equal(t, "the-grand-budapest-hotel-1", GenerateUniqueMovieSlug(db, "The Grand Budapest Hotel"))
}

func TestAvailableSeats(t *testing.T) {
	db := openTestDB(t)

	hall := model.Hall{Name: "Blue", Capacity: 5}
	require.NoError(t, db.Create(&hall).Error)
	movie := model.Movie{
		Title: "Interstellar", OriginalName: "Interstellar",
		Duration: 169, ReleaseDate: utils.Date(2014, time.November, 7), Slug: "interstellar",
	}
	require.NoError(t, db.Create(&movie).Error)

	day := time.Now().AddDate(0, 0, 1)
	session := model.Session{
		HallID: hall.ID, MovieID: movie.ID, BaseTicketPrice: 100,
		StartTime: time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.Local),
	}
	require.NoError(t, db.Create(&session).Error)

	user := model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	order := model.Order{PublicCode: "ORD-TEST1", UserID: user.ID, SessionID: session.ID, Status: model.OrderPending}
	require.NoError(t, db.Create(&order).Error)

	reserve := func(seat int, status model.TicketStatus) {
		ticket := model.Ticket{
			TicketCode: fmt.Sprintf("TKT-%d", seat),
			SessionID:  session.ID, OrderID: order.ID, UserID: user.ID,
			SeatNumber: seat, Price: 100, Status: status,
		}
		require.NoError(t, db.Create(&ticket).Error)
	}
	reserve(2, model.TicketReserved)
	reserve(4, model.TicketBooked)
	reserve(5, model.TicketCancelled)

	seats, err := AvailableSeats(db, &session)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, seats)
}

func TestAccessTokenRoundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt-test-secret")

	token, err := GenerateAccessToken(model.TokenClaim{UserID: 7, Username: "alice", IsManager: true})
	require.NoError(t, err)

	parsed, err := ParseToken(token)
	require.NoError(t, err)
	require.True(t, parsed.Valid)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
