package handler_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ALuiell/Cinema/database"
	"github.com/ALuiell/Cinema/model"
	"github.com/ALuiell/Cinema/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixtures struct {
	Owner   model.User
	Other   model.User
	Manager model.User
	Hall    model.Hall
	Movie   model.Movie
	Session model.Session
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()

	f := fixtures{
		Owner:   model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"},
		Other:   model.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x"},
		Manager: model.User{Username: "boss", Email: "boss@example.com", PasswordHash: "x", IsManager: true},
	}
	require.NoError(t, db.Create(&f.Owner).Error)
	require.NoError(t, db.Create(&f.Other).Error)
	require.NoError(t, db.Create(&f.Manager).Error)

	f.Hall = model.Hall{Name: "Red", Capacity: 100}
	require.NoError(t, db.Create(&f.Hall).Error)

	f.Movie = model.Movie{
		Title:        "Interstellar",
		OriginalName: "Interstellar",
		Duration:     169,
		ReleaseDate:  utils.Date(2014, time.November, 7),
		Slug:         "interstellar",
	}
	require.NoError(t, db.Create(&f.Movie).Error)

	day := time.Now().AddDate(0, 0, 1)
	f.Session = model.Session{
		HallID:          f.Hall.ID,
		MovieID:         f.Movie.ID,
		BaseTicketPrice: 100,
		StartTime:       time.Date(day.Year(), day.Month(), day.Day(), 19, 0, 0, 0, time.Local),
	}
	require.NoError(t, db.Create(&f.Session).Error)
	return f
}

func claimFor(u model.User) model.TokenClaim {
	return model.TokenClaim{UserID: u.ID, Username: u.Username, IsManager: u.IsManager}
}

// startSession pushes the session's start into the past, bypassing the
// validation hooks.
func startSession(t *testing.T, db *gorm.DB, sessionID uint) {
	t.Helper()
	err := db.Model(&model.Session{}).Where("id = ?", sessionID).
		UpdateColumn("start_time", time.Now().Add(-time.Hour)).Error
	require.NoError(t, err)
}

// ageOrder rewrites the order's creation time so the sweeper sees it as
// stale.
func ageOrder(t *testing.T, db *gorm.DB, orderID uint, age time.Duration) {
	t.Helper()
	err := db.Model(&model.Order{}).Where("id = ?", orderID).
		UpdateColumn("created_at", time.Now().Add(-age)).Error
	require.NoError(t, err)
}
