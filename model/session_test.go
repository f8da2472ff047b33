package model_test

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
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (model.Hall, model.Movie) {
	t.Helper()
	hall := model.Hall{Name: "Red", Capacity: 100}
	require.NoError(t, db.Create(&hall).Error)
	movie := model.Movie{
		Title:        "Interstellar",
		OriginalName: "Interstellar",
		Duration:     169,
		ReleaseDate:  utils.Date(2014, time.November, 7),
		Slug:         "interstellar",
	}
	require.NoError(t, db.Create(&movie).Error)
	return hall, movie
}

func futureShowtime(hour int) time.Time {
	day := time.Now().AddDate(0, 0, 1)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.Local)
}

func TestSessionComputesEndTimeAndSlug(t *testing.T) {
	db := openTestDB(t)
	hall, movie := seedCatalog(t, db)

	start := futureShowtime(19)
	session := model.Session{
		HallID: hall.ID, MovieID: movie.ID,
		BaseTicketPrice: 100, StartTime: start,
	}
	require.NoError(t, db.Create(&session).Error)

	assert.Equal(t, start.Add(169*time.Minute+model.TurnoverBuffer), session.EndTime)
	assert.Equal(t, "interstellar-"+start.Format("2006-01-02-15-04"), session.Slug)
}

func TestSessionValidation(t *testing.T) {
	db := openTestDB(t)
	hall, movie := seedCatalog(t, db)

	tests := []struct {
		name    string
		session model.Session
		wantErr error
	}{
		{
			"zero price",
			model.Session{HallID: hall.ID, MovieID: movie.ID, BaseTicketPrice: 0, StartTime: futureShowtime(19)},
			model.ErrSessionPrice,
		},
		{
			"negative price",
			model.Session{HallID: hall.ID, MovieID: movie.ID, BaseTicketPrice: -10, StartTime: futureShowtime(19)},
			model.ErrSessionPrice,
		},
		{
			"past start",
			model.Session{HallID: hall.ID, MovieID: movie.ID, BaseTicketPrice: 100, StartTime: time.Now().Add(-time.Hour)},
			model.ErrSessionPast,
		},
		{
			"before opening hour",
			model.Session{HallID: hall.ID, MovieID: movie.ID, BaseTicketPrice: 100, StartTime: futureShowtime(8)},
			model.ErrSessionWindow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.Create(&tt.session).Error
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSessionRejectsHallDoubleBooking(t *testing.T) {
	db := openTestDB(t)
	hall, movie := seedCatalog(t, db)

	start := futureShowtime(19)
	first := model.Session{HallID: hall.ID, MovieID: movie.ID, BaseTicketPrice: 100, StartTime: start}
	require.NoError(t, db.Create(&first).Error)

	second := model.Session{HallID: hall.ID, MovieID: movie.ID, BaseTicketPrice: 120, StartTime: start}
	assert.Error(t, db.Create(&second).Error)
}

func TestHallRejectsNonPositiveCapacity(t *testing.T) {
	db := openTestDB(t)

	err := db.Create(&model.Hall{Name: "Broken", Capacity: 0}).Error
	assert.ErrorIs(t, err, model.ErrHallCapacity)
}

func TestMovieValidation(t *testing.T) {
	db := openTestDB(t)

	err := db.Create(&model.Movie{Title: "Дюна", OriginalName: "Дюна", Duration: 155, Slug: "dune"}).Error
	assert.ErrorIs(t, err, model.ErrMovieOriginalName)

	err = db.Create(&model.Movie{Title: "Dune", OriginalName: "Dune", Duration: 0, Slug: "dune"}).Error
	assert.ErrorIs(t, err, model.ErrMovieDuration)
}
