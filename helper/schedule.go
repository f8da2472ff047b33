package helper

import (
	"log"
	"time"

	"github.com/ALuiell/Cinema/database"
	"github.com/ALuiell/Cinema/model"
	"github.com/go-co-op/gocron/v2"
)

var movieScheduler gocron.Scheduler

// AutoUpdateMovieStatus walks the catalog once a day: movies past their
// release date start showing, movies past their end date stop.
func AutoUpdateMovieStatus() {
	db := database.DB
	today := time.Now().Truncate(24 * time.Hour)

	var movies []model.Movie
	if err := db.Find(&movies).Error; err != nil {
		log.Printf("movie status sweep: %v", err)
		return
	}

	for _, movie := range movies {
		updated := false

		releaseDate := movie.ReleaseDate.Time.Truncate(24 * time.Hour)
		if !today.Before(releaseDate) && movie.Status == model.MovieComingSoon {
			movie.Status = model.MovieNowShowing
			updated = true
		}

		if movie.EndDate != nil {
			endDate := movie.EndDate.Time.Truncate(24 * time.Hour)
			if today.After(endDate) && movie.Status == model.MovieNowShowing {
				movie.Status = model.MovieEnded
				updated = true
			}
		}

		if updated {
			if err := db.Save(&movie).Error; err != nil {
				log.Printf("movie status update %q: %v", movie.Title, err)
			} else {
				log.Printf("movie %q is now %s", movie.Title, movie.Status)
			}
		}
	}
}

func StartMovieStatusScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	movieScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(AutoUpdateMovieStatus),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("movie status scheduler started (daily 00:05)")
}

func StopMovieStatusScheduler() {
	if movieScheduler != nil {
		if err := movieScheduler.Shutdown(); err != nil {
			log.Printf("movie status scheduler shutdown: %v", err)
		}
	}
}
