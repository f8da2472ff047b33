package database

import (
	"log"
	"time"

	"github.com/ALuiell/Cinema/model"
	"github.com/ALuiell/Cinema/utils"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("change-me"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	users := []model.User{
		{Username: "manager", Email: "manager@cinema.local", PasswordHash: hashPassword, IsManager: true},
		{Username: "visitor", Email: "visitor@cinema.local", PasswordHash: hashPassword},
	}
	for _, user := range users {
		if err := db.Where(model.User{Username: user.Username}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed user:", user.Username, "error:", err)
		}
	}

	genres := []model.Genre{{Name: "Drama"}, {Name: "Comedy"}, {Name: "Sci-Fi"}, {Name: "Horror"}}
	for i := range genres {
		if err := db.Where(model.Genre{Name: genres[i].Name}).FirstOrCreate(&genres[i]).Error; err != nil {
			log.Println("failed to seed genre:", genres[i].Name, "error:", err)
		}
	}

	halls := []model.Hall{
		{Name: "Red Hall", Capacity: 100},
		{Name: "Blue Hall", Capacity: 50},
	}
	for i := range halls {
		if err := db.Where(model.Hall{Name: halls[i].Name}).FirstOrCreate(&halls[i]).Error; err != nil {
			log.Println("failed to seed hall:", halls[i].Name, "error:", err)
		}
	}

	now := time.Now()
	movies := []model.Movie{
		{
			Title:        "Interstellar",
			OriginalName: "Interstellar",
			Description:  "A team of explorers travel through a wormhole in space.",
			Duration:     169,
			ReleaseDate:  utils.Date(now.Year(), now.Month(), now.Day()),
			AgeLimit:     12,
			Status:       model.MovieNowShowing,
			Slug:         slug.Make("Interstellar"),
			Genres:       []model.Genre{genres[2]},
		},
		{
			Title:        "The Grand Budapest Hotel",
			OriginalName: "The Grand Budapest Hotel",
			Description:  "The adventures of a legendary concierge and his protege.",
			Duration:     99,
			ReleaseDate:  utils.Date(now.Year(), now.Month(), now.Day()),
			AgeLimit:     16,
			Status:       model.MovieNowShowing,
			Slug:         slug.Make("The Grand Budapest Hotel"),
			Genres:       []model.Genre{genres[0], genres[1]},
		},
	}
	for i := range movies {
		if err := db.Where(model.Movie{Slug: movies[i].Slug}).FirstOrCreate(&movies[i]).Error; err != nil {
			log.Println("failed to seed movie:", movies[i].Title, "error:", err)
		}
	}

	// A couple of upcoming sessions so a fresh install is bookable.
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 19, 0, 0, 0, time.Local).AddDate(0, 0, 1)
	sessions := []model.Session{
		{HallID: halls[0].ID, MovieID: movies[0].ID, BaseTicketPrice: 100, StartTime: tomorrow},
		{HallID: halls[1].ID, MovieID: movies[1].ID, BaseTicketPrice: 80, StartTime: tomorrow.Add(2 * time.Hour)},
	}
	for i := range sessions {
		if err := db.Where(model.Session{HallID: sessions[i].HallID, StartTime: sessions[i].StartTime}).
			FirstOrCreate(&sessions[i]).Error; err != nil {
			log.Println("failed to seed session:", err)
		}
	}
}
