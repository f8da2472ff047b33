package database

import (
	"fmt"
	"strconv"

	"github.com/ALuiell/Cinema/config"
	"github.com/ALuiell/Cinema/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	p := config.Config("DB_PORT")
	port, err := strconv.ParseUint(p, 10, 32)
	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Config("DB_HOST"), port, config.Config("DB_USER"),
		config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	fmt.Println("Connection Opened to Database")
	if err := Migrate(DB); err != nil {
		panic(fmt.Sprintf("failed to migrate database: %v", err))
	}
	fmt.Println("Database Migrated")

	SeedData(DB)
}

// Migrate runs the schema migration for all core models plus the partial
// unique index that guarantees no two live tickets share a seat on the same
// session. Cancelled tickets are excluded so their seats can be resold.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Genre{},
		&model.Movie{},
		&model.Hall{},
		&model.Session{},
		&model.Order{},
		&model.Ticket{},
	); err != nil {
		return err
	}
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_tickets_live_seat
		 ON tickets (session_id, seat_number)
		 WHERE status <> 'CANCELLED' AND deleted_at IS NULL`,
	).Error
}

// Locked adds a FOR UPDATE clause on postgres. SQLite (used by the test
// suite) rejects the syntax and serializes writers on its own.
func Locked(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
