package repositories

import (
	"log"

	"github.com/rohits-web03/ideaorbit/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDatabase opens the Postgres connection and runs migrations.
func ConnectDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	log.Println("Successfully connected to database")
	return db, nil
}

// AutoMigrate creates or updates the schema. Exported so tests can reuse
// it against an in-memory database.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Idea{},
		&models.IdeaImage{},
		&models.Like{},
		&models.Connection{},
	)
}
