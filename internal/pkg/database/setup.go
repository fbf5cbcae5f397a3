package database

import (
	"log"
	"os"
	"path/filepath"

	"github.com/stripehooks/stripehooks/app/models"
	"github.com/stripehooks/stripehooks/app/repository"
	"github.com/stripehooks/stripehooks/internal/pkg/env"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// GetDB returns the global database handle.
func GetDB() *gorm.DB {
	return DB
}

// Path returns the configured database file path.
func Path() string {
	return env.GetEnv("DB_PATH", "stripehooks.db")
}

func SetupDatabase() {
	path := Path()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			panic(err)
		}
	}

	var err error
	// _busy_timeout keeps concurrent webhook writes from failing with
	// SQLITE_BUSY while the admin UI holds a read.
	DB, err = gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_journal_mode=WAL"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	if err := DB.AutoMigrate(
		&models.Setting{},
		&models.ProductRule{},
		&models.PaymentEvent{},
	); err != nil {
		log.Printf("auto migration failed: %v", err)
		panic(err)
	}

	repository.InitializeFactory(DB)

	if err := models.LoadConfig(DB); err != nil {
		panic(err)
	}
}
