package db

import (
	"log"
	"strings"

	"meriter/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the database named by databaseURL and migrates the schema.
// postgres:// (or postgresql://) selects Postgres; sqlite://<path> selects
// the pure-Go SQLite driver, which is also the fallback for local dev.
func Init(databaseURL string) {
	if databaseURL == "" {
		databaseURL = "sqlite://meriter.db"
		log.Println("DATABASE_URL not set, defaulting to 'sqlite://meriter.db'")
	}

	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		dialector = postgres.Open(databaseURL)
	case strings.HasPrefix(databaseURL, "sqlite://"):
		dialector = sqlite.Open(strings.TrimPrefix(databaseURL, "sqlite://"))
	default:
		log.Fatalf("Invalid DATABASE_URL prefix, must start with 'postgres://' or 'sqlite://'")
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")
}

// InitTest opens an isolated in-memory database with the full schema. Writes
// share a single connection so concurrent pushes serialize at the pool
// instead of tripping SQLite busy errors.
func InitTest() {
	var err error
	DB, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatalf("Failed to get test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migrate(DB); err != nil {
		log.Fatalf("Failed to migrate test database: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Community{},
		&models.CommunityAdmin{},
		&models.Publication{},
		&models.Wallet{},
		&models.Transaction{},
		&models.Counter{},
	)
}
