package db

import (
	"log"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const defaultStoragePath = "data/timekeeper.db"

// StoragePath returns the configured database location, defaulting to
// data/timekeeper.db next to the binary.
func StoragePath() string {
	if path := os.Getenv("STORAGE_PATH"); path != "" {
		return path
	}
	return defaultStoragePath
}

// InitDB opens the shared SQLite store, creating the containing directory
// and an empty database on first run.
func InitDB(path string) *sqlx.DB {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalln("Failed to create storage directory:", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		log.Fatalln("Failed to connect to DB:", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Database connected.")
	return db
}
