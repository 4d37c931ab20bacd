package database

import (
	"database/sql"
	"embed"
	"io/fs"
	"path"
	"sort"
	"time"

	"github.com/alimgiray/gscope-analytics/pkg/logger"
	_ "github.com/mattn/go-sqlite3"
)

const memoryPath = ":memory:"

//go:embed migrations/*.sql
var migrations embed.FS

// Open opens the SQLite database at dbPath, applies the connection settings
// and runs the embedded migrations.
func Open(dbPath string) (*sql.DB, error) {
	dsn := dbPath
	if dbPath != memoryPath {
		dsn += "?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON&_busy_timeout=30000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// Every connection to :memory: is a separate database
	if dbPath == memoryPath {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
	}
	db.SetConnMaxLifetime(time.Hour)

	// Test the connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err = RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// RunMigrations executes the embedded SQL scripts in file name order
func RunMigrations(db *sql.DB) error {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		sqlContent, err := migrations.ReadFile(file)
		if err != nil {
			return err
		}

		if _, err = db.Exec(string(sqlContent)); err != nil {
			return err
		}

		logger.WithField("script", path.Base(file)).Debug("Executed SQL script")
	}

	return nil
}
