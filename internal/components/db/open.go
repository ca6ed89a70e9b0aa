package db

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	devenv "schedulestorm-backend/dev/env"
)

// Config selects the database the catalog lives in, either a local sqlite file
// or a remote libsql url.
type Config struct {
	File string `json:"file"`
	Url  string `json:"url"`
}

// Open opens the configured database and makes sure the schema exists.
func (config Config) Open() (*sql.DB, error) {
	var (
		database *sql.DB
		err      error
	)
	switch {
	case config.Url != "":
		database, err = openLibsql(config.Url)
	case config.File != "":
		database, err = openFile(config.File)
	default:
		return nil, fmt.Errorf("neither a database file nor url was specified")
	}
	if err != nil {
		return nil, err
	}

	_, err = database.Exec(Schema)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return database, nil
}

func openLibsql(url string) (*sql.DB, error) {
	if !strings.HasPrefix(url, "libsql://") && !strings.HasPrefix(url, "http") {
		return nil, fmt.Errorf("unsupported database url %q", url)
	}
	return sql.Open("libsql", url)
}

func openFile(path string) (*sql.DB, error) {
	dbpath := path
	if path != ":memory:" {
		var err error
		dbpath, err = devenv.ResolvePath(path)
		if err != nil {
			return nil, err
		}
		_, statErr := os.Stat(dbpath)
		if os.IsNotExist(statErr) {
			f, err := os.Create(dbpath)
			if err != nil {
				return nil, err
			}
			f.Close()
		}
	}

	database, err := sql.Open("sqlite", dbpath)
	if err != nil {
		return nil, err
	}
	// sqlite only allows one writer at a time, WAL lets readers proceed alongside it.
	database.SetMaxOpenConns(1)
	_, err = database.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
