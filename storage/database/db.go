package database

import (
	"database/sql"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/trezcool/goose"

	"github.com/trezcool/registrar/core"
	"github.com/trezcool/registrar/fs"
)

const (
	EnginePostgres = "postgres"
	EngineSqlite   = "sqlite3"
	EngineMemory   = "memory"

	dirPermissions = 0750
	busyTimeoutMs  = 5000
)

// MigrationCommands are the goose commands exposed to the CLI.
var MigrationCommands = []string{"up", "up-by-one", "down", "redo"}

var gooseFuncs = map[string]func(*sql.DB, fs.FS, string) error{ // mockable
	"up":        goose.Up,
	"up-by-one": goose.UpByOne,
	"down":      goose.Down,
	"redo":      goose.Redo,
}

func dsn(conf *core.Config) (string, error) {
	switch conf.Storage.Engine {
	case EngineSqlite:
		if err := os.MkdirAll(filepath.Dir(conf.Storage.Path), dirPermissions); err != nil {
			return "", errors.Wrap(err, "creating storage directory")
		}
		return fmt.Sprintf("file:%s?_busy_timeout=%d", conf.Storage.Path, busyTimeoutMs), nil
	case EnginePostgres:
		sslMode := "require"
		if conf.Storage.DisableTLS {
			sslMode = "disable"
		}
		q := make(url.Values)
		q.Set("sslmode", sslMode)
		q.Set("timezone", "utc")

		u := url.URL{
			Scheme:   conf.Storage.Engine,
			User:     url.UserPassword(conf.Storage.User, conf.Storage.Password),
			Host:     conf.Storage.Address(),
			Path:     conf.Storage.Name,
			RawQuery: q.Encode(),
		}
		return u.String(), nil
	default:
		return "", errors.Errorf("unsupported storage engine %q", conf.Storage.Engine)
	}
}

// Open connects to the configured SQL storage engine.
func Open(conf *core.Config) (*sqlx.DB, error) {
	source, err := dsn(conf)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open(conf.Storage.Engine, source)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if conf.Storage.Engine == EngineSqlite {
		// a single writer avoids "database is locked" on the client store
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// Ping waits for the database to be ready. Waits 100ms longer between each attempt.
func Ping(db *sqlx.DB, maxAttempts int) error {
	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// Migrate applies every pending migration.
func Migrate(db *sqlx.DB) error {
	return RunMigration(db, "up")
}

// RunMigration runs one goose command against the embedded migrations.
func RunMigration(db *sqlx.DB, command string) error {
	run, ok := gooseFuncs[command]
	if !ok {
		return errors.Errorf("%q: no such command", command)
	}
	if err := goose.SetDialect(db.DriverName()); err != nil {
		return errors.Wrap(err, "setting migrations dialect")
	}
	if err := run(db.DB, appfs.FS, "migrations"); err != nil {
		return errors.Wrapf(err, "running migrations %s", command)
	}
	return nil
}
