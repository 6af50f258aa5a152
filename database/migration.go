package database

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"

	"github.com/mbolis/quick-feedback/log"
)

//go:embed migrations
var schemaMigrations embed.FS

// migrateDB applies the embedded migrations that db has not seen yet. A
// schema left dirty by a failed run is reported, never forced.
func migrateDB(db *sql.DB) error {
	src, err := iofs.New(schemaMigrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "migrations.source")
	}

	dst, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return errors.Wrap(err, "migrations.target")
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", dst)
	if err != nil {
		return errors.Wrap(err, "migrations.init")
	}

	before, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return errors.Wrap(err, "migrations.version")
	}
	if dirty {
		return errors.Errorf("migrations: schema version %d is dirty, fix it by hand", before)
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Debugf("migrations: schema at version %d", before)
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "migrations.up")
	}

	after, _, _ := m.Version()
	log.Infof("migrations: schema migrated from version %d to %d", before, after)
	return nil
}
