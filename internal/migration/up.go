package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrateUp applies every pending migration. A database left dirty by a failed
// run is forced back to the previous version and migrated once more.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not create source driver: %w", err)
	}

	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to initialize migration: %w", err)
	}

	err = m.Up()
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	var dirtyErr migrate.ErrDirty
	if !errors.As(err, &dirtyErr) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	prev, err := previousVersion(dirtyErr.Version)
	if err != nil {
		return err
	}
	logger.Warnf(ctx, "⚠️  database dirty at version %d, forcing back to %d", dirtyErr.Version, prev)
	if ferr := m.Force(prev); ferr != nil {
		return fmt.Errorf("failed to force to version %d: %w", prev, ferr)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed after force: %w", err)
	}
	return nil
}

// previousVersion returns the embedded version preceding dirtyVersion, or
// migrate.NilVersion when dirtyVersion is the first one.
func previousVersion(dirtyVersion int) (int, error) {
	versions, err := embeddedVersions()
	if err != nil {
		return 0, fmt.Errorf("dirty at %d but failed to read migrations directory: %w", dirtyVersion, err)
	}

	i := slices.Index(versions, dirtyVersion)
	switch {
	case i < 0:
		return 0, fmt.Errorf("could not determine previous version before %d", dirtyVersion)
	case i == 0:
		return migrate.NilVersion, nil
	default:
		return versions[i-1], nil
	}
}

func embeddedVersions() ([]int, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, err
	}
	var versions []int
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		// filename format: <version>_<description>.up.sql
		verStr, _, _ := strings.Cut(name, "_")
		v, err := strconv.Atoi(verStr)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	slices.Sort(versions)
	return versions, nil
}
