package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/fhuszti/lsl-go/internal/migration"
	"github.com/go-sql-driver/mysql"
)

type TestDB struct {
	DB      *sql.DB
	Cleanup func() error
}

// SetupTestDB creates a fresh database on the server named by TEST_DB_DSN.
// When migrate is true the schema is applied before returning.
func SetupTestDB(migrate bool) (*TestDB, error) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("TEST_DB_DSN env-var not set")
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN %q: %w", dsn, err)
	}
	cfg.ParseTime = true
	cfg.MultiStatements = true

	origName := cfg.DBName
	cfg.DBName = ""
	rootDB, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open root DB: %w", err)
	}

	dbName := fmt.Sprintf("%s_%d", origName, time.Now().UnixNano())
	if _, err := rootDB.Exec("CREATE DATABASE " + dbName + " CHARACTER SET utf8mb4"); err != nil {
		rootDB.Close()
		return nil, fmt.Errorf("create database %q: %w", dbName, err)
	}

	drop := func() error {
		if _, err := rootDB.Exec("DROP DATABASE " + dbName); err != nil {
			rootDB.Close()
			return fmt.Errorf("drop database %q: %w", dbName, err)
		}
		return rootDB.Close()
	}

	cfg.DBName = dbName
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		_ = drop()
		return nil, fmt.Errorf("open test DB %q: %w", dbName, err)
	}

	if migrate {
		if err := migration.MigrateUp(context.Background(), db); err != nil {
			db.Close()
			_ = drop()
			return nil, fmt.Errorf("migrate test DB: %w", err)
		}
	}

	return &TestDB{
		DB: db,
		Cleanup: func() error {
			if err := db.Close(); err != nil {
				return err
			}
			return drop()
		},
	}, nil
}
