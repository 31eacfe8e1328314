package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/odooforge/odooforge/internal/core/crypto"
	"github.com/odooforge/odooforge/internal/core/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// =============================================================================
// SQLiteStore
// =============================================================================

// SQLiteStore implements Store using SQLite. Credentials are sealed with
// the passphrase before insert and opened on every read, so the database
// file never holds a plaintext secret.
type SQLiteStore struct {
	db         *sqlx.DB
	passphrase string
}

// NewSQLiteStore opens (or creates) the profile database at dsn, runs
// migrations, and returns a store sealing credentials with passphrase.
func NewSQLiteStore(dsn, passphrase string) (*SQLiteStore, error) {
	if passphrase == "" {
		return nil, NewStoreError("NewSQLiteStore", "", "a sealing passphrase is required", ErrPassphraseRequired)
	}

	db, err := sqlx.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, NewStoreError("NewSQLiteStore", "", "failed to open database", ErrConnectionFailed)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "failed to ping database", ErrConnectionFailed)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", err.Error(), ErrMigrationFailed)
	}

	return &SQLiteStore{db: db, passphrase: passphrase}, nil
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// Row Mapping
// =============================================================================

// profileRow is a profiles table row. The config column is the JSON
// snapshot with its credential fields blanked; the sealed columns carry
// those credentials encrypted.
type profileRow struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Config        string `db:"config"`
	DBPassword    string `db:"db_password"`
	AdminPassword string `db:"admin_password"`
	CreatedAt     string `db:"created_at"`
	UpdatedAt     string `db:"updated_at"`
}

// toRow seals the profile's credentials and flattens it for storage.
func (s *SQLiteStore) toRow(op string, profile *domain.Profile) (profileRow, error) {
	sealedDB, err := crypto.Seal([]byte(profile.Config.DBPassword), s.passphrase)
	if err != nil {
		return profileRow{}, NewStoreError(op, profile.ID, "failed to seal database password", err)
	}
	sealedAdmin, err := crypto.Seal([]byte(profile.Config.AdminPassword), s.passphrase)
	if err != nil {
		return profileRow{}, NewStoreError(op, profile.ID, "failed to seal admin password", err)
	}

	cfg := profile.Config
	cfg.DBPassword = ""
	cfg.AdminPassword = ""
	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return profileRow{}, NewStoreError(op, profile.ID, "failed to serialize config", ErrInvalidData)
	}

	return profileRow{
		ID:            profile.ID,
		Name:          profile.Name,
		Config:        string(configJSON),
		DBPassword:    sealedDB,
		AdminPassword: sealedAdmin,
		CreatedAt:     profile.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     profile.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// toProfile opens the sealed credentials and rebuilds the domain profile.
func (s *SQLiteStore) toProfile(op string, row *profileRow) (*domain.Profile, error) {
	var cfg domain.StackConfig
	if err := json.Unmarshal([]byte(row.Config), &cfg); err != nil {
		return nil, NewStoreError(op, row.ID, "failed to parse config", ErrInvalidData)
	}

	dbPassword, err := crypto.Open(row.DBPassword, s.passphrase)
	if err != nil {
		return nil, NewStoreError(op, row.ID, "failed to open database password", err)
	}
	adminPassword, err := crypto.Open(row.AdminPassword, s.passphrase)
	if err != nil {
		return nil, NewStoreError(op, row.ID, "failed to open admin password", err)
	}
	cfg.DBPassword = string(dbPassword)
	cfg.AdminPassword = string(adminPassword)

	createdAt, err := time.Parse(time.RFC3339, row.CreatedAt)
	if err != nil {
		return nil, NewStoreError(op, row.ID, "failed to parse created_at", ErrInvalidData)
	}
	updatedAt, err := time.Parse(time.RFC3339, row.UpdatedAt)
	if err != nil {
		return nil, NewStoreError(op, row.ID, "failed to parse updated_at", ErrInvalidData)
	}

	return &domain.Profile{
		ID:        row.ID,
		Name:      row.Name,
		Config:    cfg,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// =============================================================================
// Profile Operations
// =============================================================================

func (s *SQLiteStore) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	row, err := s.toRow("CreateProfile", profile)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (
			id, name, config, db_password, admin_password, created_at, updated_at
		) VALUES (
			:id, :name, :config, :db_password, :admin_password, :created_at, :updated_at
		)`

	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: profiles.id") {
			return NewStoreError("CreateProfile", profile.ID, "profile with this ID already exists", ErrDuplicateID)
		}
		if strings.Contains(err.Error(), "UNIQUE constraint failed: profiles.name") {
			return NewStoreError("CreateProfile", profile.Name, "profile with this name already exists", ErrDuplicateName)
		}
		return NewStoreError("CreateProfile", profile.ID, err.Error(), err)
	}

	return nil
}

func (s *SQLiteStore) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT * FROM profiles WHERE id = ?`

	var row profileRow
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetProfile", id, "profile not found", ErrNotFound)
		}
		return nil, NewStoreError("GetProfile", id, err.Error(), err)
	}

	return s.toProfile("GetProfile", &row)
}

func (s *SQLiteStore) GetProfileByName(ctx context.Context, name string) (*domain.Profile, error) {
	query := `SELECT * FROM profiles WHERE name = ?`

	var row profileRow
	if err := s.db.GetContext(ctx, &row, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetProfileByName", name, "profile not found", ErrNotFound)
		}
		return nil, NewStoreError("GetProfileByName", name, err.Error(), err)
	}

	return s.toProfile("GetProfileByName", &row)
}

func (s *SQLiteStore) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	row, err := s.toRow("UpdateProfile", profile)
	if err != nil {
		return err
	}

	query := `
		UPDATE profiles SET
			name = :name,
			config = :config,
			db_password = :db_password,
			admin_password = :admin_password,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := s.db.NamedExecContext(ctx, query, row)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: profiles.name") {
			return NewStoreError("UpdateProfile", profile.Name, "profile with this name already exists", ErrDuplicateName)
		}
		return NewStoreError("UpdateProfile", profile.ID, err.Error(), err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return NewStoreError("UpdateProfile", profile.ID, "profile not found", ErrNotFound)
	}

	return nil
}

func (s *SQLiteStore) DeleteProfile(ctx context.Context, id string) error {
	query := `DELETE FROM profiles WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return NewStoreError("DeleteProfile", id, err.Error(), err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return NewStoreError("DeleteProfile", id, "profile not found", ErrNotFound)
	}

	return nil
}

func (s *SQLiteStore) ListProfiles(ctx context.Context, opts ListOptions) ([]domain.Profile, error) {
	opts = opts.Normalize()
	query := `SELECT * FROM profiles ORDER BY created_at DESC, name ASC LIMIT ? OFFSET ?`

	var rows []profileRow
	if err := s.db.SelectContext(ctx, &rows, query, opts.Limit, opts.Offset); err != nil {
		return nil, NewStoreError("ListProfiles", "", err.Error(), err)
	}

	profiles := make([]domain.Profile, 0, len(rows))
	for _, row := range rows {
		profile, err := s.toProfile("ListProfiles", &row)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}

	return profiles, nil
}
