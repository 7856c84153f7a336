// Package user provides the users repository
package user

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/apperrors"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/database"
)

// Record is a stored user row including the credential hash. It never leaves
// the application layer.
type Record struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	Created      time.Time
}

type UserRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewUserRepository(db *sql.DB, logger *logging.ChanneledLogger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// FindByID loads a user by id.
func (r *UserRepository) FindByID(id string) (*Record, error) {
	return r.loadFromDB(`SELECT id, email, password_hash, display_name, created_at FROM users WHERE id = ?`, id)
}

// FindByEmail loads a user by email.
func (r *UserRepository) FindByEmail(email string) (*Record, error) {
	return r.loadFromDB(`SELECT id, email, password_hash, display_name, created_at FROM users WHERE email = ?`, email)
}

// Store inserts a new user. A duplicate email fails with ErrConflict.
func (r *UserRepository) Store(record *Record) error {
	start := time.Now()

	var exists bool
	if err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, record.Email).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check user email: %w: %w", apperrors.ErrStorage, err)
	}
	if exists {
		return fmt.Errorf("email %s already registered: %w", record.Email, apperrors.ErrConflict)
	}

	query := `INSERT INTO users (id, email, password_hash, display_name, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, record.ID, record.Email, record.PasswordHash, record.DisplayName,
		record.Created.Format("2006-01-02 15:04:05"))
	if err != nil {
		return fmt.Errorf("failed to insert user: %w: %w", apperrors.ErrStorage, err)
	}

	database.CheckAndLogSlowQuery(r.logger, "USER_INSERT", time.Since(start))
	return nil
}

func (r *UserRepository) loadFromDB(query string, arg any) (*Record, error) {
	start := time.Now()
	row := r.db.QueryRow(query, arg)

	var record Record
	var displayName sql.NullString
	var createdStr string

	err := row.Scan(&record.ID, &record.Email, &record.PasswordHash, &displayName, &createdStr)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w: %w", apperrors.ErrStorage, err)
	}

	record.DisplayName = displayName.String
	if created, err := time.Parse("2006-01-02 15:04:05", createdStr); err == nil {
		record.Created = created
	}

	database.CheckAndLogSlowQuery(r.logger, "USER_FIND", time.Since(start))
	return &record, nil
}
