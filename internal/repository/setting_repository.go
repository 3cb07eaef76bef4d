package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/apperrors"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/model"
)

// SettingRepository provides data access methods for the setting table.
// Values flagged encrypted are stored as fernet ciphertext; encryption and
// decryption happen in the service layer, never here.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get retrieves a setting by key. Returns apperrors.ErrSettingNotFound when
// the key has never been stored.
func (r *SettingRepository) Get(key string) (model.Setting, error) {
	query := `
          SELECT key, value, encrypted, updated_at
          FROM setting
          WHERE key = ?
      `

	var setting model.Setting
	var updatedAt string

	err := r.db.QueryRow(query, key).Scan(
		&setting.Key,
		&setting.Value,
		&setting.Encrypted,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Setting{}, fmt.Errorf("%w: %s", apperrors.ErrSettingNotFound, key)
	}
	if err != nil {
		return model.Setting{}, fmt.Errorf("failed to query setting table: %w", err)
	}

	setting.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return model.Setting{}, fmt.Errorf("failed to parse setting timestamp %q: %w", updatedAt, err)
	}

	return setting, nil
}

// Set stores a setting, replacing any existing value for the same key.
func (r *SettingRepository) Set(setting model.Setting) error {
	query := `
          INSERT INTO setting (key, value, encrypted, updated_at)
          VALUES (?, ?, ?, ?)
          ON CONFLICT (key) DO UPDATE SET
              value = excluded.value,
              encrypted = excluded.encrypted,
              updated_at = excluded.updated_at
      `

	updatedAt := setting.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(query, setting.Key, setting.Value, setting.Encrypted, updatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", setting.Key, err)
	}

	return nil
}
