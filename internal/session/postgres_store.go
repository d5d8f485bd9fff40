package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

type sessionRecord struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)"`
	Data      []byte    `gorm:"type:jsonb;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	UpdatedAt time.Time
}

func (sessionRecord) TableName() string {
	return "console_sessions"
}

// PostgresStore keeps sessions in the console_sessions table.
type PostgresStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

// Migrate creates the table when missing.
func (p *PostgresStore) Migrate() error {
	return p.db.AutoMigrate(&sessionRecord{})
}

func (p *PostgresStore) Get(ctx context.Context, id string) (*Session, error) {
	var rec sessionRecord
	err := p.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, p.now()).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(rec.Data)
}

// Save updates the row, inserting it the first time. A concurrent first save
// of the same session loses the insert race and falls back to the update.
func (p *PostgresStore) Save(ctx context.Context, s *Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}

	updated, err := p.update(ctx, s.ID, payload, s.ExpiresAt)
	if err != nil || updated {
		return err
	}

	rec := sessionRecord{ID: s.ID, Data: payload, ExpiresAt: s.ExpiresAt, UpdatedAt: p.now()}
	err = p.db.WithContext(ctx).Create(&rec).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		_, err = p.update(ctx, s.ID, payload, s.ExpiresAt)
	}
	return err
}

func (p *PostgresStore) update(ctx context.Context, id string, payload []byte, expiresAt time.Time) (bool, error) {
	result := p.db.WithContext(ctx).
		Model(&sessionRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"data":       payload,
			"expires_at": expiresAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Where("id = ?", id).Delete(&sessionRecord{}).Error
}

// PurgeExpired deletes expired rows and returns how many went.
func (p *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	result := p.db.WithContext(ctx).Where("expires_at <= ?", p.now()).Delete(&sessionRecord{})
	return result.RowsAffected, result.Error
}
