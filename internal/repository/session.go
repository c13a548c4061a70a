package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fitweb/fitweb/internal/model"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(session *model.Session) error
	ByID(id string) (*model.Session, error)
	Delete(id string) error
	DeleteExpired() (int64, error)
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO sessions (id, token, user_id, display_name, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(query,
		session.ID,
		session.Token,
		session.UserID,
		session.DisplayName,
		session.CreatedAt,
		session.ExpiresAt,
	)
	return err
}

func (r *sessionRepository) ByID(id string) (*model.Session, error) {
	var s model.Session
	err := r.db.Get(&s, `SELECT * FROM sessions WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if s.Expired() {
		// Expired rows are dead weight; drop them on first touch.
		_ = r.Delete(s.ID)
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

// Delete is idempotent: removing a session that is already gone is not an
// error, since an upstream 401 and an explicit logout can race.
func (r *sessionRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (r *sessionRepository) DeleteExpired() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE expires_at < $1`, time.Now())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
