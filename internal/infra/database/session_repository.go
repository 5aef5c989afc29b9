package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/pipeline-crm/internal/entity"
)

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// Record implements the soft single-session policy: the user's previous
// active sessions are flipped off and the new login inserted as active, in
// one transaction. Nothing checks session validity at request time.
func (r *SessionRepository) Record(ctx context.Context, s *entity.Session) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE sessions SET active = FALSE WHERE user_id = $1 AND active`,
		s.UserID,
	)
	if err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO sessions (user_id, email, name, source_addr, active)
		VALUES ($1, $2, $3, NULLIF($4, ''), TRUE)
		RETURNING id, login_at
	`,
		s.UserID, s.Email, s.Name, s.SourceAddr,
	).Scan(&s.ID, &s.LoginAt)
	if err != nil {
		return err
	}

	s.Active = true
	return tx.Commit()
}

func (r *SessionRepository) ListActive(ctx context.Context) ([]entity.Session, error) {
	query := `
		SELECT id, user_id, COALESCE(email, ''), COALESCE(name, ''),
		       login_at, COALESCE(source_addr, ''), active
		FROM sessions
		WHERE active
		ORDER BY login_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []entity.Session{}
	for rows.Next() {
		var s entity.Session
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Email, &s.Name, &s.LoginAt, &s.SourceAddr, &s.Active,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
