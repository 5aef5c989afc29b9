package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/pipeline-crm/internal/entity"
)

type InterlocutorRepository struct {
	DB *sql.DB
}

func NewInterlocutorRepository(db *sql.DB) *InterlocutorRepository {
	return &InterlocutorRepository{DB: db}
}

// ownsProspect guards every mutation: interlocutors carry no owner column,
// ownership flows through the prospect.
func ownsProspect(ctx context.Context, tx *sql.Tx, prospectID, userID int64) error {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM prospects WHERE id = $1 AND user_id = $2`,
		prospectID, userID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return entity.ErrNotFound
	}
	return err
}

func (r *InterlocutorRepository) Create(ctx context.Context, i *entity.Interlocutor, userID int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := ownsProspect(ctx, tx, i.ProspectID, userID); err != nil {
		return err
	}

	if i.IsPrincipal {
		if err := clearPrincipal(ctx, tx, i.ProspectID, 0); err != nil {
			return err
		}
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO interlocutors (prospect_id, name, role, email, phone, is_principal, is_decision_maker)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7)
		RETURNING id, created_at
	`,
		i.ProspectID, i.Name, i.Role, i.Email, i.Phone, i.IsPrincipal, i.IsDecisionMaker,
	).Scan(&i.ID, &i.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *InterlocutorRepository) ListByProspect(ctx context.Context, prospectID, userID int64) ([]entity.Interlocutor, error) {
	query := `
		SELECT i.id, i.prospect_id, i.name, COALESCE(i.role, ''), COALESCE(i.email, ''),
		       COALESCE(i.phone, ''), i.is_principal, i.is_decision_maker, i.created_at
		FROM interlocutors i
		JOIN prospects p ON p.id = i.prospect_id
		WHERE i.prospect_id = $1 AND p.user_id = $2
		ORDER BY i.is_principal DESC, i.name
	`

	rows, err := r.DB.QueryContext(ctx, query, prospectID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []entity.Interlocutor{}
	for rows.Next() {
		var i entity.Interlocutor
		if err := rows.Scan(
			&i.ID, &i.ProspectID, &i.Name, &i.Role, &i.Email,
			&i.Phone, &i.IsPrincipal, &i.IsDecisionMaker, &i.CreatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// Update replaces the mutable fields. Setting is_principal=true demotes the
// siblings in the same transaction, so the one-principal-per-prospect
// invariant holds at commit no matter how the calls interleave.
func (r *InterlocutorRepository) Update(ctx context.Context, i *entity.Interlocutor, userID int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var prospectID int64
	err = tx.QueryRowContext(ctx, `
		SELECT i.prospect_id
		FROM interlocutors i
		JOIN prospects p ON p.id = i.prospect_id
		WHERE i.id = $1 AND p.user_id = $2
		FOR UPDATE OF i
	`, i.ID, userID).Scan(&prospectID)
	if err == sql.ErrNoRows {
		return entity.ErrNotFound
	}
	if err != nil {
		return err
	}

	if i.IsPrincipal {
		if err := clearPrincipal(ctx, tx, prospectID, i.ID); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE interlocutors
		SET name = $1, role = NULLIF($2, ''), email = NULLIF($3, ''), phone = NULLIF($4, ''),
		    is_principal = $5, is_decision_maker = $6
		WHERE id = $7
	`,
		i.Name, i.Role, i.Email, i.Phone, i.IsPrincipal, i.IsDecisionMaker, i.ID,
	)
	if err != nil {
		return err
	}

	i.ProspectID = prospectID
	return tx.Commit()
}

func (r *InterlocutorRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM interlocutors i
		USING prospects p
		WHERE i.id = $1 AND p.id = i.prospect_id AND p.user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func clearPrincipal(ctx context.Context, tx *sql.Tx, prospectID, keepID int64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE interlocutors SET is_principal = FALSE WHERE prospect_id = $1 AND id <> $2`,
		prospectID, keepID,
	)
	return err
}
