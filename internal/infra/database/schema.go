package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/xavierca1/pipeline-crm/internal/entity"
)

// Additive-only schema bootstrap, run on every startup before the server
// accepts traffic. Tables carry their full current column set; columns that
// were introduced after a table first shipped are repeated below as
// ADD COLUMN IF NOT EXISTS so that older databases catch up. Nothing is ever
// dropped or renamed, and there is no rollback path.

var createTables = []struct {
	name string
	ddl  string
}{
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			temp_password TEXT,
			name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`},
	{"prospects", `
		CREATE TABLE IF NOT EXISTS prospects (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			contact_name TEXT,
			email TEXT,
			phone TEXT,
			status TEXT DEFAULT 'Prospection',
			status_date DATE,
			setup_amount NUMERIC(12,2) DEFAULT 0,
			monthly_amount NUMERIC(12,2) DEFAULT 0,
			annual_amount NUMERIC(12,2) DEFAULT 0,
			training_amount NUMERIC(12,2) DEFAULT 0,
			material_amount NUMERIC(12,2) DEFAULT 0,
			chance_percent INTEGER DEFAULT 20,
			assigned_to TEXT,
			next_action TEXT,
			deadline DATE,
			quote_date DATE,
			decision_maker TEXT,
			notes TEXT,
			pdf_key TEXT,
			user_id INTEGER REFERENCES users(id),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`},
	{"interlocutors", `
		CREATE TABLE IF NOT EXISTS interlocutors (
			id SERIAL PRIMARY KEY,
			prospect_id INTEGER NOT NULL REFERENCES prospects(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			role TEXT,
			email TEXT,
			phone TEXT,
			is_principal BOOLEAN DEFAULT FALSE,
			is_decision_maker BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`},
	{"activities", `
		CREATE TABLE IF NOT EXISTS activities (
			id SERIAL PRIMARY KEY,
			prospect_id INTEGER NOT NULL REFERENCES prospects(id) ON DELETE CASCADE,
			activity_type TEXT,
			description TEXT,
			activity_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			created_by TEXT,
			user_id INTEGER REFERENCES users(id)
		)`},
	{"status_history", `
		CREATE TABLE IF NOT EXISTS status_history (
			id SERIAL PRIMARY KEY,
			prospect_id INTEGER NOT NULL REFERENCES prospects(id) ON DELETE CASCADE,
			old_status TEXT,
			new_status TEXT,
			status_date DATE,
			notes TEXT,
			user_id INTEGER REFERENCES users(id),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`},
	{"next_actions", `
		CREATE TABLE IF NOT EXISTS next_actions (
			id SERIAL PRIMARY KEY,
			prospect_id INTEGER NOT NULL REFERENCES prospects(id) ON DELETE CASCADE,
			action_type TEXT,
			planned_date DATE,
			actor TEXT,
			completed BOOLEAN DEFAULT FALSE,
			completed_date DATE,
			completed_note TEXT,
			user_id INTEGER REFERENCES users(id),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`},
	{"sessions", `
		CREATE TABLE IF NOT EXISTS sessions (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			email TEXT,
			name TEXT,
			login_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			source_addr TEXT,
			active BOOLEAN DEFAULT TRUE
		)`},
}

// Columns that arrived after the tables above first shipped. ADD COLUMN IF
// NOT EXISTS is safe to repeat, so a failure here only means an older
// postgres or a concurrent boot and is logged instead of aborting.
var addColumns = []string{
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS temp_password TEXT`,
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS role TEXT NOT NULL DEFAULT 'user'`,
	`ALTER TABLE prospects ADD COLUMN IF NOT EXISTS status_date DATE`,
	`ALTER TABLE prospects ADD COLUMN IF NOT EXISTS annual_amount NUMERIC(12,2) DEFAULT 0`,
	`ALTER TABLE prospects ADD COLUMN IF NOT EXISTS material_amount NUMERIC(12,2) DEFAULT 0`,
	`ALTER TABLE prospects ADD COLUMN IF NOT EXISTS pdf_key TEXT`,
	`ALTER TABLE next_actions ADD COLUMN IF NOT EXISTS completed_note TEXT`,
}

// EnsureSchema is idempotent: a fully migrated database is a no-op, a
// half-migrated one only receives the missing pieces.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, t := range createTables {
		if _, err := db.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
	}

	for _, stmt := range addColumns {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Printf("⚠️ schema: column migration skipped: %v", err)
		}
	}

	return nil
}

// PromoteAdmin elevates the account matching the configured admin email.
// This is the only way an account gets the admin role.
func PromoteAdmin(ctx context.Context, db *sql.DB, email string) error {
	if email == "" {
		return nil
	}
	_, err := db.ExecContext(ctx,
		`UPDATE users SET role = $1 WHERE email = $2`,
		entity.RoleAdmin, email,
	)
	return err
}
