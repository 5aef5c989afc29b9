package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/xavierca1/pipeline-crm/internal/infra/database"
)

// One-shot importer for a seed-data.json export. Rows keep their original
// ids and duplicates are skipped, so rerunning the import is harmless.

type seedFile struct {
	Users []struct {
		ID           int64   `json:"id"`
		Email        string  `json:"email"`
		Password     string  `json:"password"`
		TempPassword *string `json:"temp_password"`
		Name         string  `json:"name"`
		CreatedAt    string  `json:"created_at"`
	} `json:"users"`
	Prospects []struct {
		ID             int64   `json:"id"`
		Name           string  `json:"name"`
		ContactName    *string `json:"contact_name"`
		Email          *string `json:"email"`
		Phone          *string `json:"phone"`
		Status         *string `json:"status"`
		StatusDate     *string `json:"status_date"`
		SetupAmount    float64 `json:"setup_amount"`
		MonthlyAmount  float64 `json:"monthly_amount"`
		AnnualAmount   float64 `json:"annual_amount"`
		TrainingAmount float64 `json:"training_amount"`
		MaterialAmount float64 `json:"material_amount"`
		ChancePercent  int     `json:"chance_percent"`
		AssignedTo     *string `json:"assigned_to"`
		NextAction     *string `json:"next_action"`
		Deadline       *string `json:"deadline"`
		QuoteDate      *string `json:"quote_date"`
		DecisionMaker  *string `json:"decision_maker"`
		Notes          *string `json:"notes"`
		UserID         *int64  `json:"user_id"`
		CreatedAt      string  `json:"created_at"`
		UpdatedAt      string  `json:"updated_at"`
	} `json:"prospects"`
	Activities []struct {
		ID           int64   `json:"id"`
		ProspectID   int64   `json:"prospect_id"`
		ActivityType *string `json:"activity_type"`
		Description  *string `json:"description"`
		ActivityDate string  `json:"activity_date"`
		CreatedBy    *string `json:"created_by"`
		UserID       *int64  `json:"user_id"`
	} `json:"activities"`
	NextActions []struct {
		ID            int64   `json:"id"`
		ProspectID    int64   `json:"prospect_id"`
		ActionType    *string `json:"action_type"`
		PlannedDate   *string `json:"planned_date"`
		Actor         *string `json:"actor"`
		Completed     bool    `json:"completed"`
		CompletedDate *string `json:"completed_date"`
		CompletedNote *string `json:"completed_note"`
		UserID        *int64  `json:"user_id"`
		CreatedAt     string  `json:"created_at"`
	} `json:"next_actions"`
	StatusHistory []struct {
		ID         int64   `json:"id"`
		ProspectID int64   `json:"prospect_id"`
		OldStatus  *string `json:"old_status"`
		NewStatus  *string `json:"new_status"`
		StatusDate *string `json:"status_date"`
		Notes      *string `json:"notes"`
		UserID     *int64  `json:"user_id"`
		CreatedAt  string  `json:"created_at"`
	} `json:"status_history"`
}

func main() {
	godotenv.Load()

	path := flag.String("seed", "seed-data.json", "path to the seed export")
	flag.Parse()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("❌ read %s: %v", *path, err)
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		log.Fatalf("❌ parse %s: %v", *path, err)
	}

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("❌ schema: %v", err)
	}

	log.Printf("📦 importing %d users...", len(seed.Users))
	for _, u := range seed.Users {
		_, err := db.ExecContext(ctx, `
			INSERT INTO users (id, email, password, temp_password, name, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (email) DO NOTHING
		`, u.ID, u.Email, u.Password, u.TempPassword, u.Name, u.CreatedAt)
		if err != nil {
			log.Fatalf("❌ user %d: %v", u.ID, err)
		}
	}

	log.Printf("📦 importing %d prospects...", len(seed.Prospects))
	for _, p := range seed.Prospects {
		_, err := db.ExecContext(ctx, `
			INSERT INTO prospects
			(id, name, contact_name, email, phone, status, status_date, setup_amount,
			 monthly_amount, annual_amount, training_amount, material_amount, chance_percent,
			 assigned_to, next_action, deadline, quote_date, decision_maker, notes, user_id,
			 created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			        $17, $18, $19, $20, $21, $22)
			ON CONFLICT (id) DO NOTHING
		`, p.ID, p.Name, p.ContactName, p.Email, p.Phone, p.Status, p.StatusDate,
			p.SetupAmount, p.MonthlyAmount, p.AnnualAmount, p.TrainingAmount,
			p.MaterialAmount, p.ChancePercent, p.AssignedTo, p.NextAction, p.Deadline,
			p.QuoteDate, p.DecisionMaker, p.Notes, p.UserID, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			log.Fatalf("❌ prospect %d: %v", p.ID, err)
		}
	}

	log.Printf("📦 importing %d activities...", len(seed.Activities))
	for _, a := range seed.Activities {
		_, err := db.ExecContext(ctx, `
			INSERT INTO activities (id, prospect_id, activity_type, description, activity_date, created_by, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING
		`, a.ID, a.ProspectID, a.ActivityType, a.Description, a.ActivityDate, a.CreatedBy, a.UserID)
		if err != nil {
			log.Fatalf("❌ activity %d: %v", a.ID, err)
		}
	}

	log.Printf("📦 importing %d next actions...", len(seed.NextActions))
	for _, a := range seed.NextActions {
		_, err := db.ExecContext(ctx, `
			INSERT INTO next_actions
			(id, prospect_id, action_type, planned_date, actor, completed, completed_date, completed_note, user_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO NOTHING
		`, a.ID, a.ProspectID, a.ActionType, a.PlannedDate, a.Actor, a.Completed,
			a.CompletedDate, a.CompletedNote, a.UserID, a.CreatedAt)
		if err != nil {
			log.Fatalf("❌ next action %d: %v", a.ID, err)
		}
	}

	log.Printf("📦 importing %d status history entries...", len(seed.StatusHistory))
	for _, h := range seed.StatusHistory {
		_, err := db.ExecContext(ctx, `
			INSERT INTO status_history
			(id, prospect_id, old_status, new_status, status_date, notes, user_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING
		`, h.ID, h.ProspectID, h.OldStatus, h.NewStatus, h.StatusDate, h.Notes, h.UserID, h.CreatedAt)
		if err != nil {
			log.Fatalf("❌ history %d: %v", h.ID, err)
		}
	}

	// Imported rows carried explicit ids, the sequences have to catch up.
	for _, table := range []string{"users", "prospects", "activities", "next_actions", "status_history"} {
		_, err := db.ExecContext(ctx,
			`SELECT setval(pg_get_serial_sequence($1, 'id'), COALESCE((SELECT MAX(id) FROM `+table+`), 1))`,
			table)
		if err != nil {
			log.Fatalf("❌ sequence for %s: %v", table, err)
		}
	}

	log.Println("✅ seed data imported")
}
