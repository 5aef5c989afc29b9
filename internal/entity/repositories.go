package entity

import "context"

// Repository contracts implemented by internal/infra/database. Handlers and
// usecases only ever see these interfaces.

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdatePassword(ctx context.Context, id int64, hashed, tempPassword string) error
	Delete(ctx context.Context, id int64) error
}

type ProspectRepository interface {
	Create(ctx context.Context, p *Prospect) error
	ListByOwner(ctx context.Context, userID int64) ([]Prospect, error)
	FindByID(ctx context.Context, id, userID int64) (*Prospect, error)

	// Update replaces the mutable fields of the row scoped by (p.ID,
	// p.UserID). When the stored status is non-empty and differs from
	// p.Status it stamps status_date and appends a status_history row in
	// the same transaction, and returns the transition. Returns
	// (nil, ErrNotFound) when no row matches.
	Update(ctx context.Context, p *Prospect, historyNotes string) (*StatusTransition, error)

	// Delete cascades to interlocutors, next actions, activities and
	// status history.
	Delete(ctx context.Context, id, userID int64) error

	SetPDFKey(ctx context.Context, id, userID int64, key string) error
}

type InterlocutorRepository interface {
	// Create and Update clear is_principal on siblings inside one
	// transaction when the incoming row carries is_principal=true.
	Create(ctx context.Context, i *Interlocutor, userID int64) error
	ListByProspect(ctx context.Context, prospectID, userID int64) ([]Interlocutor, error)
	Update(ctx context.Context, i *Interlocutor, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
}

type NextActionRepository interface {
	Create(ctx context.Context, a *NextAction) error
	ListByProspect(ctx context.Context, prospectID, userID int64) ([]NextAction, error)
	Update(ctx context.Context, a *NextAction) error
	Delete(ctx context.Context, id, userID int64) error
}

type StatusHistoryRepository interface {
	ListByProspect(ctx context.Context, prospectID, userID int64) ([]StatusHistoryEntry, error)
}

type ActivityRepository interface {
	Create(ctx context.Context, a *Activity) error
	ListByProspect(ctx context.Context, prospectID, userID int64) ([]Activity, error)
}

type SessionRepository interface {
	// Record deactivates the user's previously active sessions and inserts
	// the new one as active, in one transaction.
	Record(ctx context.Context, s *Session) error
	ListActive(ctx context.Context) ([]Session, error)
}
