package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/infra/auth"
)

type AuthUseCase struct {
	Users    entity.UserRepository
	Sessions entity.SessionRepository
	Tokens   TokenIssuer

	// AdminEmail: the one account elevated to admin, matched at
	// registration time. Role grants happen nowhere else.
	AdminEmail string
}

func NewAuthUseCase(users entity.UserRepository, sessions entity.SessionRepository, tokens TokenIssuer, adminEmail string) *AuthUseCase {
	return &AuthUseCase{
		Users:      users,
		Sessions:   sessions,
		Tokens:     tokens,
		AdminEmail: adminEmail,
	}
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput, sourceAddr string) (*AuthOutput, error) {
	if errs := ValidateRegisterInput(input); len(errs) > 0 {
		return nil, validationError(errs)
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to hash password"}
	}

	user, err := entity.NewUser(input.Email, input.Name, hashed)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}
	if input.Email == uc.AdminEmail {
		user.Role = entity.RoleAdmin
	}

	if err := uc.Users.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to create account"}
	}

	token, err := uc.Tokens.Generate(user)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to issue token"}
	}

	uc.recordSession(ctx, user, sourceAddr)

	return &AuthOutput{Token: token, User: user}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput, sourceAddr string) (*AuthOutput, error) {
	// Same message for unknown email and wrong password, so the endpoint
	// cannot be used to enumerate accounts.
	invalid := &DomainError{Code: CodeInvalidCredentials, Message: "invalid credentials"}

	user, err := uc.Users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, invalid
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load account"}
	}

	if !auth.CheckPassword(user.Password, input.Password) {
		return nil, invalid
	}

	token, err := uc.Tokens.Generate(user)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to issue token"}
	}

	uc.recordSession(ctx, user, sourceAddr)

	return &AuthOutput{Token: token, User: user}, nil
}

// Session bookkeeping never fails a login, it only feeds the admin view.
func (uc *AuthUseCase) recordSession(ctx context.Context, user *entity.User, sourceAddr string) {
	if uc.Sessions == nil {
		return
	}
	s := &entity.Session{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		SourceAddr: sourceAddr,
	}
	if err := uc.Sessions.Record(ctx, s); err != nil {
		log.Printf("sessions: record failed for user %d: %v", user.ID, err)
	}
}
