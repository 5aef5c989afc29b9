package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"log"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/infra/auth"
)

// UserAdminUseCase: account management reserved to the admin role. The
// privilege check itself lives in the middleware, these methods assume an
// already-authorized caller.
type UserAdminUseCase struct {
	Users entity.UserRepository
	Mail  MailService
}

func NewUserAdminUseCase(users entity.UserRepository, mailService MailService) *UserAdminUseCase {
	return &UserAdminUseCase{Users: users, Mail: mailService}
}

func (uc *UserAdminUseCase) List(ctx context.Context) ([]entity.User, error) {
	return uc.Users.List(ctx)
}

func (uc *UserAdminUseCase) Create(ctx context.Context, input CreateUserInput) (*entity.User, error) {
	if errs := ValidateRegisterInput(RegisterInput(input)); len(errs) > 0 {
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
	// Admin-provisioned accounts keep the plaintext copy around so the
	// admin can hand it over.
	user.TempPassword = input.Password

	if err := uc.Users.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to create account"}
	}

	return user, nil
}

func (uc *UserAdminUseCase) SetPassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return &DomainError{Code: CodeValidation, Message: "password is required"}
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return &TechnicalError{Code: CodeDatabase, Message: "failed to hash password"}
	}

	if err := uc.Users.UpdatePassword(ctx, id, hashed, password); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return err
		}
		return &TechnicalError{Code: CodeDatabase, Message: "failed to update password"}
	}

	uc.mailPassword(ctx, id, password)
	return nil
}

// TempPassword generates a recovery password, stores it and mails it out.
func (uc *UserAdminUseCase) TempPassword(ctx context.Context, id int64) (string, error) {
	password, err := randomPassword(10)
	if err != nil {
		return "", &TechnicalError{Code: CodeDatabase, Message: "failed to generate password"}
	}

	if err := uc.SetPassword(ctx, id, password); err != nil {
		return "", err
	}

	return password, nil
}

// Delete refuses to remove admin accounts, which also covers self-delete by
// the admin.
func (uc *UserAdminUseCase) Delete(ctx context.Context, id int64) error {
	target, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if target.IsAdmin() {
		return &DomainError{Code: CodeForbidden, Message: "cannot delete an admin account"}
	}

	return uc.Users.Delete(ctx, id)
}

func (uc *UserAdminUseCase) mailPassword(ctx context.Context, id int64, password string) {
	if uc.Mail == nil {
		return
	}
	user, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		return
	}
	if err := uc.Mail.SendTempPassword(user.Email, user.Name, password); err != nil {
		log.Printf("⚠️ temp-password email to %s failed: %v", user.Email, err)
	}
}

const passwordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

func randomPassword(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = passwordAlphabet[int(b)%len(passwordAlphabet)]
	}
	return string(buf), nil
}
