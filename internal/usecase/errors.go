package usecase

// DomainError: the request itself is wrong (bad payload, duplicate email,
// insufficient privilege). Mapped to 4xx at the HTTP boundary.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError: the backend misbehaved (database, object store, broker).
// Mapped to 500, message kept human-readable, no internals leaked.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeDatabase           = "DATABASE_ERROR"
	CodeStorage            = "STORAGE_ERROR"
)
