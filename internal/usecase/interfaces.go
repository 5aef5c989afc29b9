package usecase

import (
	"context"
	"io"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/infra/queue"
)

// TokenIssuer hides the JWT implementation from the auth usecase.
type TokenIssuer interface {
	Generate(user *entity.User) (string, error)
}

// ObjectStore is the narrow contract to the external blob bucket.
type ObjectStore interface {
	Upload(key, contentType string, data []byte) error
	Download(key string) (io.ReadCloser, error)
	Exists(key string) (bool, error)
	Delete(key string) error
}

// EventPublisher pushes status-change events to the broker. Publishing is
// best-effort from the caller's point of view.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, payload queue.StatusChangedPayload) error
}

// MailService sends the operational emails. Always best-effort.
type MailService interface {
	SendTempPassword(to, name, password string) error
}
