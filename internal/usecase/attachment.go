package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/xavierca1/pipeline-crm/internal/entity"
)

// AttachmentUseCase binds at most one PDF per prospect to the external
// bucket. The prospect row only ever stores the object key.
type AttachmentUseCase struct {
	Prospects entity.ProspectRepository
	Store     ObjectStore
}

func NewAttachmentUseCase(prospects entity.ProspectRepository, store ObjectStore) *AttachmentUseCase {
	return &AttachmentUseCase{Prospects: prospects, Store: store}
}

func (uc *AttachmentUseCase) Attach(ctx context.Context, prospectID, userID int64, blob []byte, mimeType string) (string, error) {
	if mimeType != "application/pdf" {
		return "", &DomainError{Code: CodeValidation, Message: "only PDF files are accepted"}
	}

	p, err := uc.Prospects.FindByID(ctx, prospectID, userID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("prospects/%d/%s.pdf", prospectID, uuid.New().String())

	if err := uc.Store.Upload(key, mimeType, blob); err != nil {
		return "", &TechnicalError{Code: CodeStorage, Message: "failed to store PDF"}
	}

	if err := uc.Prospects.SetPDFKey(ctx, prospectID, userID, key); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return "", err
		}
		return "", &TechnicalError{Code: CodeDatabase, Message: "failed to save PDF reference"}
	}

	// The replaced object, if any, is orphaned remote data: removing it is
	// best-effort cleanup.
	if p.PDFKey != "" && p.PDFKey != key {
		if err := uc.Store.Delete(p.PDFKey); err != nil {
			log.Printf("⚠️ old attachment %s left behind: %v", p.PDFKey, err)
		}
	}

	return key, nil
}

func (uc *AttachmentUseCase) Detach(ctx context.Context, prospectID, userID int64) error {
	p, err := uc.Prospects.FindByID(ctx, prospectID, userID)
	if err != nil {
		return err
	}
	if p.PDFKey == "" {
		return entity.ErrNotFound
	}

	// A missing remote object must not block clearing the reference.
	if err := uc.Store.Delete(p.PDFKey); err != nil {
		log.Printf("⚠️ attachment %s not deleted remotely: %v", p.PDFKey, err)
	}

	return uc.Prospects.SetPDFKey(ctx, prospectID, userID, "")
}

// Fetch streams the attachment back. The caller owns the ReadCloser.
func (uc *AttachmentUseCase) Fetch(ctx context.Context, prospectID, userID int64) (io.ReadCloser, error) {
	p, err := uc.Prospects.FindByID(ctx, prospectID, userID)
	if err != nil {
		return nil, err
	}
	if p.PDFKey == "" {
		return nil, entity.ErrNotFound
	}

	exists, err := uc.Store.Exists(p.PDFKey)
	if err != nil {
		return nil, &TechnicalError{Code: CodeStorage, Message: "failed to check PDF"}
	}
	if !exists {
		return nil, entity.ErrNotFound
	}

	blob, err := uc.Store.Download(p.PDFKey)
	if err != nil {
		return nil, &TechnicalError{Code: CodeStorage, Message: "failed to read PDF"}
	}

	return blob, nil
}
