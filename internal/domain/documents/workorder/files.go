package workorder

import (
	"context"
	"fmt"
	"io"
	"path"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/id"
)

// FileStore saves reception photos and signed documents attached to a
// work order. Implementations live outside the domain (S3, local disk);
// the service only needs the resulting URL.
type FileStore interface {
	Save(ctx context.Context, filePath string, r io.Reader) (url string, err error)
}

// SetFileStore configures the evidence store. Optional; AttachEvidence
// fails cleanly when no store is configured.
func (s *Service) SetFileStore(files FileStore) {
	s.files = files
}

// AttachEvidence stores a file under the order's folder and records the
// URL in the order attributes ("evidencia"). The order itself does not
// transition.
func (s *Service) AttachEvidence(ctx context.Context, docID id.ID, filename string, r io.Reader) (string, error) {
	if s.files == nil {
		return "", apperror.NewBusinessRule("FILE_STORAGE_NOT_CONFIGURED", "file storage is not configured")
	}
	if filename == "" {
		return "", apperror.NewValidation("filename is required")
	}

	var url string
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		url, err = s.files.Save(ctx, path.Join("work-orders", doc.Number, filename), r)
		if err != nil {
			return apperror.NewInternal(fmt.Errorf("save evidence file: %w", err))
		}

		if doc.Attributes == nil {
			doc.Attributes = map[string]any{}
		}
		existing, _ := doc.Attributes["evidencia"].([]any)
		doc.Attributes["evidencia"] = append(existing, url)

		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return "", err
	}

	return url, nil
}
