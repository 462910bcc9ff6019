package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/google/uuid"

	"patientdocs/internal/model"
	"patientdocs/internal/repository"
	"patientdocs/internal/storage"
)

// allowedContentType is the single MIME type accepted for upload.
const allowedContentType = "application/pdf"

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrUnsupportedType = errors.New("only PDF files are allowed")
	ErrNotFound        = errors.New("document not found")
	ErrFileMissing     = errors.New("file missing from storage")
)

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload validates the declared content type, streams the content to
	// blob storage under a generated unique name, then records metadata.
	// originalFilename is preserved in the record and used only to extract
	// the extension for the storage name.
	Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error)

	// List returns every document, most recent first.
	List(ctx context.Context) ([]model.Document, error)

	// Fetch resolves a document and opens its blob for streaming. The
	// caller owns the returned ReadCloser. ErrFileMissing means the
	// metadata row exists but the blob does not.
	Fetch(ctx context.Context, id int64) (io.ReadCloser, *model.Document, error)

	// Delete removes the blob best-effort and then the metadata row.
	Delete(ctx context.Context, id int64) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store storage.Storage
	repo  repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository) DocumentService {
	return &documentService{store: store, repo: repo}
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error) {
	// Validate before any byte is persisted.
	if contentType != allowedContentType {
		return nil, ErrUnsupportedType
	}
	if r == nil {
		return nil, ErrNoFile
	}

	// Generated name: UUID plus the original extension. The token space
	// makes collisions negligible, so no existence check is needed.
	ext := filepath.Ext(originalFilename)
	key := "documents/" + uuid.New().String() + ext

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		Filename: originalFilename,
		Filepath: objInfo.Key,
		Filesize: objInfo.Size,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// No compensating delete: the blob stays orphaned. The two stores
		// are not written transactionally and reconciliation is out of
		// scope, so the orphan is logged and the failure reported.
		logEvent("error", "metadata_insert_failed", map[string]any{
			"filepath": key,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("save metadata (blob %s left orphaned): %w", key, err)
	}
	return stored, nil
}

// List returns all documents newest-first, straight from the repository.
func (s *documentService) List(ctx context.Context) ([]model.Document, error) {
	return s.repo.List(ctx)
}

// Fetch looks up the record and opens its blob for streaming.
func (s *documentService) Fetch(ctx context.Context, id int64) (io.ReadCloser, *model.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	rc, _, err := s.store.Get(ctx, doc.Filepath)
	if err != nil {
		// Row exists but the blob is gone. Racy by nature (the blob can
		// vanish between this check and the read), reported as its own
		// not-found condition rather than repaired.
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrFileMissing
		}
		return nil, nil, fmt.Errorf("open blob: %w", err)
	}
	return rc, doc, nil
}

// Delete removes the blob best-effort, then the metadata row. A blob
// removal failure is logged and swallowed so the row still goes away.
func (s *documentService) Delete(ctx context.Context, id int64) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := s.store.Delete(ctx, doc.Filepath); err != nil {
		logEvent("error", "blob_delete_failed", map[string]any{
			"id":       doc.ID,
			"filepath": doc.Filepath,
			"error":    err.Error(),
		})
	}

	return s.repo.Delete(ctx, id)
}

// logEvent writes a one-line JSON log entry, matching the logging style
// used across the process.
func logEvent(level, event string, fields map[string]any) {
	entry := map[string]any{
		"component": "service",
		"level":     level,
		"event":     event,
	}
	for k, v := range fields {
		entry[k] = v
	}
	if b, err := json.Marshal(entry); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
