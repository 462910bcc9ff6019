package repository

import (
	"context"

	"patientdocs/internal/model"
)

// DocumentRepository defines data access for document metadata using SQL
// queries only. No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document row. ID and CreatedAt are assigned by
	// the database; the returned record carries them.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID. A missing row surfaces as
	// sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// List returns every document ordered by created_at descending,
	// id descending as a tie-break for equal timestamps.
	List(ctx context.Context) ([]model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was
	// deleted or did not exist; existence checks belong to the caller.
	Delete(ctx context.Context, id int64) error
}
