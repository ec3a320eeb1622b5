package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the patient record store. Two backends implement it:
// Postgres (repo_pg.go) and MongoDB (repo_mongo.go). Both guarantee that a
// SetSection write is a single atomic statement, so a sub-record is never
// observable half-written, and both return records from List ordered by
// creation time.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	Get(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, id uuid.UUID, upd Update) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Patient, error)
	// SetSection replaces the named sub-record with exactly doc.
	// It fails with ErrNotFound when id has no stored record; it never
	// creates a patient as a side effect.
	SetSection(ctx context.Context, id uuid.UUID, name string, doc map[string]any) error
}
