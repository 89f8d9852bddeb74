package exam

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the storage contract for exams. Create must enforce
// idempotency-key uniqueness at the storage layer and return
// ErrIdempotencyKeyTaken when the key already exists; application-level
// check-then-act alone is not atomic across connections.
type Repository interface {
	Create(ctx context.Context, e *Exam) error
	GetByID(ctx context.Context, id uuid.UUID) (*Exam, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*Exam, error)
	FindEquivalent(ctx context.Context, patientID uuid.UUID, modality Modality, normalizedDescription string, since time.Time) (*Exam, error)
	List(ctx context.Context, limit, offset int) ([]*Exam, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PatientLookup is the collaborator the exam service uses to verify that a
// candidate's patient reference resolves. The patient package satisfies it.
type PatientLookup interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
