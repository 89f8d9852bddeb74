package exam

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultDuplicateWindow is the trailing window inside which two submissions
// for the same patient, modality and normalized description are treated as
// the same clinical order.
const DefaultDuplicateWindow = 30 * time.Minute

// Service orchestrates exam creation and queries. Creation is driven as a
// linear state machine so that each transition's postcondition can be tested
// in isolation; see Create.
type Service struct {
	repo     Repository
	patients PatientLookup
	window   time.Duration
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithDuplicateWindow overrides the duplicate-detection window. The shape of
// the guarantee is fixed (heuristic match → reject); only the width is policy.
func WithDuplicateWindow(w time.Duration) Option {
	return func(s *Service) { s.window = w }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, patients PatientLookup, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		patients: patients,
		window:   DefaultDuplicateWindow,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput carries a candidate exam submission.
type CreateInput struct {
	PatientID      uuid.UUID
	Modality       string
	Description    *string
	CreatedBy      *string
	IdempotencyKey string
}

// candidate is a validated CreateInput with the normalized description
// precomputed for duplicate comparison.
type candidate struct {
	patientID      uuid.UUID
	modality       Modality
	description    *string
	normalizedDesc string
	createdBy      *string
	idempotencyKey string
}

func newCandidate(in CreateInput) (*candidate, error) {
	if in.PatientID == uuid.Nil {
		return nil, &ValidationError{Field: "patientId", Reason: "required"}
	}
	modality, err := ParseModality(in.Modality)
	if err != nil {
		return nil, err
	}
	if in.IdempotencyKey == "" {
		return nil, &ValidationError{Field: "idempotencyKey", Reason: "required"}
	}
	if len(in.IdempotencyKey) > 255 {
		return nil, &ValidationError{Field: "idempotencyKey", Reason: "must be at most 255 characters"}
	}
	return &candidate{
		patientID:      in.PatientID,
		modality:       modality,
		description:    in.Description,
		normalizedDesc: NormalizeDescription(in.Description),
		createdBy:      in.CreatedBy,
		idempotencyKey: in.IdempotencyKey,
	}, nil
}

// createState names a position in the creation protocol.
type createState int

const (
	stateCheckReplay createState = iota
	stateCheckDuplicate
	stateVerifyPatient
	stateInsert
	stateResolveRace
)

// Create runs the creation protocol for a candidate exam. The operation is
// safe to call at-least-once per logical client intent: a retried request
// whose idempotency key is already satisfied returns the original exam.
//
// The protocol is a linear state machine:
//
//	checkReplay → checkDuplicate → verifyPatient → insert → resolveRace
//
// checkReplay short-circuits with the stored exam; checkDuplicate rejects a
// semantically equivalent submission inside the trailing window;
// verifyPatient rejects dangling patient references; insert commits the row;
// resolveRace is entered only when the insert loses the race on the
// idempotency-key unique index and returns the winner's row instead. For N
// concurrent calls with the same key, exactly one row persists and all N
// calls return an exam with the same id.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Exam, error) {
	cand, err := newCandidate(in)
	if err != nil {
		return nil, err
	}

	state := stateCheckReplay
	for {
		switch state {
		case stateCheckReplay:
			prior, err := s.checkReplay(ctx, cand)
			if err != nil {
				return nil, err
			}
			if prior != nil {
				return prior, nil
			}
			state = stateCheckDuplicate

		case stateCheckDuplicate:
			if err := s.checkDuplicate(ctx, cand); err != nil {
				return nil, err
			}
			state = stateVerifyPatient

		case stateVerifyPatient:
			if err := s.verifyPatient(ctx, cand); err != nil {
				return nil, err
			}
			state = stateInsert

		case stateInsert:
			created, err := s.insert(ctx, cand)
			if errors.Is(err, ErrIdempotencyKeyTaken) {
				state = stateResolveRace
				continue
			}
			if err != nil {
				return nil, err
			}
			return created, nil

		case stateResolveRace:
			return s.resolveRace(ctx, cand)
		}
	}
}

// checkReplay is the fast idempotency path: a hit returns the stored exam
// unchanged and no further validation runs. A stale miss here is tolerated;
// the unique index corrects it in resolveRace.
func (s *Service) checkReplay(ctx context.Context, cand *candidate) (*Exam, error) {
	prior, err := s.repo.GetByIdempotencyKey(ctx, cand.idempotencyKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return prior, nil
}

// checkDuplicate rejects a candidate when an equivalent exam (same patient,
// same modality, same normalized description) was created inside the
// trailing window. This guards against callers that regenerate a fresh
// idempotency key per retry while resubmitting the same clinical order.
func (s *Service) checkDuplicate(ctx context.Context, cand *candidate) error {
	since := s.now().Add(-s.window)
	dup, err := s.repo.FindEquivalent(ctx, cand.patientID, cand.modality, cand.normalizedDesc, since)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if dup != nil {
		return &ConflictError{Reason: fmt.Sprintf("an equivalent exam was created within the last %s", s.window)}
	}
	return nil
}

// verifyPatient resolves the candidate's patient reference; a dangling
// reference must never persist.
func (s *Service) verifyPatient(ctx context.Context, cand *candidate) error {
	exists, err := s.patients.Exists(ctx, cand.patientID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUnknownPatient
	}
	return nil
}

// insert commits the exam row. The repository's unique index on the
// idempotency key is the authoritative uniqueness decision.
func (s *Service) insert(ctx context.Context, cand *candidate) (*Exam, error) {
	e := &Exam{
		PatientID:      cand.patientID,
		Modality:       cand.modality,
		Description:    cand.description,
		CreatedBy:      cand.createdBy,
		IdempotencyKey: cand.idempotencyKey,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// resolveRace re-reads the idempotency key after a lost insert race and
// returns the winner's row as if the fast path had hit. A miss here means
// the winning transaction's row is not visible after its commit; that is a
// storage-consistency bug, surfaced as a conflict rather than retried.
func (s *Service) resolveRace(ctx context.Context, cand *candidate) (*Exam, error) {
	winner, err := s.repo.GetByIdempotencyKey(ctx, cand.idempotencyKey)
	if errors.Is(err, ErrNotFound) {
		return nil, &ConflictError{
			Reason: fmt.Sprintf("idempotency key %q exists but its exam is not readable", cand.idempotencyKey),
		}
	}
	if err != nil {
		return nil, err
	}
	return winner, nil
}

// Get returns the exam with the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Exam, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns exams ordered by creation time, newest first, insertion order
// breaking ties, together with the total row count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Exam, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Delete removes an exam unconditionally. No idempotency semantics apply:
// deleting a missing exam is ErrNotFound.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
