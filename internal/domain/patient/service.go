package patient

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var documentPattern = regexp.MustCompile(`^[0-9.\-]{11,14}$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}

	// The unique index on document is authoritative; this lookup only gives
	// the common case a friendlier error without a failed insert.
	if _, err := s.repo.GetByDocument(ctx, p.Document); err == nil {
		return ErrDocumentTaken
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// Exists reports whether the patient id resolves. It satisfies the exam
// package's PatientLookup collaborator contract.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func validate(p *Patient) error {
	p.Name = strings.TrimSpace(p.Name)
	if len(p.Name) < 3 || len(p.Name) > 100 {
		return fmt.Errorf("name must be between 3 and 100 characters")
	}
	if !documentPattern.MatchString(p.Document) {
		return fmt.Errorf("document must be a CPF with 11 to 14 characters")
	}
	if p.BirthDate.IsZero() || p.BirthDate.After(time.Now()) {
		return fmt.Errorf("birth date must be in the past")
	}
	return nil
}
