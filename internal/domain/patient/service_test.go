package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	for _, other := range m.patients {
		if other.Document == p.Document {
			return ErrDocumentTaken
		}
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) GetByDocument(_ context.Context, document string) (*Patient, error) {
	for _, p := range m.patients {
		if p.Document == document {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return ErrNotFound
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.patients[id]; !ok {
		return ErrNotFound
	}
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		result = append(result, p)
	}
	return result, len(result), nil
}

func validPatient() *Patient {
	return &Patient{
		Name:      "João Silva Santos",
		Document:  "12345678901",
		BirthDate: time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreate_Valid(t *testing.T) {
	svc := NewService(newMockRepo())

	p := validPatient()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected assigned id")
	}
}

func TestCreate_DuplicateDocument(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	if err := svc.Create(ctx, validPatient()); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	dup := validPatient()
	dup.Name = "Outro Nome"
	err := svc.Create(ctx, dup)
	if !errors.Is(err, ErrDocumentTaken) {
		t.Errorf("expected ErrDocumentTaken, got %v", err)
	}
}

func TestCreate_Invalid(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	short := validPatient()
	short.Name = "Jo"
	if err := svc.Create(ctx, short); err == nil {
		t.Error("expected error for short name")
	}

	badDoc := validPatient()
	badDoc.Document = "abc"
	if err := svc.Create(ctx, badDoc); err == nil {
		t.Error("expected error for malformed document")
	}

	future := validPatient()
	future.BirthDate = time.Now().Add(24 * time.Hour)
	if err := svc.Create(ctx, future); err == nil {
		t.Error("expected error for future birth date")
	}
}

func TestExists(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	p := validPatient()
	if err := svc.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := svc.Exists(ctx, p.ID)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Error("expected existing patient to resolve")
	}

	ok, err = svc.Exists(ctx, uuid.New())
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("expected unknown patient not to resolve")
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.Delete(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
