package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

// mockRepo is an in-memory Repository keeping insertion order, mirroring the
// created-at ordering both real backends guarantee.
type mockRepo struct {
	order []uuid.UUID
	store map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{store: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	m.store[p.ID] = p
	m.order = append(m.order, p.ID)
	return nil
}

func (m *mockRepo) Get(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, id uuid.UUID, upd Update) error {
	p, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	if upd.FullName != nil {
		p.FullName = *upd.FullName
	}
	if upd.MobilePhone != nil {
		p.MobilePhone = *upd.MobilePhone
	}
	if upd.Street != nil {
		p.Address.Street = *upd.Street
	}
	now := time.Now().UTC()
	p.UpdatedAt = &now
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockRepo) List(_ context.Context) ([]*Patient, error) {
	var r []*Patient
	for _, id := range m.order {
		r = append(r, m.store[id])
	}
	return r, nil
}

func (m *mockRepo) SetSection(_ context.Context, id uuid.UUID, name string, doc map[string]any) error {
	p, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	if p.Sections == nil {
		p.Sections = make(map[string]map[string]any)
	}
	p.Sections[name] = doc
	return nil
}

func validForm() *RegistrationForm {
	return &RegistrationForm{
		PersonalNumber:  "010190-12345",
		FullName:        "Anna Larsen",
		BirthDate:       "1990-01-01",
		Street:          "Storgata 1",
		PostalCode:      "0155",
		City:            "Oslo",
		Country:         "Norway",
		MobilePhone:     "+47 99887766",
		EmergencyName:   "Per Larsen",
		Relationship:    "spouse",
		EmergencyMobile: "+47 99887767",
		InscriptionDate: "2024-03-15",
		MVCNumber:       "MVC-2291",
		DoctorNurse:     "Dr. Holm",
		InsuranceNumber: "INS-59102",
	}
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

func TestRegister_Success(t *testing.T) {
	svc, _ := newTestService()
	p, err := svc.Register(context.Background(), validForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected a generated id")
	}
	if p.Address.City != "Oslo" {
		t.Errorf("expected nested address to be populated, got %q", p.Address.City)
	}
	if p.EmergencyContact.Relationship != "spouse" {
		t.Errorf("expected nested emergency contact, got %q", p.EmergencyContact.Relationship)
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected createdAt to be stamped")
	}
}

func TestRegister_MissingField_NoWrite(t *testing.T) {
	svc, repo := newTestService()
	f := validForm()
	f.MobilePhone = ""
	_, err := svc.Register(context.Background(), f)
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(repo.store) != 0 {
		t.Errorf("expected no partial creation, store has %d records", len(repo.store))
	}
}

func TestRegister_OptionalAgeAtDelivery(t *testing.T) {
	svc, _ := newTestService()
	f := validForm()
	f.AgeAtDelivery = ""
	if _, err := svc.Register(context.Background(), f); err != nil {
		t.Fatalf("ageAtDelivery should be optional: %v", err)
	}
}

func TestRegister_DistinctIDs(t *testing.T) {
	svc, _ := newTestService()
	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 5; i++ {
		p, err := svc.Register(context.Background(), validForm())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[p.ID] {
			t.Fatalf("id %s issued twice", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestUpdate_MergesProvidedFieldsOnly(t *testing.T) {
	svc, _ := newTestService()
	p, _ := svc.Register(context.Background(), validForm())

	name := "Anna Berg"
	if err := svc.Update(context.Background(), p.ID, Update{FullName: &name}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := svc.Get(context.Background(), p.ID)
	if got.FullName != "Anna Berg" {
		t.Errorf("expected updated name, got %q", got.FullName)
	}
	if got.MobilePhone != "+47 99887766" {
		t.Errorf("expected untouched mobilePhone, got %q", got.MobilePhone)
	}
	if got.UpdatedAt == nil {
		t.Error("expected updatedAt to be stamped")
	}
}

func TestUpdate_UnknownPatient(t *testing.T) {
	svc, _ := newTestService()
	name := "Nobody"
	if err := svc.Update(context.Background(), uuid.New(), Update{FullName: &name}); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_ThenSectionWriteFails(t *testing.T) {
	svc, _ := newTestService()
	p, _ := svc.Register(context.Background(), validForm())

	if err := svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := svc.SaveSection(context.Background(), p.ID, "healthExamination", map[string]any{"bmi": "24"})
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSaveSection_ReplacesWholeSubRecord(t *testing.T) {
	svc, repo := newTestService()
	p, _ := svc.Register(context.Background(), validForm())

	first := map[string]any{"bmi": "24", "heightCm": "170"}
	second := map[string]any{"bmi": "25"}
	svc.SaveSection(context.Background(), p.ID, "healthExamination", first)
	svc.SaveSection(context.Background(), p.ID, "healthExamination", second)

	got := repo.store[p.ID].Sections["healthExamination"]
	if len(got) != 1 || got["bmi"] != "25" {
		t.Errorf("expected full replacement, got %v", got)
	}
}

func TestSaveSection_Idempotent(t *testing.T) {
	svc, repo := newTestService()
	p, _ := svc.Register(context.Background(), validForm())

	doc := map[string]any{"bmi": "24", "fetalHeartbeat": "140"}
	svc.SaveSection(context.Background(), p.ID, "healthExamination", doc)
	svc.SaveSection(context.Background(), p.ID, "healthExamination", doc)

	got := repo.store[p.ID].Sections["healthExamination"]
	if len(got) != 2 {
		t.Errorf("expected no accumulation across identical writes, got %v", got)
	}
}

func TestList_ContainsRegisteredPatient(t *testing.T) {
	svc, _ := newTestService()
	p, _ := svc.Register(context.Background(), validForm())

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 patient, got %d", len(items))
	}
	if items[0].ID != p.ID {
		t.Errorf("expected listed id %s, got %s", p.ID, items[0].ID)
	}
}
