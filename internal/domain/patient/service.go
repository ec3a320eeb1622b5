package patient

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register validates the registration form and creates the patient root
// record. The store assigns the identifier; it never changes afterwards.
// Nothing is written when any required field is missing.
func (s *Service) Register(ctx context.Context, f *RegistrationForm) (*Patient, error) {
	if missing := f.missing(); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	p := &Patient{
		PersonalNumber: f.PersonalNumber,
		FullName:       f.FullName,
		BirthDate:      f.BirthDate,
		Address: Address{
			Street:     f.Street,
			PostalCode: f.PostalCode,
			City:       f.City,
			Country:    f.Country,
		},
		MobilePhone: f.MobilePhone,
		EmergencyContact: EmergencyContact{
			Name:         f.EmergencyName,
			Relationship: f.Relationship,
			Mobile:       f.EmergencyMobile,
		},
		AgeAtDelivery:   f.AgeAtDelivery,
		InscriptionDate: f.InscriptionDate,
		MVCNumber:       f.MVCNumber,
		DoctorNurse:     f.DoctorNurse,
		InsuranceNumber: f.InsuranceNumber,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.Get(ctx, id)
}

// Update merges the provided fields into the root record. All fields are
// optional here; required-field enforcement applies to registration only.
func (s *Service) Update(ctx context.Context, id uuid.UUID, upd Update) error {
	return s.repo.Update(ctx, id, upd)
}

// Delete removes the patient and every sub-record with it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.repo.List(ctx)
}

// SaveSection replaces the named sub-record with doc. The document must
// already be validated and normalized (see wizard.BuildSection); this layer
// only guarantees the atomic replace and the not-found semantics.
func (s *Service) SaveSection(ctx context.Context, id uuid.UUID, name string, doc map[string]any) error {
	return s.repo.SetSection(ctx, id, name, doc)
}
