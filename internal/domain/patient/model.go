package patient

import (
	"time"

	"github.com/google/uuid"
)

// Address is the patient's home address, collected at registration.
type Address struct {
	Street     string `json:"street" bson:"street"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
	City       string `json:"city" bson:"city"`
	Country    string `json:"country" bson:"country"`
}

// EmergencyContact is the person to notify during labor or complications.
type EmergencyContact struct {
	Name         string `json:"name" bson:"name"`
	Relationship string `json:"relationship" bson:"relationship"`
	Mobile       string `json:"mobile" bson:"mobile"`
}

// Patient is the root record of the intake wizard. Each completed wizard
// step is stored as a named sub-record under Sections; sub-records are
// written independently and a rewrite replaces the whole sub-record.
//
// Dates and measurements arrive as form-encoded strings and are stored
// verbatim; only boolean-like fields are normalized (see wizard.BuildSection).
type Patient struct {
	ID               uuid.UUID                 `json:"id" bson:"_id"`
	PersonalNumber   string                    `json:"personalNumber" bson:"personalNumber"`
	FullName         string                    `json:"fullName" bson:"fullName"`
	BirthDate        string                    `json:"birthDate" bson:"birthDate"`
	Address          Address                   `json:"address" bson:"address"`
	MobilePhone      string                    `json:"mobilePhone" bson:"mobilePhone"`
	EmergencyContact EmergencyContact          `json:"emergencyContact" bson:"emergencyContact"`
	AgeAtDelivery    string                    `json:"ageAtDelivery,omitempty" bson:"ageAtDelivery,omitempty"`
	InscriptionDate  string                    `json:"inscriptionDate" bson:"inscriptionDate"`
	MVCNumber        string                    `json:"mvcNumber" bson:"mvcNumber"`
	DoctorNurse      string                    `json:"doctorNurse" bson:"doctorNurse"`
	InsuranceNumber  string                    `json:"insuranceNumber" bson:"insuranceNumber"`
	Sections         map[string]map[string]any `json:"sections,omitempty" bson:"sections,omitempty"`
	CreatedAt        time.Time                 `json:"createdAt" bson:"createdAt"`
	UpdatedAt        *time.Time                `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// RegistrationForm carries the fields of the registration step.
// ageAtDelivery is the only optional field.
type RegistrationForm struct {
	PersonalNumber  string `form:"personalNumber"`
	FullName        string `form:"fullName"`
	BirthDate       string `form:"birthDate"`
	Street          string `form:"street"`
	PostalCode      string `form:"postalCode"`
	City            string `form:"city"`
	Country         string `form:"country"`
	MobilePhone     string `form:"mobilePhone"`
	EmergencyName   string `form:"emergencyName"`
	Relationship    string `form:"relationship"`
	EmergencyMobile string `form:"emergencyMobile"`
	AgeAtDelivery   string `form:"ageAtDelivery"`
	InscriptionDate string `form:"inscriptionDate"`
	MVCNumber       string `form:"mvcNumber"`
	DoctorNurse     string `form:"doctorNurse"`
	InsuranceNumber string `form:"insuranceNumber"`
}

// missing returns the names of required registration fields that are empty.
func (f *RegistrationForm) missing() []string {
	required := []struct {
		name  string
		value string
	}{
		{"personalNumber", f.PersonalNumber},
		{"fullName", f.FullName},
		{"birthDate", f.BirthDate},
		{"street", f.Street},
		{"postalCode", f.PostalCode},
		{"city", f.City},
		{"country", f.Country},
		{"mobilePhone", f.MobilePhone},
		{"emergencyName", f.EmergencyName},
		{"relationship", f.Relationship},
		{"emergencyMobile", f.EmergencyMobile},
		{"inscriptionDate", f.InscriptionDate},
		{"mvcNumber", f.MVCNumber},
		{"doctorNurse", f.DoctorNurse},
		{"insuranceNumber", f.InsuranceNumber},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	return missing
}

// UpdateForm carries the fields of the edit-patient operation. Every field
// is optional; empty fields are left untouched on the stored record.
type UpdateForm struct {
	PatientID       string `form:"patientId"`
	PersonalNumber  string `form:"personalNumber"`
	FullName        string `form:"fullName"`
	BirthDate       string `form:"birthDate"`
	Street          string `form:"street"`
	PostalCode      string `form:"postalCode"`
	City            string `form:"city"`
	Country         string `form:"country"`
	MobilePhone     string `form:"mobilePhone"`
	EmergencyName   string `form:"emergencyName"`
	Relationship    string `form:"relationship"`
	EmergencyMobile string `form:"emergencyMobile"`
	AgeAtDelivery   string `form:"ageAtDelivery"`
	InscriptionDate string `form:"inscriptionDate"`
	MVCNumber       string `form:"mvcNumber"`
	DoctorNurse     string `form:"doctorNurse"`
	InsuranceNumber string `form:"insuranceNumber"`
}

// Update is the partial-merge payload for the root record. Nil fields are
// not written.
type Update struct {
	PersonalNumber  *string
	FullName        *string
	BirthDate       *string
	Street          *string
	PostalCode      *string
	City            *string
	Country         *string
	MobilePhone     *string
	EmergencyName   *string
	Relationship    *string
	EmergencyMobile *string
	AgeAtDelivery   *string
	InscriptionDate *string
	MVCNumber       *string
	DoctorNurse     *string
	InsuranceNumber *string
}

// ToUpdate converts the form to a merge payload, treating empty strings as
// "not provided".
func (f *UpdateForm) ToUpdate() Update {
	opt := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	return Update{
		PersonalNumber:  opt(f.PersonalNumber),
		FullName:        opt(f.FullName),
		BirthDate:       opt(f.BirthDate),
		Street:          opt(f.Street),
		PostalCode:      opt(f.PostalCode),
		City:            opt(f.City),
		Country:         opt(f.Country),
		MobilePhone:     opt(f.MobilePhone),
		EmergencyName:   opt(f.EmergencyName),
		Relationship:    opt(f.Relationship),
		EmergencyMobile: opt(f.EmergencyMobile),
		AgeAtDelivery:   opt(f.AgeAtDelivery),
		InscriptionDate: opt(f.InscriptionDate),
		MVCNumber:       opt(f.MVCNumber),
		DoctorNurse:     opt(f.DoctorNurse),
		InsuranceNumber: opt(f.InsuranceNumber),
	}
}
