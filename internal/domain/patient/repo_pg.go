package patient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns a Repository backed by the patients table. Sub-records
// live in a single jsonb column and are replaced with one jsonb_set call,
// so a step write is atomic at the row level.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const patientCols = `id, personal_number, full_name, birth_date, street, postal_code,
	city, country, mobile_phone, emergency_name, emergency_relationship, emergency_mobile,
	age_at_delivery, inscription_date, mvc_number, doctor_nurse, insurance_number,
	sections, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	var ageAtDelivery *string
	err := row.Scan(&p.ID, &p.PersonalNumber, &p.FullName, &p.BirthDate,
		&p.Address.Street, &p.Address.PostalCode, &p.Address.City, &p.Address.Country,
		&p.MobilePhone, &p.EmergencyContact.Name, &p.EmergencyContact.Relationship,
		&p.EmergencyContact.Mobile, &ageAtDelivery, &p.InscriptionDate,
		&p.MVCNumber, &p.DoctorNurse, &p.InsuranceNumber,
		&p.Sections, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if ageAtDelivery != nil {
		p.AgeAtDelivery = *ageAtDelivery
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()

	var ageAtDelivery *string
	if p.AgeAtDelivery != "" {
		ageAtDelivery = &p.AgeAtDelivery
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO patients (id, personal_number, full_name, birth_date, street, postal_code,
			city, country, mobile_phone, emergency_name, emergency_relationship, emergency_mobile,
			age_at_delivery, inscription_date, mvc_number, doctor_nurse, insurance_number, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		p.ID, p.PersonalNumber, p.FullName, p.BirthDate,
		p.Address.Street, p.Address.PostalCode, p.Address.City, p.Address.Country,
		p.MobilePhone, p.EmergencyContact.Name, p.EmergencyContact.Relationship,
		p.EmergencyContact.Mobile, ageAtDelivery, p.InscriptionDate,
		p.MVCNumber, p.DoctorNurse, p.InsuranceNumber, p.CreatedAt)
	return err
}

func (r *repoPG) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *repoPG) Update(ctx context.Context, id uuid.UUID, upd Update) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patients SET
			personal_number = COALESCE($2, personal_number),
			full_name = COALESCE($3, full_name),
			birth_date = COALESCE($4, birth_date),
			street = COALESCE($5, street),
			postal_code = COALESCE($6, postal_code),
			city = COALESCE($7, city),
			country = COALESCE($8, country),
			mobile_phone = COALESCE($9, mobile_phone),
			emergency_name = COALESCE($10, emergency_name),
			emergency_relationship = COALESCE($11, emergency_relationship),
			emergency_mobile = COALESCE($12, emergency_mobile),
			age_at_delivery = COALESCE($13, age_at_delivery),
			inscription_date = COALESCE($14, inscription_date),
			mvc_number = COALESCE($15, mvc_number),
			doctor_nurse = COALESCE($16, doctor_nurse),
			insurance_number = COALESCE($17, insurance_number),
			updated_at = NOW()
		WHERE id = $1`,
		id, upd.PersonalNumber, upd.FullName, upd.BirthDate,
		upd.Street, upd.PostalCode, upd.City, upd.Country,
		upd.MobilePhone, upd.EmergencyName, upd.Relationship, upd.EmergencyMobile,
		upd.AgeAtDelivery, upd.InscriptionDate, upd.MVCNumber, upd.DoctorNurse,
		upd.InsuranceNumber)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *repoPG) SetSection(ctx context.Context, id uuid.UUID, name string, doc map[string]any) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal section %s: %w", name, err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE patients SET sections = jsonb_set(sections, ARRAY[$2], $3::jsonb, true)
		WHERE id = $1`,
		id, name, string(payload))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
