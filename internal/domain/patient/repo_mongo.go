package patient

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type repoMongo struct{ coll *mongo.Collection }

// NewRepoMongo returns a Repository backed by a MongoDB collection with one
// document per patient. Sub-records are written with a $set on a single
// document, which MongoDB applies atomically.
func NewRepoMongo(coll *mongo.Collection) Repository {
	return &repoMongo{coll: coll}
}

// mongoPatient mirrors Patient with the id stored as a string _id, keeping
// the persisted document free of driver-specific binary encodings.
type mongoPatient struct {
	ID               string                    `bson:"_id"`
	PersonalNumber   string                    `bson:"personalNumber"`
	FullName         string                    `bson:"fullName"`
	BirthDate        string                    `bson:"birthDate"`
	Address          Address                   `bson:"address"`
	MobilePhone      string                    `bson:"mobilePhone"`
	EmergencyContact EmergencyContact          `bson:"emergencyContact"`
	AgeAtDelivery    string                    `bson:"ageAtDelivery,omitempty"`
	InscriptionDate  string                    `bson:"inscriptionDate"`
	MVCNumber        string                    `bson:"mvcNumber"`
	DoctorNurse      string                    `bson:"doctorNurse"`
	InsuranceNumber  string                    `bson:"insuranceNumber"`
	Sections         map[string]map[string]any `bson:"sections,omitempty"`
	CreatedAt        time.Time                 `bson:"createdAt"`
	UpdatedAt        *time.Time                `bson:"updatedAt,omitempty"`
}

func toMongo(p *Patient) *mongoPatient {
	return &mongoPatient{
		ID:               p.ID.String(),
		PersonalNumber:   p.PersonalNumber,
		FullName:         p.FullName,
		BirthDate:        p.BirthDate,
		Address:          p.Address,
		MobilePhone:      p.MobilePhone,
		EmergencyContact: p.EmergencyContact,
		AgeAtDelivery:    p.AgeAtDelivery,
		InscriptionDate:  p.InscriptionDate,
		MVCNumber:        p.MVCNumber,
		DoctorNurse:      p.DoctorNurse,
		InsuranceNumber:  p.InsuranceNumber,
		Sections:         p.Sections,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (m *mongoPatient) toDomain() (*Patient, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	return &Patient{
		ID:               id,
		PersonalNumber:   m.PersonalNumber,
		FullName:         m.FullName,
		BirthDate:        m.BirthDate,
		Address:          m.Address,
		MobilePhone:      m.MobilePhone,
		EmergencyContact: m.EmergencyContact,
		AgeAtDelivery:    m.AgeAtDelivery,
		InscriptionDate:  m.InscriptionDate,
		MVCNumber:        m.MVCNumber,
		DoctorNurse:      m.DoctorNurse,
		InsuranceNumber:  m.InsuranceNumber,
		Sections:         m.Sections,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}

func (r *repoMongo) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	_, err := r.coll.InsertOne(ctx, toMongo(p))
	return err
}

func (r *repoMongo) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	var doc mongoPatient
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain()
}

func (r *repoMongo) Update(ctx context.Context, id uuid.UUID, upd Update) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	fields := map[string]*string{
		"personalNumber":                upd.PersonalNumber,
		"fullName":                      upd.FullName,
		"birthDate":                     upd.BirthDate,
		"address.street":                upd.Street,
		"address.postalCode":            upd.PostalCode,
		"address.city":                  upd.City,
		"address.country":               upd.Country,
		"mobilePhone":                   upd.MobilePhone,
		"emergencyContact.name":         upd.EmergencyName,
		"emergencyContact.relationship": upd.Relationship,
		"emergencyContact.mobile":       upd.EmergencyMobile,
		"ageAtDelivery":                 upd.AgeAtDelivery,
		"inscriptionDate":               upd.InscriptionDate,
		"mvcNumber":                     upd.MVCNumber,
		"doctorNurse":                   upd.DoctorNurse,
		"insuranceNumber":               upd.InsuranceNumber,
	}
	for key, val := range fields {
		if val != nil {
			set[key] = *val
		}
	}

	// No upsert: updating an unknown id must fail, not create a record.
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoMongo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoMongo) List(ctx context.Context) ([]*Patient, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*Patient
	for cursor.Next(ctx) {
		var doc mongoPatient
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		p, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, cursor.Err()
}

func (r *repoMongo) SetSection(ctx context.Context, id uuid.UUID, name string, doc map[string]any) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"sections." + name: doc}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
