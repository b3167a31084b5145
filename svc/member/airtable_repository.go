package member

import (
	"context"
	"errors"

	"github.com/netandconnect/portal/pkg/airtable"
	"github.com/netandconnect/portal/pkg/sanitizer"
)

const (
	fieldEmail    = "Email"
	fieldFullName = "Nom complet"
	fieldTokens   = "Tokens restants"
	fieldImage    = "Image"
)

// RecordStore is the part of *airtable.Client the repository uses.
type RecordStore interface {
	FindFirst(ctx context.Context, table, formula string) (*airtable.Record, error)
	CreateRecord(ctx context.Context, table string, fields airtable.Fields) (*airtable.Record, error)
	UpdateRecord(ctx context.Context, table, id string, fields airtable.Fields) (*airtable.Record, error)
}

// AirtableRepository keeps members in an Airtable table.
type AirtableRepository struct {
	records RecordStore
	cfg     Config
}

func NewAirtableRepository(records RecordStore, cfg Config) *AirtableRepository {
	return &AirtableRepository{records: records, cfg: cfg.withDefaults()}
}

func (r *AirtableRepository) FindByEmail(ctx context.Context, email string) (*Member, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}

	rec, err := r.records.FindFirst(ctx, r.cfg.Table, airtable.EqualsFormula(fieldEmail, email))
	if err != nil {
		if errors.Is(err, airtable.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, errors.Join(ErrRepository, err)
	}
	return fromRecord(rec, email), nil
}

func (r *AirtableRepository) Create(ctx context.Context, email, fullName string) (*Member, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if fullName == "" {
		fullName = sanitizer.EmailLocalPart(email)
	}

	rec, err := r.records.CreateRecord(ctx, r.cfg.Table, airtable.Fields{
		fieldEmail:    email,
		fieldFullName: fullName,
		fieldTokens:   r.cfg.DefaultTokens,
	})
	if err != nil {
		return nil, errors.Join(ErrRepository, err)
	}

	m := fromRecord(rec, email)
	if m.FullName == "" {
		m.FullName = fullName
	}
	if !rec.Has(fieldTokens) {
		m.Tokens = r.cfg.DefaultTokens
	}
	return m, nil
}

func (r *AirtableRepository) UpdateTokens(ctx context.Context, id string, tokens int) (*Member, error) {
	rec, err := r.records.UpdateRecord(ctx, r.cfg.Table, id, airtable.Fields{fieldTokens: tokens})
	if err != nil {
		if errors.Is(err, airtable.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, errors.Join(ErrRepository, err)
	}
	return fromRecord(rec, ""), nil
}

func fromRecord(rec *airtable.Record, fallbackEmail string) *Member {
	email := rec.Text(fieldEmail)
	if email == "" {
		email = fallbackEmail
	}
	return &Member{
		ID:       rec.ID,
		Email:    email,
		FullName: rec.Text(fieldFullName),
		Tokens:   rec.Int(fieldTokens),
		Image:    rec.Text(fieldImage),
	}
}
