package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

type ContactRepository struct {
	store
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{store{DB: db}}
}

const contactSelect = `
	SELECT c.id, c.first_name, c.last_name, c.email, c.phone, c.position, c.source,
		c.notes, c.status, c.company_id, c.created_at, c.updated_at,
		co.id, co.name, co.industry, co.website, co.created_at, co.updated_at
	FROM contacts c
	LEFT JOIN companies co ON co.id = c.company_id
`

func scanContact(row scanner) (*entity.Contact, error) {
	var (
		c                               entity.Contact
		phone, position, source, notes  sql.NullString
		companyID                       sql.NullString
		coID, coName, coIndustry, coWeb sql.NullString
		coCreated, coUpdated            sql.NullTime
	)
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &phone, &position, &source,
		&notes, &c.Status, &companyID, &c.CreatedAt, &c.UpdatedAt,
		&coID, &coName, &coIndustry, &coWeb, &coCreated, &coUpdated,
	)
	if err != nil {
		return nil, err
	}
	c.Phone = stringPtr(phone)
	c.Position = stringPtr(position)
	c.Source = stringPtr(source)
	c.Notes = stringPtr(notes)
	c.CompanyID = stringPtr(companyID)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	if coID.Valid {
		c.Company = &entity.Company{
			ID:        coID.String,
			Name:      coName.String,
			Industry:  stringPtr(coIndustry),
			Website:   stringPtr(coWeb),
			CreatedAt: coCreated.Time.UTC(),
			UpdatedAt: coUpdated.Time.UTC(),
		}
	}
	return &c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	if err := r.ready(); err != nil {
		return err
	}
	query := `
		INSERT INTO contacts (id, first_name, last_name, email, phone, position, source,
			notes, status, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.FirstName,
		c.LastName,
		c.Email,
		nullString(c.Phone),
		nullString(c.Position),
		nullString(c.Source),
		nullString(c.Notes),
		string(c.Status),
		nullString(c.CompanyID),
		c.CreatedAt.UTC(),
		c.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", writeError(err, entity.ErrEmailAlreadyExists))
	}
	return nil
}

// Update writes every column; concurrent edits are last write wins.
func (r *ContactRepository) Update(ctx context.Context, c *entity.Contact) error {
	if err := r.ready(); err != nil {
		return err
	}
	query := `
		UPDATE contacts SET first_name = $1, last_name = $2, email = $3, phone = $4,
			position = $5, source = $6, notes = $7, status = $8, company_id = $9,
			updated_at = $10
		WHERE id = $11
	`
	res, err := r.DB.ExecContext(ctx, query,
		c.FirstName,
		c.LastName,
		c.Email,
		nullString(c.Phone),
		nullString(c.Position),
		nullString(c.Source),
		nullString(c.Notes),
		string(c.Status),
		nullString(c.CompanyID),
		c.UpdatedAt.UTC(),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", writeError(err, entity.ErrEmailAlreadyExists))
	}
	return expectOne(res)
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	if err := r.ready(); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return expectOne(res)
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	c, err := scanContact(r.DB.QueryRowContext(ctx, contactSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return nil, readError(err)
	}
	return c, nil
}

func (r *ContactRepository) FindByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	c, err := scanContact(r.DB.QueryRowContext(ctx, contactSelect+` WHERE c.email = $1`, email))
	if err != nil {
		return nil, readError(err)
	}
	return c, nil
}

func (r *ContactRepository) List(ctx context.Context) ([]*entity.Contact, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, contactSelect+` ORDER BY c.created_at DESC, c.id`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*entity.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
