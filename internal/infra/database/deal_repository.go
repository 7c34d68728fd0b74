package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

type DealRepository struct {
	store
}

func NewDealRepository(db *sql.DB) *DealRepository {
	return &DealRepository{store{DB: db}}
}

const dealSelect = `
	SELECT d.id, d.title, d.value, d.probability, d.expected_close, d.stage, d.notes,
		d.contact_id, d.company_id, d.created_at, d.updated_at,
		ct.first_name, ct.last_name, ct.email,
		co.id, co.name, co.industry, co.website, co.created_at, co.updated_at
	FROM deals d
	JOIN contacts ct ON ct.id = d.contact_id
	LEFT JOIN companies co ON co.id = d.company_id
`

func scanDeal(row scanner) (*entity.Deal, error) {
	var (
		d                               entity.Deal
		probability                     sql.NullInt64
		expectedClose                   sql.NullTime
		notes, companyID                sql.NullString
		ref                             entity.ContactRef
		coID, coName, coIndustry, coWeb sql.NullString
		coCreated, coUpdated            sql.NullTime
	)
	err := row.Scan(
		&d.ID, &d.Title, &d.Value, &probability, &expectedClose, &d.Stage, &notes,
		&d.ContactID, &companyID, &d.CreatedAt, &d.UpdatedAt,
		&ref.FirstName, &ref.LastName, &ref.Email,
		&coID, &coName, &coIndustry, &coWeb, &coCreated, &coUpdated,
	)
	if err != nil {
		return nil, err
	}
	d.Probability = intPtr(probability)
	d.ExpectedClose = timePtr(expectedClose)
	d.Notes = stringPtr(notes)
	d.CompanyID = stringPtr(companyID)
	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	ref.ID = d.ContactID
	d.Contact = &ref
	if coID.Valid {
		d.Company = &entity.Company{
			ID:        coID.String,
			Name:      coName.String,
			Industry:  stringPtr(coIndustry),
			Website:   stringPtr(coWeb),
			CreatedAt: coCreated.Time.UTC(),
			UpdatedAt: coUpdated.Time.UTC(),
		}
	}
	return &d, nil
}

func (r *DealRepository) Create(ctx context.Context, d *entity.Deal) error {
	if err := r.ready(); err != nil {
		return err
	}
	query := `
		INSERT INTO deals (id, title, value, probability, expected_close, stage, notes,
			contact_id, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		d.ID,
		d.Title,
		d.Value,
		nullInt(d.Probability),
		nullTime(d.ExpectedClose),
		string(d.Stage),
		nullString(d.Notes),
		d.ContactID,
		nullString(d.CompanyID),
		d.CreatedAt.UTC(),
		d.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert deal: %w", writeError(err, nil))
	}
	return nil
}

func (r *DealRepository) Update(ctx context.Context, d *entity.Deal) error {
	if err := r.ready(); err != nil {
		return err
	}
	query := `
		UPDATE deals SET title = $1, value = $2, probability = $3, expected_close = $4,
			stage = $5, notes = $6, contact_id = $7, company_id = $8, updated_at = $9
		WHERE id = $10
	`
	res, err := r.DB.ExecContext(ctx, query,
		d.Title,
		d.Value,
		nullInt(d.Probability),
		nullTime(d.ExpectedClose),
		string(d.Stage),
		nullString(d.Notes),
		d.ContactID,
		nullString(d.CompanyID),
		d.UpdatedAt.UTC(),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("update deal: %w", writeError(err, nil))
	}
	return expectOne(res)
}

func (r *DealRepository) Delete(ctx context.Context, id string) error {
	if err := r.ready(); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	return expectOne(res)
}

func (r *DealRepository) FindByID(ctx context.Context, id string) (*entity.Deal, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	d, err := scanDeal(r.DB.QueryRowContext(ctx, dealSelect+` WHERE d.id = $1`, id))
	if err != nil {
		return nil, readError(err)
	}
	return d, nil
}

func (r *DealRepository) List(ctx context.Context, filter entity.DealFilter) ([]*entity.Deal, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var (
		conds []string
		args  []any
	)
	if filter.ContactID != "" {
		args = append(args, filter.ContactID)
		conds = append(conds, fmt.Sprintf("d.contact_id = $%d", len(args)))
	}

	rows, err := r.DB.QueryContext(ctx, dealSelect+where(conds)+` ORDER BY d.created_at DESC, d.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()

	deals := make([]*entity.Deal, 0)
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}
