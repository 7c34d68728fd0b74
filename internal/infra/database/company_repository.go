package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

type CompanyRepository struct {
	store
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{store{DB: db}}
}

func (r *CompanyRepository) UpsertByName(ctx context.Context, c *entity.Company) (bool, error) {
	if err := r.ready(); err != nil {
		return false, err
	}

	query := `
		INSERT INTO companies (id, name, industry, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			industry = COALESCE(EXCLUDED.industry, companies.industry),
			website = COALESCE(EXCLUDED.website, companies.website),
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		nullString(c.Industry),
		nullString(c.Website),
		c.CreatedAt.UTC(),
		c.UpdatedAt.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("upsert company: %w", err)
	}

	var (
		id        string
		createdAt sql.NullTime
		industry  sql.NullString
		website   sql.NullString
	)
	err = r.DB.QueryRowContext(ctx,
		`SELECT id, industry, website, created_at FROM companies WHERE name = $1`, c.Name,
	).Scan(&id, &industry, &website, &createdAt)
	if err != nil {
		return false, fmt.Errorf("read company: %w", readError(err))
	}

	created := id == c.ID
	c.ID = id
	c.Industry = stringPtr(industry)
	c.Website = stringPtr(website)
	if createdAt.Valid {
		c.CreatedAt = createdAt.Time.UTC()
	}
	return created, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	if err := r.ready(); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return expectOne(res)
}
