package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

type InteractionRepository struct {
	store
}

func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{store{DB: db}}
}

const interactionSelect = `
	SELECT i.id, i.channel, i.summary, i.occurred_at, i.contact_id, i.deal_id,
		i.created_at, i.updated_at,
		ct.first_name, ct.last_name, ct.email, dl.title
	FROM interactions i
	LEFT JOIN contacts ct ON ct.id = i.contact_id
	LEFT JOIN deals dl ON dl.id = i.deal_id
`

func scanInteraction(row scanner) (*entity.Interaction, error) {
	var (
		i                          entity.Interaction
		contactID, dealID          sql.NullString
		firstName, lastName, email sql.NullString
		dealTitle                  sql.NullString
	)
	err := row.Scan(
		&i.ID, &i.Channel, &i.Summary, &i.OccurredAt, &contactID, &dealID,
		&i.CreatedAt, &i.UpdatedAt,
		&firstName, &lastName, &email, &dealTitle,
	)
	if err != nil {
		return nil, err
	}
	i.ContactID = stringPtr(contactID)
	i.DealID = stringPtr(dealID)
	i.OccurredAt = i.OccurredAt.UTC()
	i.CreatedAt = i.CreatedAt.UTC()
	i.UpdatedAt = i.UpdatedAt.UTC()
	if contactID.Valid && firstName.Valid {
		i.Contact = &entity.ContactRef{
			ID:        contactID.String,
			FirstName: firstName.String,
			LastName:  lastName.String,
			Email:     email.String,
		}
	}
	if dealID.Valid && dealTitle.Valid {
		i.Deal = &entity.DealRef{ID: dealID.String, Title: dealTitle.String}
	}
	return &i, nil
}

func (r *InteractionRepository) Create(ctx context.Context, i *entity.Interaction) error {
	if err := r.ready(); err != nil {
		return err
	}
	query := `
		INSERT INTO interactions (id, channel, summary, occurred_at, contact_id, deal_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		i.ID,
		i.Channel,
		i.Summary,
		i.OccurredAt.UTC(),
		nullString(i.ContactID),
		nullString(i.DealID),
		i.CreatedAt.UTC(),
		i.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", writeError(err, nil))
	}
	return nil
}

func (r *InteractionRepository) Update(ctx context.Context, i *entity.Interaction) error {
	if err := r.ready(); err != nil {
		return err
	}
	query := `
		UPDATE interactions SET channel = $1, summary = $2, occurred_at = $3,
			contact_id = $4, deal_id = $5, updated_at = $6
		WHERE id = $7
	`
	res, err := r.DB.ExecContext(ctx, query,
		i.Channel,
		i.Summary,
		i.OccurredAt.UTC(),
		nullString(i.ContactID),
		nullString(i.DealID),
		i.UpdatedAt.UTC(),
		i.ID,
	)
	if err != nil {
		return fmt.Errorf("update interaction: %w", writeError(err, nil))
	}
	return expectOne(res)
}

func (r *InteractionRepository) Delete(ctx context.Context, id string) error {
	if err := r.ready(); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM interactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete interaction: %w", err)
	}
	return expectOne(res)
}

func (r *InteractionRepository) FindByID(ctx context.Context, id string) (*entity.Interaction, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	i, err := scanInteraction(r.DB.QueryRowContext(ctx, interactionSelect+` WHERE i.id = $1`, id))
	if err != nil {
		return nil, readError(err)
	}
	return i, nil
}

func (r *InteractionRepository) List(ctx context.Context, filter entity.InteractionFilter) ([]*entity.Interaction, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var (
		conds []string
		args  []any
	)
	if filter.ContactID != "" {
		args = append(args, filter.ContactID)
		conds = append(conds, fmt.Sprintf("i.contact_id = $%d", len(args)))
	}
	if filter.DealID != "" {
		args = append(args, filter.DealID)
		conds = append(conds, fmt.Sprintf("i.deal_id = $%d", len(args)))
	}

	rows, err := r.DB.QueryContext(ctx, interactionSelect+where(conds)+` ORDER BY i.occurred_at DESC, i.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	items := make([]*entity.Interaction, 0)
	for rows.Next() {
		i, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
