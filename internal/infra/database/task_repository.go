package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

type TaskRepository struct {
	store
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{store{DB: db}}
}

const taskSelect = `
	SELECT t.id, t.title, t.description, t.due_date, t.status, t.priority,
		t.contact_id, t.deal_id, t.created_at, t.updated_at,
		ct.first_name, ct.last_name, dl.title
	FROM tasks t
	LEFT JOIN contacts ct ON ct.id = t.contact_id
	LEFT JOIN deals dl ON dl.id = t.deal_id
`

// Status follows the enum order, not the alphabet.
const taskOrder = `
	ORDER BY CASE t.status WHEN 'OPEN' THEN 0 WHEN 'IN_PROGRESS' THEN 1 ELSE 2 END,
		CASE WHEN t.due_date IS NULL THEN 1 ELSE 0 END,
		t.due_date ASC,
		t.created_at DESC,
		t.id
`

func scanTask(row scanner) (*entity.Task, error) {
	var (
		t                   entity.Task
		description         sql.NullString
		dueDate             sql.NullTime
		contactID, dealID   sql.NullString
		firstName, lastName sql.NullString
		dealTitle           sql.NullString
	)
	err := row.Scan(
		&t.ID, &t.Title, &description, &dueDate, &t.Status, &t.Priority,
		&contactID, &dealID, &t.CreatedAt, &t.UpdatedAt,
		&firstName, &lastName, &dealTitle,
	)
	if err != nil {
		return nil, err
	}
	t.Description = stringPtr(description)
	t.DueDate = timePtr(dueDate)
	t.ContactID = stringPtr(contactID)
	t.DealID = stringPtr(dealID)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	if contactID.Valid && firstName.Valid {
		t.Contact = &entity.ContactRef{ID: contactID.String, FirstName: firstName.String, LastName: lastName.String}
	}
	if dealID.Valid && dealTitle.Valid {
		t.Deal = &entity.DealRef{ID: dealID.String, Title: dealTitle.String}
	}
	return &t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	if err := r.ready(); err != nil {
		return err
	}
	query := `
		INSERT INTO tasks (id, title, description, due_date, status, priority,
			contact_id, deal_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query,
		t.ID,
		t.Title,
		nullString(t.Description),
		nullTime(t.DueDate),
		string(t.Status),
		string(t.Priority),
		nullString(t.ContactID),
		nullString(t.DealID),
		t.CreatedAt.UTC(),
		t.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", writeError(err, nil))
	}
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	if err := r.ready(); err != nil {
		return err
	}
	query := `
		UPDATE tasks SET title = $1, description = $2, due_date = $3, status = $4,
			priority = $5, contact_id = $6, deal_id = $7, updated_at = $8
		WHERE id = $9
	`
	res, err := r.DB.ExecContext(ctx, query,
		t.Title,
		nullString(t.Description),
		nullTime(t.DueDate),
		string(t.Status),
		string(t.Priority),
		nullString(t.ContactID),
		nullString(t.DealID),
		t.UpdatedAt.UTC(),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", writeError(err, nil))
	}
	return expectOne(res)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if err := r.ready(); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return expectOne(res)
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	t, err := scanTask(r.DB.QueryRowContext(ctx, taskSelect+` WHERE t.id = $1`, id))
	if err != nil {
		return nil, readError(err)
	}
	return t, nil
}

func (r *TaskRepository) List(ctx context.Context, filter entity.TaskFilter) ([]*entity.Task, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var (
		conds []string
		args  []any
	)
	if filter.ContactID != "" {
		args = append(args, filter.ContactID)
		conds = append(conds, fmt.Sprintf("t.contact_id = $%d", len(args)))
	}
	if filter.DealID != "" {
		args = append(args, filter.DealID)
		conds = append(conds, fmt.Sprintf("t.deal_id = $%d", len(args)))
	}

	rows, err := r.DB.QueryContext(ctx, taskSelect+where(conds)+taskOrder, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*entity.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
