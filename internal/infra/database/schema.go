package database

import (
	"context"
	"database/sql"
	"fmt"
)

type table interface {
	TableName() string
	CreateTableSQL() string
}

// The SQL below runs unchanged on PostgreSQL and SQLite: ids and timestamps
// are produced by the application, never by column defaults.

type companiesTable struct{}

func (companiesTable) TableName() string { return "companies" }

func (companiesTable) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS companies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		industry TEXT,
		website TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
}

type contactsTable struct{}

func (contactsTable) TableName() string { return "contacts" }

func (contactsTable) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS contacts (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT,
		position TEXT,
		source TEXT,
		notes TEXT,
		status TEXT NOT NULL DEFAULT 'LEAD',
		company_id TEXT REFERENCES companies(id) ON DELETE SET NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
}

type dealsTable struct{}

func (dealsTable) TableName() string { return "deals" }

func (dealsTable) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS deals (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		value DOUBLE PRECISION NOT NULL DEFAULT 0,
		probability INTEGER,
		expected_close TIMESTAMP,
		stage TEXT NOT NULL DEFAULT 'QUALIFICATION',
		notes TEXT,
		contact_id TEXT NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
		company_id TEXT REFERENCES companies(id) ON DELETE SET NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
}

type tasksTable struct{}

func (tasksTable) TableName() string { return "tasks" }

func (tasksTable) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		due_date TIMESTAMP,
		status TEXT NOT NULL DEFAULT 'OPEN',
		priority TEXT NOT NULL DEFAULT 'MEDIUM',
		contact_id TEXT REFERENCES contacts(id) ON DELETE CASCADE,
		deal_id TEXT REFERENCES deals(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
}

type interactionsTable struct{}

func (interactionsTable) TableName() string { return "interactions" }

func (interactionsTable) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS interactions (
		id TEXT PRIMARY KEY,
		channel TEXT NOT NULL,
		summary TEXT NOT NULL,
		occurred_at TIMESTAMP NOT NULL,
		contact_id TEXT REFERENCES contacts(id) ON DELETE SET NULL,
		deal_id TEXT REFERENCES deals(id) ON DELETE SET NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
}

// tables in foreign key order.
var tables = []table{
	companiesTable{},
	contactsTable{},
	dealsTable{},
	tasksTable{},
	interactionsTable{},
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_contacts_created_at ON contacts (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_deals_contact_id ON deals (contact_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_contact_id ON tasks (contact_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_deal_id ON tasks (deal_id)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_occurred_at ON interactions (occurred_at)`,
}

// Migrate creates the tables and indexes that do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, t := range tables {
		if _, err := db.ExecContext(ctx, t.CreateTableSQL()); err != nil {
			return fmt.Errorf("create table %s: %w", t.TableName(), err)
		}
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
