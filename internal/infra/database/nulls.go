package database

import (
	"database/sql"
	"time"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

type scanner interface {
	Scan(dest ...any) error
}

// store is embedded by every repository. A nil DB means no database is
// configured and every call fails with entity.ErrDatabaseNotConfigured.
type store struct {
	DB *sql.DB
}

func (s store) ready() error {
	if s.DB == nil {
		return entity.ErrDatabaseNotConfigured
	}
	return nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

// where joins conditions with AND.
func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	out := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		out += " AND " + c
	}
	return out
}
