package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"attendancehub/internal/seed"
)

//go:embed schema.sql
var schemaSQL string

// statements splits the embedded schema into individual DDL statements.
func statements() []string {
	var out []string
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// EnsureSchema creates every table that does not exist yet and, when the
// companies table is empty, loads data. Running it against an already
// initialised database changes nothing.
func (s *Store) EnsureSchema(ctx context.Context, data seed.Dataset) error {
	for _, stmt := range statements() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*)::int FROM companies`); err != nil {
		return fmt.Errorf("count companies: %w", err)
	}
	if count > 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		return insertSeed(ctx, tx, data)
	})
}

func insertSeed(ctx context.Context, tx *sqlx.Tx, data seed.Dataset) error {
	for _, c := range data.Companies {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO companies (id, name, email, phone, type, description, location, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (id) DO NOTHING`,
			c.ID, c.Name, c.Email, c.Phone, c.Type, c.Description, c.Location, c.CreatedAt); err != nil {
			return fmt.Errorf("seed company %s: %w", c.ID, err)
		}
	}
	for _, u := range data.Users {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, company_id, name, email, role)
			 VALUES ($1, $2, $3, $4, $5) ON CONFLICT (email) DO NOTHING`,
			u.ID, u.CompanyID, u.Name, u.Email, string(u.Role)); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}
	for _, m := range data.Members {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO members (id, company_id, name, registration_number, department, joined_year)
			 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (registration_number) DO NOTHING`,
			m.ID, m.CompanyID, m.Name, m.RegistrationNumber, m.Department, m.JoinedYear); err != nil {
			return fmt.Errorf("seed member %s: %w", m.ID, err)
		}
	}
	for _, rec := range data.Attendance {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO attendance_records (id, member_id, date, status, marked_by, timestamp)
			 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`,
			rec.ID, rec.MemberID, rec.Date, string(rec.Status), rec.MarkedBy, rec.Timestamp); err != nil {
			return fmt.Errorf("seed attendance %s: %w", rec.ID, err)
		}
	}
	for _, a := range data.Announcements {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO announcements (id, committee_id, committee_name, title, content, category, timestamp)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (id) DO NOTHING`,
			a.ID, a.CommitteeID, a.CommitteeName, a.Title, a.Content, string(a.Category), a.Timestamp); err != nil {
			return fmt.Errorf("seed announcement %s: %w", a.ID, err)
		}
	}
	return nil
}
