// Package postgres implements store.Store on PostgreSQL through the pgx
// database/sql driver and sqlx row mapping.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"attendancehub/internal/model"
	"attendancehub/internal/store"
)

const uniqueViolation = "23505"

type Options struct {
	MaxOpenConns   int
	MaxIdleTime    time.Duration
	ConnectTimeout time.Duration
}

func DefaultOptions() Options {
	return Options{MaxOpenConns: 20, MaxIdleTime: 30 * time.Second, ConnectTimeout: 2 * time.Second}
}

type Store struct {
	db *sqlx.DB
}

var _ store.Store = (*Store)(nil)

// Open builds a connection pool for databaseURL. No connection is made until
// the first query.
func Open(databaseURL string, opts Options) (*Store, error) {
	cc, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if opts.ConnectTimeout > 0 {
		cc.ConnectTimeout = opts.ConnectTimeout
	}
	db := stdlib.OpenDB(*cc)
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.MaxIdleTime)
	}
	return New(sqlx.NewDb(db, "pgx")), nil
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Mode() store.Mode { return store.ModePostgres }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) withTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// mapErr translates driver errors into the store sentinels.
func mapErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, store.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %s: %w", what, pgErr.ConstraintName, store.ErrConflict)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// where joins the non-empty conditions with AND.
func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// Companies

func (s *Store) ListCompanies(ctx context.Context) ([]model.Company, error) {
	var rows []companyRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC`); err != nil {
		return nil, mapErr(err, "list companies")
	}
	out := make([]model.Company, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *Store) CreateCompany(ctx context.Context, c model.Company) (model.Company, error) {
	var row companyRow
	err := s.db.GetContext(ctx, &row,
		`INSERT INTO companies (id, name, email, phone, type, description, location, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+companyColumns,
		c.ID, c.Name, c.Email, c.Phone, c.Type, c.Description, c.Location, c.CreatedAt)
	if err != nil {
		return model.Company{}, mapErr(err, "create company")
	}
	return row.toModel(), nil
}

// Users

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var row userRow
	if err := s.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE email = $1`, email); err != nil {
		return model.User{}, mapErr(err, "user "+email)
	}
	return row.toModel(), nil
}

func (s *Store) ListUsers(ctx context.Context, companyID string) ([]model.User, error) {
	var (
		conds []string
		args  []any
	)
	if companyID != "" {
		args = append(args, companyID)
		conds = append(conds, fmt.Sprintf("company_id = $%d", len(args)))
	}
	var rows []userRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+userColumns+` FROM users`+where(conds)+` ORDER BY name ASC`, args...); err != nil {
		return nil, mapErr(err, "list users")
	}
	out := make([]model.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *Store) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row,
		`INSERT INTO users (id, company_id, name, email, role, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		u.ID, u.CompanyID, u.Name, u.Email, string(u.Role), nullString(u.PasswordHash))
	if err != nil {
		return model.User{}, mapErr(err, "create user")
	}
	return row.toModel(), nil
}

func (s *Store) UpdateUserSuspension(ctx context.Context, id string, suspended bool) (model.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row,
		`UPDATE users SET suspended = $1 WHERE id = $2 RETURNING `+userColumns, suspended, id)
	if err != nil {
		return model.User{}, mapErr(err, "user "+id)
	}
	return row.toModel(), nil
}

// Members

func (s *Store) ListMembers(ctx context.Context, companyID string) ([]model.Member, error) {
	var (
		conds []string
		args  []any
	)
	if companyID != "" {
		args = append(args, companyID)
		conds = append(conds, fmt.Sprintf("company_id = $%d", len(args)))
	}
	var rows []memberRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+memberColumns+` FROM members`+where(conds)+` ORDER BY name ASC`, args...); err != nil {
		return nil, mapErr(err, "list members")
	}
	out := make([]model.Member, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *Store) CreateMember(ctx context.Context, m model.Member) (model.Member, error) {
	var row memberRow
	err := s.db.GetContext(ctx, &row,
		`INSERT INTO members (id, company_id, name, registration_number, department, joined_year, email, suspended)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+memberColumns,
		m.ID, m.CompanyID, m.Name, m.RegistrationNumber, m.Department, m.JoinedYear, nullString(m.Email), m.Suspended)
	if err != nil {
		return model.Member{}, mapErr(err, "create member")
	}
	return row.toModel(), nil
}

func (s *Store) UpdateMemberSuspension(ctx context.Context, id string, suspended bool, reason string) (model.Member, error) {
	var row memberRow
	err := s.db.GetContext(ctx, &row,
		`UPDATE members SET suspended = $1, suspension_reason = $2 WHERE id = $3 RETURNING `+memberColumns,
		suspended, nullString(reason), id)
	if err != nil {
		return model.Member{}, mapErr(err, "member "+id)
	}
	return row.toModel(), nil
}

// Attendance

func (s *Store) ListAttendance(ctx context.Context, filter store.AttendanceFilter) ([]model.MemberAttendance, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Date != "" {
		args = append(args, filter.Date)
		conds = append(conds, fmt.Sprintf("a.date = $%d", len(args)))
	}
	if filter.MemberID != "" {
		args = append(args, filter.MemberID)
		conds = append(conds, fmt.Sprintf("a.member_id = $%d", len(args)))
	}
	query := `SELECT a.id, a.member_id, a.date, a.status, a.marked_by, a.timestamp,
	                 m.name AS member_name, m.registration_number, m.department
	          FROM attendance_records a
	          LEFT JOIN members m ON m.id = a.member_id` + where(conds) + `
	          ORDER BY a.date DESC, a.member_id ASC`

	var rows []attendanceRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, mapErr(err, "list attendance")
	}
	out := make([]model.MemberAttendance, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *Store) ReplaceAttendanceDay(ctx context.Context, date string, records []model.AttendanceRecord) error {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM attendance_records WHERE date = $1`, date); err != nil {
			return err
		}
		for _, rec := range records {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO attendance_records (id, member_id, date, status, marked_by, timestamp)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				rec.ID, rec.MemberID, date, string(rec.Status), nullString(rec.MarkedBy), rec.Timestamp); err != nil {
				return err
			}
		}
		return nil
	})
	return mapErr(err, "replace attendance "+date)
}

// Announcements

func (s *Store) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	var rows []announcementRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+announcementColumns+` FROM announcements ORDER BY timestamp DESC`); err != nil {
		return nil, mapErr(err, "list announcements")
	}
	var comments []commentRow
	if err := s.db.SelectContext(ctx, &comments,
		`SELECT id, announcement_id AS parent_id, user_id, user_name, content, timestamp
		 FROM announcement_comments ORDER BY timestamp ASC, id ASC`); err != nil {
		return nil, mapErr(err, "list announcement comments")
	}
	byParent := groupComments(comments)
	out := make([]model.Announcement, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel(byParent[r.ID]))
	}
	return out, nil
}

func (s *Store) CreateAnnouncement(ctx context.Context, a model.Announcement) (model.Announcement, error) {
	var row announcementRow
	err := s.db.GetContext(ctx, &row,
		`INSERT INTO announcements (id, committee_id, committee_name, title, content, category, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+announcementColumns,
		a.ID, a.CommitteeID, nullString(a.CommitteeName), a.Title, a.Content, string(a.Category), a.Timestamp)
	if err != nil {
		return model.Announcement{}, mapErr(err, "create announcement")
	}
	return row.toModel(nil), nil
}

func (s *Store) AddAnnouncementComment(ctx context.Context, announcementID string, c model.Comment) (model.Comment, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO announcement_comments (id, announcement_id, user_id, user_name, content, timestamp)
		 SELECT $1, $2, $3, $4, $5, $6
		 WHERE EXISTS (SELECT 1 FROM announcements WHERE id = $2)`,
		c.ID, announcementID, nullString(c.UserID), nullString(c.UserName), c.Content, c.Timestamp)
	if err != nil {
		return model.Comment{}, mapErr(err, "comment announcement "+announcementID)
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Comment{}, mapErr(err, "comment announcement "+announcementID)
	} else if n == 0 {
		return model.Comment{}, fmt.Errorf("announcement %s: %w", announcementID, store.ErrNotFound)
	}
	return c, nil
}

// Permissions

func (s *Store) ListPermissions(ctx context.Context) ([]model.PermissionRequest, error) {
	var rows []permissionRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+permissionColumns+` FROM permission_requests ORDER BY timestamp DESC`); err != nil {
		return nil, mapErr(err, "list permissions")
	}
	out := make([]model.PermissionRequest, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *Store) CreatePermission(ctx context.Context, p model.PermissionRequest) (model.PermissionRequest, error) {
	var row permissionRow
	err := s.db.GetContext(ctx, &row,
		`INSERT INTO permission_requests (id, user_id, user_name, reason, date, timestamp, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+permissionColumns,
		p.ID, p.UserID, nullString(p.UserName), p.Reason, p.Date, p.Timestamp, string(p.Status))
	if err != nil {
		return model.PermissionRequest{}, mapErr(err, "create permission")
	}
	return row.toModel(), nil
}

func (s *Store) UpdatePermissionStatus(ctx context.Context, id string, status model.PermissionStatus) (model.PermissionRequest, error) {
	var row permissionRow
	err := s.db.GetContext(ctx, &row,
		`UPDATE permission_requests SET status = $1 WHERE id = $2 RETURNING `+permissionColumns, string(status), id)
	if err != nil {
		return model.PermissionRequest{}, mapErr(err, "permission "+id)
	}
	return row.toModel(), nil
}

// Cases

func (s *Store) ListCases(ctx context.Context, companyID string) ([]model.Case, error) {
	var (
		conds []string
		args  []any
	)
	if companyID != "" {
		args = append(args, companyID)
		conds = append(conds, fmt.Sprintf("c.company_id = $%d", len(args)))
	}
	var rows []caseRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT `+caseColumns+` FROM cases c`+where(conds)+` ORDER BY c.timestamp DESC`, args...); err != nil {
		return nil, mapErr(err, "list cases")
	}
	var comments []commentRow
	if err := s.db.SelectContext(ctx, &comments,
		`SELECT cc.id, cc.case_id AS parent_id, cc.user_id, cc.user_name, cc.content, cc.timestamp
		 FROM case_comments cc
		 JOIN cases c ON c.id = cc.case_id`+where(conds)+`
		 ORDER BY cc.timestamp ASC, cc.id ASC`, args...); err != nil {
		return nil, mapErr(err, "list case comments")
	}
	byParent := groupComments(comments)
	out := make([]model.Case, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel(byParent[r.ID]))
	}
	return out, nil
}

func (s *Store) GetCase(ctx context.Context, id string) (model.Case, error) {
	var row caseRow
	if err := s.db.GetContext(ctx, &row, `SELECT `+caseColumns+` FROM cases WHERE id = $1`, id); err != nil {
		return model.Case{}, mapErr(err, "case "+id)
	}
	comments, err := s.caseComments(ctx, id)
	if err != nil {
		return model.Case{}, err
	}
	return row.toModel(comments), nil
}

func (s *Store) caseComments(ctx context.Context, caseID string) ([]model.Comment, error) {
	var rows []commentRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT id, case_id AS parent_id, user_id, user_name, content, timestamp
		 FROM case_comments WHERE case_id = $1 ORDER BY timestamp ASC, id ASC`, caseID); err != nil {
		return nil, mapErr(err, "case comments "+caseID)
	}
	return groupComments(rows)[caseID], nil
}

func (s *Store) CreateCase(ctx context.Context, c model.Case) (model.Case, error) {
	var row caseRow
	err := s.db.GetContext(ctx, &row,
		`INSERT INTO cases (id, company_id, reported_by, reporter_name, reporter_role, member_id, member_name,
		                    title, description, date, timestamp, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+caseColumns,
		c.ID, c.CompanyID, c.ReportedBy, nullString(c.ReporterName), nullString(c.ReporterRole), c.MemberID,
		nullString(c.MemberName), c.Title, c.Description, c.Date, c.Timestamp, string(c.Status))
	if err != nil {
		return model.Case{}, mapErr(err, "create case")
	}
	return row.toModel(nil), nil
}

func (s *Store) AddCaseComment(ctx context.Context, caseID string, c model.Comment) (model.Comment, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO case_comments (id, case_id, user_id, user_name, content, timestamp)
		 SELECT $1, $2, $3, $4, $5, $6
		 WHERE EXISTS (SELECT 1 FROM cases WHERE id = $2)`,
		c.ID, caseID, nullString(c.UserID), nullString(c.UserName), c.Content, c.Timestamp)
	if err != nil {
		return model.Comment{}, mapErr(err, "comment case "+caseID)
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Comment{}, mapErr(err, "comment case "+caseID)
	} else if n == 0 {
		return model.Comment{}, fmt.Errorf("case %s: %w", caseID, store.ErrNotFound)
	}
	return c, nil
}

// DecideCase updates only pending rows, so two concurrent decisions cannot
// both win.
func (s *Store) DecideCase(ctx context.Context, id string, d store.CaseDecision) (model.Case, error) {
	var row caseRow
	err := s.db.GetContext(ctx, &row,
		`UPDATE cases SET status = $1, decision = $2, decided_by = $3, decided_at = $4
		 WHERE id = $5 AND status = 'pending'
		 RETURNING `+caseColumns,
		string(d.Status), nullString(d.Decision), nullString(d.DecidedBy), nullString(d.DecidedAt), id)
	if errors.Is(err, sql.ErrNoRows) {
		var status string
		if err := s.db.GetContext(ctx, &status, `SELECT status FROM cases WHERE id = $1`, id); err != nil {
			return model.Case{}, mapErr(err, "case "+id)
		}
		return model.Case{}, fmt.Errorf("case %s is %s: %w", id, status, store.ErrConflict)
	}
	if err != nil {
		return model.Case{}, mapErr(err, "decide case "+id)
	}
	comments, err := s.caseComments(ctx, id)
	if err != nil {
		return model.Case{}, err
	}
	return row.toModel(comments), nil
}

// Ideas

func (s *Store) ListIdeas(ctx context.Context) ([]model.Idea, error) {
	var rows []ideaRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+ideaColumns+` FROM ideas ORDER BY timestamp DESC`); err != nil {
		return nil, mapErr(err, "list ideas")
	}
	out := make([]model.Idea, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *Store) CreateIdea(ctx context.Context, i model.Idea) (model.Idea, error) {
	var row ideaRow
	err := s.db.GetContext(ctx, &row,
		`INSERT INTO ideas (id, user_id, user_name, category, title, description, timestamp, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+ideaColumns,
		i.ID, i.UserID, nullString(i.UserName), string(i.Category), i.Title, i.Description, i.Timestamp, string(i.Status))
	if err != nil {
		return model.Idea{}, mapErr(err, "create idea")
	}
	return row.toModel(), nil
}

func (s *Store) UpdateIdeaStatus(ctx context.Context, id string, status model.IdeaStatus) (model.Idea, error) {
	var row ideaRow
	err := s.db.GetContext(ctx, &row,
		`UPDATE ideas SET status = $1 WHERE id = $2 RETURNING `+ideaColumns, string(status), id)
	if err != nil {
		return model.Idea{}, mapErr(err, "idea "+id)
	}
	return row.toModel(), nil
}
