package postgres

import (
	"database/sql"

	"attendancehub/internal/model"
)

// Row structs mirror the snake_case table layout. Each one owns the single
// conversion into its camelCase API model.

const (
	companyColumns      = "id, name, email, phone, type, description, location, created_at"
	userColumns         = "id, company_id, name, email, role, password_hash, suspended"
	memberColumns       = "id, company_id, name, registration_number, department, joined_year, email, suspended, suspension_reason"
	announcementColumns = "id, committee_id, committee_name, title, content, category, timestamp"
	permissionColumns   = "id, user_id, user_name, reason, date, timestamp, status"
	caseColumns         = "id, company_id, reported_by, reporter_name, reporter_role, member_id, member_name, title, description, date, timestamp, status, decision, decided_by, decided_at"
	ideaColumns         = "id, user_id, user_name, category, title, description, timestamp, status"
)

type companyRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Email       string         `db:"email"`
	Phone       sql.NullString `db:"phone"`
	Type        sql.NullString `db:"type"`
	Description sql.NullString `db:"description"`
	Location    sql.NullString `db:"location"`
	CreatedAt   string         `db:"created_at"`
}

func (r companyRow) toModel() model.Company {
	return model.Company{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone.String,
		Type:        r.Type.String,
		Description: r.Description.String,
		Location:    r.Location.String,
		CreatedAt:   r.CreatedAt,
	}
}

type userRow struct {
	ID           string         `db:"id"`
	CompanyID    string         `db:"company_id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	Role         string         `db:"role"`
	PasswordHash sql.NullString `db:"password_hash"`
	Suspended    sql.NullBool   `db:"suspended"`
}

func (r userRow) toModel() model.User {
	return model.User{
		ID:           r.ID,
		CompanyID:    r.CompanyID,
		Name:         r.Name,
		Email:        r.Email,
		Role:         model.Role(r.Role),
		PasswordHash: r.PasswordHash.String,
		Suspended:    r.Suspended.Bool,
	}
}

type memberRow struct {
	ID                 string         `db:"id"`
	CompanyID          string         `db:"company_id"`
	Name               string         `db:"name"`
	RegistrationNumber string         `db:"registration_number"`
	Department         sql.NullString `db:"department"`
	JoinedYear         sql.NullString `db:"joined_year"`
	Email              sql.NullString `db:"email"`
	Suspended          sql.NullBool   `db:"suspended"`
	SuspensionReason   sql.NullString `db:"suspension_reason"`
}

func (r memberRow) toModel() model.Member {
	return model.Member{
		ID:                 r.ID,
		CompanyID:          r.CompanyID,
		Name:               r.Name,
		RegistrationNumber: r.RegistrationNumber,
		Department:         r.Department.String,
		JoinedYear:         r.JoinedYear.String,
		Email:              r.Email.String,
		Suspended:          r.Suspended.Bool,
		SuspensionReason:   r.SuspensionReason.String,
	}
}

type attendanceRow struct {
	ID                 string         `db:"id"`
	MemberID           string         `db:"member_id"`
	Date               string         `db:"date"`
	Status             string         `db:"status"`
	MarkedBy           sql.NullString `db:"marked_by"`
	Timestamp          string         `db:"timestamp"`
	MemberName         sql.NullString `db:"member_name"`
	RegistrationNumber sql.NullString `db:"registration_number"`
	Department         sql.NullString `db:"department"`
}

func (r attendanceRow) toModel() model.MemberAttendance {
	name := r.MemberName.String
	if name == "" {
		name = model.MemberPlaceholder(r.MemberID)
	}
	return model.MemberAttendance{
		AttendanceRecord: model.AttendanceRecord{
			ID:        r.ID,
			MemberID:  r.MemberID,
			Date:      r.Date,
			Status:    model.AttendanceStatus(r.Status),
			MarkedBy:  r.MarkedBy.String,
			Timestamp: r.Timestamp,
		},
		MemberName:         name,
		RegistrationNumber: r.RegistrationNumber.String,
		Department:         r.Department.String,
	}
}

type commentRow struct {
	ID        string         `db:"id"`
	ParentID  string         `db:"parent_id"`
	UserID    sql.NullString `db:"user_id"`
	UserName  sql.NullString `db:"user_name"`
	Content   string         `db:"content"`
	Timestamp string         `db:"timestamp"`
}

func (r commentRow) toModel() model.Comment {
	return model.Comment{
		ID:        r.ID,
		UserID:    r.UserID.String,
		UserName:  r.UserName.String,
		Content:   r.Content,
		Timestamp: r.Timestamp,
	}
}

// groupComments buckets comment rows by parent id, preserving row order.
func groupComments(rows []commentRow) map[string][]model.Comment {
	out := make(map[string][]model.Comment)
	for _, r := range rows {
		out[r.ParentID] = append(out[r.ParentID], r.toModel())
	}
	return out
}

type announcementRow struct {
	ID            string         `db:"id"`
	CommitteeID   string         `db:"committee_id"`
	CommitteeName sql.NullString `db:"committee_name"`
	Title         string         `db:"title"`
	Content       string         `db:"content"`
	Category      sql.NullString `db:"category"`
	Timestamp     string         `db:"timestamp"`
}

func (r announcementRow) toModel(comments []model.Comment) model.Announcement {
	category := model.AnnouncementCategory(r.Category.String)
	if category == "" {
		category = model.CategoryGeneral
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return model.Announcement{
		ID:            r.ID,
		CommitteeID:   r.CommitteeID,
		CommitteeName: r.CommitteeName.String,
		Title:         r.Title,
		Content:       r.Content,
		Category:      category,
		Timestamp:     r.Timestamp,
		Comments:      comments,
	}
}

type permissionRow struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	UserName  sql.NullString `db:"user_name"`
	Reason    string         `db:"reason"`
	Date      string         `db:"date"`
	Timestamp string         `db:"timestamp"`
	Status    string         `db:"status"`
}

func (r permissionRow) toModel() model.PermissionRequest {
	return model.PermissionRequest{
		ID:        r.ID,
		UserID:    r.UserID,
		UserName:  r.UserName.String,
		Reason:    r.Reason,
		Date:      r.Date,
		Timestamp: r.Timestamp,
		Status:    model.PermissionStatus(r.Status),
	}
}

type caseRow struct {
	ID           string         `db:"id"`
	CompanyID    string         `db:"company_id"`
	ReportedBy   string         `db:"reported_by"`
	ReporterName sql.NullString `db:"reporter_name"`
	ReporterRole sql.NullString `db:"reporter_role"`
	MemberID     string         `db:"member_id"`
	MemberName   sql.NullString `db:"member_name"`
	Title        string         `db:"title"`
	Description  string         `db:"description"`
	Date         string         `db:"date"`
	Timestamp    string         `db:"timestamp"`
	Status       string         `db:"status"`
	Decision     sql.NullString `db:"decision"`
	DecidedBy    sql.NullString `db:"decided_by"`
	DecidedAt    sql.NullString `db:"decided_at"`
}

func (r caseRow) toModel(comments []model.Comment) model.Case {
	if comments == nil {
		comments = []model.Comment{}
	}
	return model.Case{
		ID:           r.ID,
		CompanyID:    r.CompanyID,
		ReportedBy:   r.ReportedBy,
		ReporterName: r.ReporterName.String,
		ReporterRole: r.ReporterRole.String,
		MemberID:     r.MemberID,
		MemberName:   r.MemberName.String,
		Title:        r.Title,
		Description:  r.Description,
		Date:         r.Date,
		Timestamp:    r.Timestamp,
		Status:       model.CaseStatus(r.Status),
		Decision:     r.Decision.String,
		DecidedBy:    r.DecidedBy.String,
		DecidedAt:    r.DecidedAt.String,
		Comments:     comments,
	}
}

type ideaRow struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	UserName    sql.NullString `db:"user_name"`
	Category    sql.NullString `db:"category"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Timestamp   string         `db:"timestamp"`
	Status      string         `db:"status"`
}

func (r ideaRow) toModel() model.Idea {
	category := model.IdeaCategory(r.Category.String)
	if category == "" {
		category = model.IdeaSuggestion
	}
	return model.Idea{
		ID:          r.ID,
		UserID:      r.UserID,
		UserName:    r.UserName.String,
		Category:    category,
		Title:       r.Title,
		Description: r.Description,
		Timestamp:   r.Timestamp,
		Status:      model.IdeaStatus(r.Status),
	}
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
