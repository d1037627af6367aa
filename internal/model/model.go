package model

import "time"

// TimestampLayout matches the millisecond ISO-8601 strings stored in every
// timestamp column.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// DateLayout is the calendar-day key used by attendance records.
const DateLayout = "2006-01-02"

func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func Date(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Location    string `json:"location"`
	CreatedAt   string `json:"createdAt"`
}

type User struct {
	ID           string `json:"id"`
	CompanyID    string `json:"companyId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"-"`
	Suspended    bool   `json:"suspended"`
}

// HasPassword reports whether login for this user checks a password at all.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

type Member struct {
	ID                 string `json:"id"`
	CompanyID          string `json:"companyId"`
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber"`
	Department         string `json:"department"`
	JoinedYear         string `json:"joinedYear"`
	Email              string `json:"email,omitempty"`
	Suspended          bool   `json:"suspended"`
	SuspensionReason   string `json:"suspensionReason,omitempty"`
}

type AttendanceRecord struct {
	ID        string           `json:"id"`
	MemberID  string           `json:"memberId"`
	Date      string           `json:"date"`
	Status    AttendanceStatus `json:"status"`
	MarkedBy  string           `json:"markedBy"`
	Timestamp string           `json:"timestamp"`
}

// MemberAttendance is a stored record joined with its member. The member
// fields are always present; an unknown member leaves them empty apart from
// the placeholder name.
type MemberAttendance struct {
	AttendanceRecord
	MemberName         string `json:"memberName"`
	RegistrationNumber string `json:"registrationNumber"`
	Department         string `json:"department"`
}

// AttendanceID is the identity of a member's record for one day.
func AttendanceID(memberID, date string) string {
	return memberID + "-" + date
}

// MemberPlaceholder labels attendance rows whose member is unknown to the store.
func MemberPlaceholder(memberID string) string {
	return "Member " + memberID
}

type Comment struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type Announcement struct {
	ID            string               `json:"id"`
	CommitteeID   string               `json:"committeeId"`
	CommitteeName string               `json:"committeeName"`
	Title         string               `json:"title"`
	Content       string               `json:"content"`
	Category      AnnouncementCategory `json:"category"`
	Timestamp     string               `json:"timestamp"`
	Comments      []Comment            `json:"comments"`
}

type PermissionRequest struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	UserName  string           `json:"userName"`
	Reason    string           `json:"reason"`
	Date      string           `json:"date"`
	Timestamp string           `json:"timestamp"`
	Status    PermissionStatus `json:"status"`
}

type Case struct {
	ID           string     `json:"id"`
	CompanyID    string     `json:"companyId"`
	ReportedBy   string     `json:"reportedBy"`
	ReporterName string     `json:"reporterName"`
	ReporterRole string     `json:"reporterRole"`
	MemberID     string     `json:"memberId"`
	MemberName   string     `json:"memberName"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Date         string     `json:"date"`
	Timestamp    string     `json:"timestamp"`
	Status       CaseStatus `json:"status"`
	Decision     string     `json:"decision,omitempty"`
	DecidedBy    string     `json:"decidedBy,omitempty"`
	DecidedAt    string     `json:"decidedAt,omitempty"`
	Comments     []Comment  `json:"comments"`
}

type Idea struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	UserName    string       `json:"userName"`
	Category    IdeaCategory `json:"category"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Timestamp   string       `json:"timestamp"`
	Status      IdeaStatus   `json:"status"`
}
