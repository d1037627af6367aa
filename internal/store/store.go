// Package store defines the persistence contract shared by the postgres and
// in-memory backends.
package store

import (
	"context"
	"errors"

	"attendancehub/internal/model"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

type Mode string

const (
	ModePostgres Mode = "postgres"
	ModeMemory   Mode = "memory"
)

type AttendanceFilter struct {
	Date     string
	MemberID string
}

type CaseDecision struct {
	Status    model.CaseStatus
	Decision  string
	DecidedBy string
	DecidedAt string
}

type CompanyStore interface {
	ListCompanies(ctx context.Context) ([]model.Company, error)
	CreateCompany(ctx context.Context, company model.Company) (model.Company, error)
}

// UserStore enforces email uniqueness: CreateUser returns ErrConflict for a
// duplicate address.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	ListUsers(ctx context.Context, companyID string) ([]model.User, error)
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	UpdateUserSuspension(ctx context.Context, id string, suspended bool) (model.User, error)
}

// MemberStore enforces registration number uniqueness.
type MemberStore interface {
	ListMembers(ctx context.Context, companyID string) ([]model.Member, error)
	CreateMember(ctx context.Context, member model.Member) (model.Member, error)
	UpdateMemberSuspension(ctx context.Context, id string, suspended bool, reason string) (model.Member, error)
}

type AttendanceStore interface {
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]model.MemberAttendance, error)
	// ReplaceAttendanceDay removes every record dated date and stores records
	// in their place. Either all of records are stored or none are.
	ReplaceAttendanceDay(ctx context.Context, date string, records []model.AttendanceRecord) error
}

type AnnouncementStore interface {
	ListAnnouncements(ctx context.Context) ([]model.Announcement, error)
	CreateAnnouncement(ctx context.Context, ann model.Announcement) (model.Announcement, error)
	AddAnnouncementComment(ctx context.Context, announcementID string, comment model.Comment) (model.Comment, error)
}

type PermissionStore interface {
	ListPermissions(ctx context.Context) ([]model.PermissionRequest, error)
	CreatePermission(ctx context.Context, req model.PermissionRequest) (model.PermissionRequest, error)
	UpdatePermissionStatus(ctx context.Context, id string, status model.PermissionStatus) (model.PermissionRequest, error)
}

type CaseStore interface {
	ListCases(ctx context.Context, companyID string) ([]model.Case, error)
	GetCase(ctx context.Context, id string) (model.Case, error)
	CreateCase(ctx context.Context, c model.Case) (model.Case, error)
	AddCaseComment(ctx context.Context, caseID string, comment model.Comment) (model.Comment, error)
	// DecideCase applies decision only while the case is pending. A case that
	// already reached a terminal status yields ErrConflict.
	DecideCase(ctx context.Context, id string, decision CaseDecision) (model.Case, error)
}

type IdeaStore interface {
	ListIdeas(ctx context.Context) ([]model.Idea, error)
	CreateIdea(ctx context.Context, idea model.Idea) (model.Idea, error)
	UpdateIdeaStatus(ctx context.Context, id string, status model.IdeaStatus) (model.Idea, error)
}

type Store interface {
	CompanyStore
	UserStore
	MemberStore
	AttendanceStore
	AnnouncementStore
	PermissionStore
	CaseStore
	IdeaStore

	Mode() Mode
	Ping(ctx context.Context) error
	Close() error
}
