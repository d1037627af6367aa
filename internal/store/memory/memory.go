package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"attendancehub/internal/model"
	"attendancehub/internal/seed"
	"attendancehub/internal/store"
)

// Store keeps every collection in process memory. It is safe for concurrent
// use; state is lost on restart and is not shared between processes.
type Store struct {
	mu            sync.RWMutex
	companies     []model.Company
	users         []model.User
	members       []model.Member
	attendance    []model.AttendanceRecord
	announcements []model.Announcement
	permissions   []model.PermissionRequest
	cases         []model.Case
	ideas         []model.Idea
}

var _ store.Store = (*Store)(nil)

// New creates a store pre-loaded with data. Pass an empty dataset for a blank
// store.
func New(data seed.Dataset) *Store {
	s := &Store{
		companies:  append([]model.Company(nil), data.Companies...),
		users:      append([]model.User(nil), data.Users...),
		members:    append([]model.Member(nil), data.Members...),
		attendance: append([]model.AttendanceRecord(nil), data.Attendance...),
	}
	for _, ann := range data.Announcements {
		s.announcements = append(s.announcements, cloneAnnouncement(ann))
	}
	return s
}

func (s *Store) Mode() store.Mode { return store.ModeMemory }

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// Companies -------------------------------------------------------------------

func (s *Store) ListCompanies(_ context.Context) ([]model.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]model.Company{}, s.companies...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (s *Store) CreateCompany(_ context.Context, company model.Company) (model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.companies = append(s.companies, company)
	return company, nil
}

// Users -----------------------------------------------------------------------

func (s *Store) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, fmt.Errorf("user %s: %w", email, store.ErrNotFound)
}

func (s *Store) ListUsers(_ context.Context, companyID string) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.User{}
	for _, u := range s.users {
		if companyID == "" || u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateUser(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return model.User{}, fmt.Errorf("user email %s: %w", user.Email, store.ErrConflict)
		}
	}
	s.users = append(s.users, user)
	return user, nil
}

func (s *Store) UpdateUserSuspension(_ context.Context, id string, suspended bool) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Suspended = suspended
			return s.users[i], nil
		}
	}
	return model.User{}, fmt.Errorf("user %s: %w", id, store.ErrNotFound)
}

// Members ---------------------------------------------------------------------

func (s *Store) ListMembers(_ context.Context, companyID string) ([]model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Member{}
	for _, m := range s.members {
		if companyID == "" || m.CompanyID == companyID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateMember(_ context.Context, member model.Member) (model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.members {
		if m.RegistrationNumber == member.RegistrationNumber {
			return model.Member{}, fmt.Errorf("registration number %s: %w", member.RegistrationNumber, store.ErrConflict)
		}
	}
	s.members = append(s.members, member)
	return member, nil
}

func (s *Store) UpdateMemberSuspension(_ context.Context, id string, suspended bool, reason string) (model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.members {
		if s.members[i].ID == id {
			s.members[i].Suspended = suspended
			s.members[i].SuspensionReason = reason
			return s.members[i], nil
		}
	}
	return model.Member{}, fmt.Errorf("member %s: %w", id, store.ErrNotFound)
}

// Attendance ------------------------------------------------------------------

func (s *Store) ListAttendance(_ context.Context, filter store.AttendanceFilter) ([]model.MemberAttendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[string]model.Member, len(s.members))
	for _, m := range s.members {
		byID[m.ID] = m
	}

	out := []model.MemberAttendance{}
	for _, rec := range s.attendance {
		if filter.Date != "" && rec.Date != filter.Date {
			continue
		}
		if filter.MemberID != "" && rec.MemberID != filter.MemberID {
			continue
		}
		row := model.MemberAttendance{AttendanceRecord: rec}
		if m, ok := byID[rec.MemberID]; ok {
			row.MemberName = m.Name
			row.RegistrationNumber = m.RegistrationNumber
			row.Department = m.Department
		} else {
			row.MemberName = model.MemberPlaceholder(rec.MemberID)
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].MemberID < out[j].MemberID
	})
	return out, nil
}

func (s *Store) ReplaceAttendanceDay(_ context.Context, date string, records []model.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.attendance[:0:0]
	for _, rec := range s.attendance {
		if rec.Date != date {
			kept = append(kept, rec)
		}
	}
	s.attendance = append(kept, records...)
	return nil
}

// Announcements ---------------------------------------------------------------

func (s *Store) ListAnnouncements(_ context.Context) ([]model.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Announcement, 0, len(s.announcements))
	for _, ann := range s.announcements {
		out = append(out, cloneAnnouncement(ann))
	}
	return out, nil
}

func (s *Store) CreateAnnouncement(_ context.Context, ann model.Announcement) (model.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ann = cloneAnnouncement(ann)
	s.announcements = append([]model.Announcement{ann}, s.announcements...)
	return cloneAnnouncement(ann), nil
}

func (s *Store) AddAnnouncementComment(_ context.Context, announcementID string, comment model.Comment) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.announcements {
		if s.announcements[i].ID == announcementID {
			s.announcements[i].Comments = append(s.announcements[i].Comments, comment)
			return comment, nil
		}
	}
	return model.Comment{}, fmt.Errorf("announcement %s: %w", announcementID, store.ErrNotFound)
}

// Permissions -----------------------------------------------------------------

func (s *Store) ListPermissions(_ context.Context) ([]model.PermissionRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.PermissionRequest{}, s.permissions...), nil
}

func (s *Store) CreatePermission(_ context.Context, req model.PermissionRequest) (model.PermissionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.permissions = append([]model.PermissionRequest{req}, s.permissions...)
	return req, nil
}

func (s *Store) UpdatePermissionStatus(_ context.Context, id string, status model.PermissionStatus) (model.PermissionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.permissions {
		if s.permissions[i].ID == id {
			s.permissions[i].Status = status
			return s.permissions[i], nil
		}
	}
	return model.PermissionRequest{}, fmt.Errorf("permission %s: %w", id, store.ErrNotFound)
}

// Cases -----------------------------------------------------------------------

func (s *Store) ListCases(_ context.Context, companyID string) ([]model.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Case{}
	for _, c := range s.cases {
		if companyID == "" || c.CompanyID == companyID {
			out = append(out, cloneCase(c))
		}
	}
	return out, nil
}

func (s *Store) GetCase(_ context.Context, id string) (model.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.caseIndexLocked(id); i >= 0 {
		return cloneCase(s.cases[i]), nil
	}
	return model.Case{}, fmt.Errorf("case %s: %w", id, store.ErrNotFound)
}

func (s *Store) CreateCase(_ context.Context, c model.Case) (model.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c = cloneCase(c)
	s.cases = append([]model.Case{c}, s.cases...)
	return cloneCase(c), nil
}

func (s *Store) AddCaseComment(_ context.Context, caseID string, comment model.Comment) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.caseIndexLocked(caseID)
	if i < 0 {
		return model.Comment{}, fmt.Errorf("case %s: %w", caseID, store.ErrNotFound)
	}
	s.cases[i].Comments = append(s.cases[i].Comments, comment)
	return comment, nil
}

func (s *Store) DecideCase(_ context.Context, id string, decision store.CaseDecision) (model.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.caseIndexLocked(id)
	if i < 0 {
		return model.Case{}, fmt.Errorf("case %s: %w", id, store.ErrNotFound)
	}
	if s.cases[i].Status.Terminal() {
		return model.Case{}, fmt.Errorf("case %s is %s: %w", id, s.cases[i].Status, store.ErrConflict)
	}
	s.cases[i].Status = decision.Status
	s.cases[i].Decision = decision.Decision
	s.cases[i].DecidedBy = decision.DecidedBy
	s.cases[i].DecidedAt = decision.DecidedAt
	return cloneCase(s.cases[i]), nil
}

func (s *Store) caseIndexLocked(id string) int {
	for i := range s.cases {
		if s.cases[i].ID == id {
			return i
		}
	}
	return -1
}

// Ideas -----------------------------------------------------------------------

func (s *Store) ListIdeas(_ context.Context) ([]model.Idea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.Idea{}, s.ideas...), nil
}

func (s *Store) CreateIdea(_ context.Context, idea model.Idea) (model.Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ideas = append([]model.Idea{idea}, s.ideas...)
	return idea, nil
}

func (s *Store) UpdateIdeaStatus(_ context.Context, id string, status model.IdeaStatus) (model.Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.ideas {
		if s.ideas[i].ID == id {
			s.ideas[i].Status = status
			return s.ideas[i], nil
		}
	}
	return model.Idea{}, fmt.Errorf("idea %s: %w", id, store.ErrNotFound)
}

// helpers ---------------------------------------------------------------------

func cloneComments(in []model.Comment) []model.Comment {
	return append([]model.Comment{}, in...)
}

func cloneAnnouncement(ann model.Announcement) model.Announcement {
	ann.Comments = cloneComments(ann.Comments)
	return ann
}

func cloneCase(c model.Case) model.Case {
	c.Comments = cloneComments(c.Comments)
	return c
}
