package model

type Role string

const (
	RoleCEO        Role = "ceo"
	RoleDiscipline Role = "discipline"
	RoleCommittee  Role = "committee"
	RoleMember     Role = "member"
)

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleCEO, RoleDiscipline, RoleCommittee, RoleMember:
		return Role(value), true
	}
	return "", false
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// NormalizeAttendanceStatus keeps the stored domain two-valued: anything that
// is not exactly "present" is recorded as absent.
func NormalizeAttendanceStatus(value string) AttendanceStatus {
	if AttendanceStatus(value) == AttendancePresent {
		return AttendancePresent
	}
	return AttendanceAbsent
}

type CaseStatus string

const (
	CasePending   CaseStatus = "pending"
	CaseSuspended CaseStatus = "suspended"
	CaseForgiven  CaseStatus = "forgiven"
)

// ParseCaseDecision is intentionally permissive: unrecognized decisions
// resolve to pending instead of failing the request.
func ParseCaseDecision(value string) CaseStatus {
	switch CaseStatus(value) {
	case CaseSuspended:
		return CaseSuspended
	case CaseForgiven:
		return CaseForgiven
	}
	return CasePending
}

func (s CaseStatus) Terminal() bool {
	return s == CaseSuspended || s == CaseForgiven
}

type PermissionStatus string

const (
	PermissionPending  PermissionStatus = "pending"
	PermissionApproved PermissionStatus = "approved"
	PermissionRejected PermissionStatus = "rejected"
)

// ParsePermissionStatus mirrors ParseCaseDecision: unknown input resets the
// request to pending.
func ParsePermissionStatus(value string) PermissionStatus {
	switch PermissionStatus(value) {
	case PermissionApproved:
		return PermissionApproved
	case PermissionRejected:
		return PermissionRejected
	}
	return PermissionPending
}

type IdeaStatus string

const (
	IdeaPending  IdeaStatus = "pending"
	IdeaReviewed IdeaStatus = "reviewed"
	IdeaResolved IdeaStatus = "resolved"
)

func ParseIdeaStatus(value string) (IdeaStatus, bool) {
	switch IdeaStatus(value) {
	case IdeaPending, IdeaReviewed, IdeaResolved:
		return IdeaStatus(value), true
	}
	return "", false
}

type IdeaCategory string

const (
	IdeaSuggestion IdeaCategory = "suggestion"
	IdeaComplaint  IdeaCategory = "complaint"
	IdeaQuestion   IdeaCategory = "question"
	IdeaFeedback   IdeaCategory = "feedback"
)

// ParseIdeaCategory defaults an empty category to suggestion.
func ParseIdeaCategory(value string) (IdeaCategory, bool) {
	switch IdeaCategory(value) {
	case "":
		return IdeaSuggestion, true
	case IdeaSuggestion, IdeaComplaint, IdeaQuestion, IdeaFeedback:
		return IdeaCategory(value), true
	}
	return "", false
}

type AnnouncementCategory string

const (
	CategoryGeneral  AnnouncementCategory = "general"
	CategoryUrgent   AnnouncementCategory = "urgent"
	CategoryEvent    AnnouncementCategory = "event"
	CategoryAcademic AnnouncementCategory = "academic"
)

// ParseAnnouncementCategory defaults an empty category to general.
func ParseAnnouncementCategory(value string) (AnnouncementCategory, bool) {
	switch AnnouncementCategory(value) {
	case "":
		return CategoryGeneral, true
	case CategoryGeneral, CategoryUrgent, CategoryEvent, CategoryAcademic:
		return AnnouncementCategory(value), true
	}
	return "", false
}
