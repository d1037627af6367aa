// Package seed holds the demo organization loaded into an empty store.
package seed

import (
	"math/rand"
	"time"

	"attendancehub/internal/model"
)

const (
	// AttendanceDays is how many days of history are generated, today included.
	AttendanceDays = 14
	// PresentProbability is the chance a generated record is marked present.
	PresentProbability = 0.8

	attendanceMarker = "John Discipline"
)

type Dataset struct {
	Companies     []model.Company
	Users         []model.User
	Members       []model.Member
	Attendance    []model.AttendanceRecord
	Announcements []model.Announcement
}

// Demo builds the demo dataset. Attendance covers the AttendanceDays days
// ending at now and draws presence from rnd.
func Demo(now time.Time, rnd *rand.Rand) Dataset {
	members := Members()
	return Dataset{
		Companies:     []model.Company{Company()},
		Users:         Users(),
		Members:       members,
		Attendance:    Attendance(now, rnd, members),
		Announcements: []model.Announcement{Announcement()},
	}
}

func Company() model.Company {
	return model.Company{
		ID:          "1",
		Name:        "Tech Innovation Hub",
		Email:       "admin@techhub.com",
		Phone:       "+1 (555) 123-4567",
		Type:        "Technology Organization",
		Description: "A community of tech enthusiasts and innovators",
		Location:    "San Francisco, CA",
		CreatedAt:   "2024-01-15T10:00:00",
	}
}

func Users() []model.User {
	return []model.User{
		{ID: "1", CompanyID: "1", Name: "Ellen CEO", Email: "ceo@techhub.com", Role: model.RoleCEO},
		{ID: "2", CompanyID: "1", Name: "Jane Committee", Email: "committee@techhub.com", Role: model.RoleCommittee},
		{ID: "3", CompanyID: "1", Name: "John Discipline", Email: "discipline@techhub.com", Role: model.RoleDiscipline},
		{ID: "4", CompanyID: "1", Name: "Mark Member", Email: "member@techhub.com", Role: model.RoleMember},
	}
}

func Members() []model.Member {
	return []model.Member{
		{ID: "1", CompanyID: "1", Name: "Alice Johnson", RegistrationNumber: "REG001", Department: "Engineering", JoinedYear: "2023"},
		{ID: "2", CompanyID: "1", Name: "Bob Smith", RegistrationNumber: "REG002", Department: "Marketing", JoinedYear: "2023"},
		{ID: "3", CompanyID: "1", Name: "Carol Williams", RegistrationNumber: "REG003", Department: "Sales", JoinedYear: "2022"},
		{ID: "4", CompanyID: "1", Name: "David Brown", RegistrationNumber: "REG004", Department: "Engineering", JoinedYear: "2023"},
		{ID: "5", CompanyID: "1", Name: "Emma Davis", RegistrationNumber: "REG005", Department: "Operations", JoinedYear: "2021"},
		{ID: "6", CompanyID: "1", Name: "Frank Miller", RegistrationNumber: "REG006", Department: "Marketing", JoinedYear: "2022"},
		{ID: "7", CompanyID: "1", Name: "Grace Wilson", RegistrationNumber: "REG007", Department: "Design", JoinedYear: "2023"},
		{ID: "8", CompanyID: "1", Name: "Henry Moore", RegistrationNumber: "REG008", Department: "Sales", JoinedYear: "2022"},
		{ID: "9", CompanyID: "1", Name: "Isabel Taylor", RegistrationNumber: "REG009", Department: "Engineering", JoinedYear: "2021"},
		{ID: "10", CompanyID: "1", Name: "Jack Anderson", RegistrationNumber: "REG010", Department: "Operations", JoinedYear: "2023"},
	}
}

func Attendance(now time.Time, rnd *rand.Rand, members []model.Member) []model.AttendanceRecord {
	out := make([]model.AttendanceRecord, 0, AttendanceDays*len(members))
	for i := 0; i < AttendanceDays; i++ {
		day := model.Date(now.AddDate(0, 0, -i))
		for _, m := range members {
			status := model.AttendanceAbsent
			if rnd.Float64() < PresentProbability {
				status = model.AttendancePresent
			}
			out = append(out, model.AttendanceRecord{
				ID:        model.AttendanceID(m.ID, day),
				MemberID:  m.ID,
				Date:      day,
				Status:    status,
				MarkedBy:  attendanceMarker,
				Timestamp: day + "T09:00:00",
			})
		}
	}
	return out
}

func Announcement() model.Announcement {
	return model.Announcement{
		ID:            "1",
		CommitteeID:   "2",
		CommitteeName: "Jane Committee",
		Title:         "Welcome to New Semester",
		Content:       "We are excited to welcome everyone to the new academic semester.",
		Category:      model.CategoryGeneral,
		Timestamp:     "2024-11-10T09:00:00",
		Comments:      []model.Comment{},
	}
}
