package seed

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendancehub/internal/model"
)

func TestDemoDatasetShape(t *testing.T) {
	now := time.Date(2024, 11, 10, 12, 0, 0, 0, time.UTC)
	ds := Demo(now, rand.New(rand.NewSource(1)))

	require.Len(t, ds.Companies, 1)
	require.Len(t, ds.Users, 4)
	require.Len(t, ds.Members, 10)
	require.Len(t, ds.Announcements, 1)
	require.Len(t, ds.Attendance, AttendanceDays*10)

	assert.Equal(t, "2024-11-10", ds.Attendance[0].Date)
	assert.Equal(t, "2024-10-28", ds.Attendance[len(ds.Attendance)-1].Date)

	ids := map[string]bool{}
	for _, rec := range ds.Attendance {
		assert.False(t, ids[rec.ID], "duplicate attendance id %s", rec.ID)
		ids[rec.ID] = true
		assert.Equal(t, model.AttendanceID(rec.MemberID, rec.Date), rec.ID)
		assert.Contains(t, []model.AttendanceStatus{model.AttendancePresent, model.AttendanceAbsent}, rec.Status)
		assert.Equal(t, rec.Date+"T09:00:00", rec.Timestamp)
	}
}

func TestDemoUsersHaveNoPasswords(t *testing.T) {
	emails := map[string]bool{}
	for _, u := range Users() {
		assert.False(t, u.HasPassword())
		assert.False(t, emails[u.Email])
		emails[u.Email] = true
	}
	assert.True(t, emails["member@techhub.com"])
}

func TestAttendanceIsDeterministicForSource(t *testing.T) {
	now := time.Date(2024, 11, 10, 0, 0, 0, 0, time.UTC)
	a := Attendance(now, rand.New(rand.NewSource(42)), Members())
	b := Attendance(now, rand.New(rand.NewSource(42)), Members())
	assert.Equal(t, a, b)
}
