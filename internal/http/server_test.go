package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"attendancehub/internal/auth"
	"attendancehub/internal/logger"
	"attendancehub/internal/metrics"
	"attendancehub/internal/model"
	"attendancehub/internal/operations"
	"attendancehub/internal/seed"
	"attendancehub/internal/store"
	"attendancehub/internal/store/memory"
)

var testOrigins = []string{"http://localhost:3000", "http://localhost:3002", "http://localhost:5173"}

func newTestServer(t *testing.T, st store.Store) *httptest.Server {
	t.Helper()
	m := metrics.New()
	svc := operations.New(st, auth.NewIssuer("test-secret", "test-issuer", time.Minute), operations.WithRecorder(m))
	app := httptest.NewServer(NewServer(svc, m, logger.Discard(), testOrigins).Router())
	t.Cleanup(app.Close)
	return app
}

func seededServer(t *testing.T) *httptest.Server {
	t.Helper()
	now := time.Date(2024, 11, 10, 8, 0, 0, 0, time.UTC)
	return newTestServer(t, memory.New(seed.Demo(now, rand.New(rand.NewSource(3)))))
}

func doReq(t *testing.T, method, url string, body interface{}) (int, string) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode error: %v", err)
		}
	}
	return doRaw(t, method, url, &buf)
}

func doRaw(t *testing.T, method, url string, body io.Reader) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestHealth(t *testing.T) {
	app := seededServer(t)

	status, body := doReq(t, http.MethodGet, app.URL+"/health", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, gjson.Get(body, "ok").Bool())
	assert.Equal(t, "memory", gjson.Get(body, "storage").String())
	assert.NotEmpty(t, gjson.Get(body, "timestamp").String())
}

func TestLogin(t *testing.T) {
	app := seededServer(t)

	status, body := doReq(t, http.MethodPost, app.URL+"/login", map[string]string{
		"email":    "member@techhub.com",
		"password": "literally-anything",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "member", gjson.Get(body, "user.role").String())
	assert.Equal(t, "1", gjson.Get(body, "user.companyId").String())
	assert.False(t, gjson.Get(body, "user.suspended").Bool())
	assert.NotEmpty(t, gjson.Get(body, "token").String())
	assert.False(t, gjson.Get(body, "user.password").Exists())

	token := gjson.Get(body, "token").String()
	claims := &auth.Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "4", claims.UserID)

	status, body = doReq(t, http.MethodPost, app.URL+"/login", map[string]string{"password": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "email_required", gjson.Get(body, "error").String())

	status, body = doRaw(t, http.MethodPost, app.URL+"/login", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "email_required", gjson.Get(body, "error").String())

	status, body = doReq(t, http.MethodPost, app.URL+"/login", map[string]string{"email": "ghost@techhub.com"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "user_not_found", gjson.Get(body, "error").String())

	status, body = doRaw(t, http.MethodPost, app.URL+"/login", strings.NewReader("{not json"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_payload", gjson.Get(body, "error").String())
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app := seededServer(t)

	status, body := doReq(t, http.MethodPost, app.URL+"/users", map[string]string{
		"companyId": "1",
		"name":      "Pat Committee",
		"email":     "pat@techhub.com",
		"role":      "committee",
		"password":  "s3cret",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.False(t, gjson.Get(body, "password").Exists())
	assert.False(t, gjson.Get(body, "passwordHash").Exists())

	status, body = doReq(t, http.MethodPost, app.URL+"/login", map[string]string{"email": "pat@techhub.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid_credentials", gjson.Get(body, "error").String())

	status, _ = doReq(t, http.MethodPost, app.URL+"/login", map[string]string{"email": "pat@techhub.com", "password": "s3cret"})
	assert.Equal(t, http.StatusOK, status)

	status, body = doReq(t, http.MethodPost, app.URL+"/users", map[string]string{
		"companyId": "1", "name": "Again", "email": "pat@techhub.com", "role": "member",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "conflict", gjson.Get(body, "error").String())
}

func TestAttendanceSaveAndQuery(t *testing.T) {
	app := seededServer(t)

	payload := map[string]interface{}{
		"date":     "2024-11-10",
		"markedBy": "John Discipline",
		"records": []map[string]string{
			{"memberId": "1", "status": "present"},
			{"memberId": "2", "status": "excused"},
		},
	}
	status, body := doReq(t, http.MethodPost, app.URL+"/attendance", payload)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, int64(2), gjson.Get(body, "#").Int())
	assert.Equal(t, "2-2024-11-10", gjson.Get(body, "1.id").String())
	assert.Equal(t, "absent", gjson.Get(body, "1.status").String())
	assert.Equal(t, gjson.Get(body, "0.timestamp").String(), gjson.Get(body, "1.timestamp").String())

	status, _ = doReq(t, http.MethodPost, app.URL+"/attendance", payload)
	require.Equal(t, http.StatusCreated, status)

	status, body = doReq(t, http.MethodGet, app.URL+"/attendance?date=2024-11-10", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(2), gjson.Get(body, "#").Int())
	assert.Equal(t, "Alice Johnson", gjson.Get(body, "0.memberName").String())
	assert.Equal(t, "REG001", gjson.Get(body, "0.registrationNumber").String())
	assert.Equal(t, "Engineering", gjson.Get(body, "0.department").String())

	status, body = doReq(t, http.MethodGet, app.URL+"/attendance?memberId=3&date=2024-11-09", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), gjson.Get(body, "#").Int())
	assert.Equal(t, "3-2024-11-09", gjson.Get(body, "0.id").String())

	status, body = doReq(t, http.MethodPost, app.URL+"/attendance", map[string]interface{}{"date": "2024-11-10", "records": "all"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_payload", gjson.Get(body, "error").String())

	status, _ = doReq(t, http.MethodPost, app.URL+"/attendance", map[string]interface{}{"records": []string{}})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAttendanceUnknownMemberKeepsMemberFields(t *testing.T) {
	app := seededServer(t)

	status, body := doReq(t, http.MethodPost, app.URL+"/attendance", map[string]interface{}{
		"date":    "2024-11-12",
		"records": []map[string]string{{"memberId": "ghost", "status": "present"}},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.False(t, gjson.Get(body, "0.registrationNumber").Exists())
	assert.False(t, gjson.Get(body, "0.memberName").Exists())
	assert.Equal(t, "", gjson.Get(body, "0.markedBy").String())

	status, body = doReq(t, http.MethodGet, app.URL+"/attendance?memberId=ghost", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(1), gjson.Get(body, "#").Int())
	assert.Equal(t, "Member ghost", gjson.Get(body, "0.memberName").String())
	reg := gjson.Get(body, "0.registrationNumber")
	dept := gjson.Get(body, "0.department")
	require.True(t, reg.Exists())
	require.True(t, dept.Exists())
	assert.Equal(t, "", reg.String())
	assert.Equal(t, "", dept.String())
}

func TestMembersAndUniqueness(t *testing.T) {
	app := seededServer(t)

	status, body := doReq(t, http.MethodGet, app.URL+"/members?companyId=1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(10), gjson.Get(body, "#").Int())
	assert.Equal(t, "Alice Johnson", gjson.Get(body, "0.name").String())

	status, body = doReq(t, http.MethodPost, app.URL+"/members", map[string]string{
		"companyId": "1", "name": "Kim Lee", "registrationNumber": "REG011", "department": "Design",
	})
	require.Equal(t, http.StatusCreated, status)
	id := gjson.Get(body, "id").String()
	assert.NotEmpty(t, id)

	status, body = doReq(t, http.MethodPost, app.URL+"/members", map[string]string{
		"companyId": "1", "name": "Kim Clone", "registrationNumber": "REG011",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "conflict", gjson.Get(body, "error").String())

	status, body = doReq(t, http.MethodPatch, app.URL+"/members/"+id, map[string]interface{}{
		"suspended": true, "suspensionReason": "Repeated absence",
	})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, gjson.Get(body, "suspended").Bool())
	assert.Equal(t, "Repeated absence", gjson.Get(body, "suspensionReason").String())

	status, _ = doReq(t, http.MethodPatch, app.URL+"/members/missing", map[string]interface{}{"suspended": true})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCaseDecisionFlow(t *testing.T) {
	app := seededServer(t)

	status, body := doReq(t, http.MethodPost, app.URL+"/cases", map[string]string{
		"companyId":    "1",
		"reportedBy":   "3",
		"reporterName": "John Discipline",
		"memberId":     "2",
		"memberName":   "Bob Smith",
		"title":        "Missed shifts",
		"description":  "Absent without notice",
		"date":         "2024-11-10",
	})
	require.Equal(t, http.StatusCreated, status)
	id := gjson.Get(body, "id").String()
	assert.Equal(t, "pending", gjson.Get(body, "status").String())
	assert.Equal(t, "discipline", gjson.Get(body, "reporterRole").String())

	status, _ = doReq(t, http.MethodPost, app.URL+"/cases/"+id+"/comments", map[string]string{
		"userId": "1", "userName": "Ellen CEO", "content": "Please review",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body = doReq(t, http.MethodPatch, app.URL+"/cases/"+id+"/decision", map[string]string{
		"decision": "suspended", "decisionText": "One week", "decidedBy": "Ellen CEO",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "suspended", gjson.Get(body, "status").String())
	assert.Equal(t, "One week", gjson.Get(body, "decision").String())
	assert.NotEmpty(t, gjson.Get(body, "decidedAt").String())

	status, body = doReq(t, http.MethodPatch, app.URL+"/cases/"+id+"/decision", map[string]string{"decision": "forgiven"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "already_decided", gjson.Get(body, "error").String())

	status, body = doReq(t, http.MethodGet, app.URL+"/cases?companyId=1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "suspended", gjson.Get(body, "0.status").String())
	assert.Equal(t, "Please review", gjson.Get(body, "0.comments.0.content").String())

	status, body = doReq(t, http.MethodPatch, app.URL+"/cases/missing/decision", map[string]string{"decision": "forgiven"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", gjson.Get(body, "error").String())

	status, _ = doReq(t, http.MethodPost, app.URL+"/cases", map[string]string{"companyId": "1"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPermissionWorkflow(t *testing.T) {
	app := seededServer(t)

	status, body := doReq(t, http.MethodPost, app.URL+"/permissions", map[string]string{
		"userId": "4", "userName": "Mark Member", "reason": "Family event", "date": "2024-11-15",
	})
	require.Equal(t, http.StatusCreated, status)
	id := gjson.Get(body, "id").String()
	assert.Equal(t, "pending", gjson.Get(body, "status").String())

	status, body = doReq(t, http.MethodPatch, app.URL+"/permissions/"+id, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "approved", gjson.Get(body, "status").String())

	status, body = doReq(t, http.MethodPatch, app.URL+"/permissions/"+id, map[string]string{"status": "whatever"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pending", gjson.Get(body, "status").String())

	status, body = doReq(t, http.MethodGet, app.URL+"/permissions", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Family event", gjson.Get(body, "0.reason").String())

	status, _ = doReq(t, http.MethodPatch, app.URL+"/permissions/missing", map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAnnouncementsAndIdeas(t *testing.T) {
	app := seededServer(t)

	status, body := doReq(t, http.MethodPost, app.URL+"/announcements", map[string]string{
		"committeeId": "2", "committeeName": "Jane Committee", "title": "Hackathon", "content": "Saturday", "category": "event",
	})
	require.Equal(t, http.StatusCreated, status)
	annID := gjson.Get(body, "id").String()

	status, _ = doReq(t, http.MethodPost, app.URL+"/announcements/"+annID+"/comments", map[string]string{"userId": "4", "content": "Count me in"})
	require.Equal(t, http.StatusCreated, status)

	status, body = doReq(t, http.MethodGet, app.URL+"/announcements", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(2), gjson.Get(body, "#").Int())
	assert.Equal(t, "Count me in", gjson.Get(body, "0.comments.0.content").String())
	assert.Equal(t, int64(0), gjson.Get(body, "1.comments.#").Int())

	status, _ = doReq(t, http.MethodPost, app.URL+"/announcements/missing/comments", map[string]string{"content": "?"})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = doReq(t, http.MethodPost, app.URL+"/ideas", map[string]string{"userId": "4", "title": "Standing desks", "description": "Please"})
	require.Equal(t, http.StatusCreated, status)
	ideaID := gjson.Get(body, "id").String()
	assert.Equal(t, "suggestion", gjson.Get(body, "category").String())

	status, body = doReq(t, http.MethodPatch, app.URL+"/ideas/"+ideaID, map[string]string{"status": "resolved"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "resolved", gjson.Get(body, "status").String())

	status, body = doReq(t, http.MethodPatch, app.URL+"/ideas/"+ideaID, map[string]string{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_payload", gjson.Get(body, "error").String())
}

func TestCompaniesAndUsers(t *testing.T) {
	app := seededServer(t)

	status, body := doReq(t, http.MethodPost, app.URL+"/companies", map[string]string{"name": "Acme", "email": "hi@acme.test"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "", gjson.Get(body, "phone").String())

	status, body = doReq(t, http.MethodGet, app.URL+"/companies", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Acme", gjson.Get(body, "0.name").String())

	status, body = doReq(t, http.MethodGet, app.URL+"/users?companyId=1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(4), gjson.Get(body, "#").Int())
	assert.Equal(t, "Ellen CEO", gjson.Get(body, "0.name").String())

	status, body = doReq(t, http.MethodPatch, app.URL+"/users/4", map[string]bool{"suspended": true})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, gjson.Get(body, "suspended").Bool())
}

func TestCORSAllowList(t *testing.T) {
	app := seededServer(t)

	req, err := http.NewRequest(http.MethodOptions, app.URL+"/attendance", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))

	req, err = http.NewRequest(http.MethodGet, app.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.test")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	app := seededServer(t)

	status, _ := doReq(t, http.MethodGet, app.URL+"/members", nil)
	require.Equal(t, http.StatusOK, status)
	_, _ = doReq(t, http.MethodPost, app.URL+"/attendance", map[string]interface{}{
		"date": "2024-11-11", "records": []map[string]string{{"memberId": "1", "status": "present"}},
	})

	status, body := doReq(t, http.MethodGet, app.URL+"/metrics", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `attendancehub_http_requests_total{method="GET",route="/members",status="200"} 1`)
	assert.Contains(t, body, "attendancehub_attendance_records_saved_total 1")
}

type failingStore struct {
	store.Store
}

func (failingStore) Mode() store.Mode { return store.ModePostgres }

func (failingStore) ListIdeas(context.Context) ([]model.Idea, error) {
	return nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")
}

func TestServerErrorHidesCause(t *testing.T) {
	app := newTestServer(t, failingStore{})

	status, body := doReq(t, http.MethodGet, app.URL+"/ideas", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"server_error"}`, body)
}
