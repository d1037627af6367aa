package model

import (
	"testing"
	"time"
)

func TestNormalizeAttendanceStatus(t *testing.T) {
	cases := map[string]AttendanceStatus{
		"present":  AttendancePresent,
		"absent":   AttendanceAbsent,
		"Present":  AttendanceAbsent,
		"late":     AttendanceAbsent,
		"":         AttendanceAbsent,
		" present": AttendanceAbsent,
	}
	for input, expect := range cases {
		if got := NormalizeAttendanceStatus(input); got != expect {
			t.Fatalf("status %q: expected %s, got %s", input, expect, got)
		}
	}
}

func TestParseCaseDecision(t *testing.T) {
	cases := map[string]CaseStatus{
		"suspended": CaseSuspended,
		"forgiven":  CaseForgiven,
		"pending":   CasePending,
		"expelled":  CasePending,
		"":          CasePending,
	}
	for input, expect := range cases {
		if got := ParseCaseDecision(input); got != expect {
			t.Fatalf("decision %q: expected %s, got %s", input, expect, got)
		}
	}
	if CasePending.Terminal() {
		t.Fatalf("pending must not be terminal")
	}
	if !CaseSuspended.Terminal() || !CaseForgiven.Terminal() {
		t.Fatalf("suspended and forgiven must be terminal")
	}
}

func TestParsePermissionStatus(t *testing.T) {
	cases := map[string]PermissionStatus{
		"approved": PermissionApproved,
		"rejected": PermissionRejected,
		"pending":  PermissionPending,
		"maybe":    PermissionPending,
	}
	for input, expect := range cases {
		if got := ParsePermissionStatus(input); got != expect {
			t.Fatalf("status %q: expected %s, got %s", input, expect, got)
		}
	}
}

func TestParseEnumsWithDefaults(t *testing.T) {
	if c, ok := ParseIdeaCategory(""); !ok || c != IdeaSuggestion {
		t.Fatalf("expected empty idea category to default to suggestion")
	}
	if _, ok := ParseIdeaCategory("rant"); ok {
		t.Fatalf("expected unknown idea category to be rejected")
	}
	if c, ok := ParseAnnouncementCategory(""); !ok || c != CategoryGeneral {
		t.Fatalf("expected empty announcement category to default to general")
	}
	if _, ok := ParseAnnouncementCategory("gossip"); ok {
		t.Fatalf("expected unknown announcement category to be rejected")
	}
	if _, ok := ParseIdeaStatus("resolved"); !ok {
		t.Fatalf("expected resolved to be a valid idea status")
	}
	if _, ok := ParseIdeaStatus("closed"); ok {
		t.Fatalf("expected closed to be rejected")
	}
	if _, ok := ParseRole("admin"); ok {
		t.Fatalf("expected admin role to be rejected")
	}
}

func TestTimestampFormats(t *testing.T) {
	at := time.Date(2024, 11, 10, 9, 0, 0, 5_000_000, time.UTC)
	if got := Timestamp(at); got != "2024-11-10T09:00:00.005Z" {
		t.Fatalf("unexpected timestamp %s", got)
	}
	if got := Date(at); got != "2024-11-10" {
		t.Fatalf("unexpected date %s", got)
	}
	if got := AttendanceID("7", "2024-11-10"); got != "7-2024-11-10" {
		t.Fatalf("unexpected attendance id %s", got)
	}
}
