package export

import (
	"strings"
	"testing"
	"time"

	"talent-track/internal/models"
)

func sampleCandidate() *models.Candidate {
	phone := "+1 555 0100"
	score := 85
	exp := 4.0
	return &models.Candidate{
		ID:              "c1",
		Name:            "Ada Lovelace",
		Email:           "ada@example.com",
		Phone:           &phone,
		JobRoleApplied:  "Backend Engineer",
		ExperienceYears: &exp,
		AIFitScore:      &score,
		Skills:          []string{"Go", "PostgreSQL"},
		Status:          models.StatusScreening,
		CreatedAt:       time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC),
	}
}

func TestEncodeCandidatesCSV_Header(t *testing.T) {
	out := EncodeCandidatesCSV(nil)
	want := `"Name","Email","Phone","Position","Experience","AI Score","Status","Skills","Applied Date"`
	if out != want {
		t.Errorf("header mismatch:\n got %s\nwant %s", out, want)
	}
}

func TestEncodeCandidatesCSV_Row(t *testing.T) {
	out := EncodeCandidatesCSV([]*models.Candidate{sampleCandidate()})
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	want := `"Ada Lovelace","ada@example.com","+1 555 0100","Backend Engineer","4 years","85%","screening","Go; PostgreSQL","2025-06-10"`
	if lines[1] != want {
		t.Errorf("row mismatch:\n got %s\nwant %s", lines[1], want)
	}
}

func TestEncodeCandidatesCSV_NullableFieldsRenderEmpty(t *testing.T) {
	c := sampleCandidate()
	c.Phone = nil
	c.AIFitScore = nil
	c.ExperienceYears = nil
	c.Skills = nil
	c.Status = ""

	out := EncodeCandidatesCSV([]*models.Candidate{c})
	row := strings.Split(out, "\n")[1]

	want := `"Ada Lovelace","ada@example.com","","Backend Engineer","","","new","","2025-06-10"`
	if row != want {
		t.Errorf("row mismatch:\n got %s\nwant %s", row, want)
	}
	if strings.Contains(out, "null") || strings.Contains(out, "<nil>") {
		t.Errorf("nil fields leaked into output: %s", out)
	}
}

func TestEncodeCandidatesCSV_EscapesEmbeddedQuotes(t *testing.T) {
	c := sampleCandidate()
	c.Name = `Ada "The Countess" Lovelace`

	out := EncodeCandidatesCSV([]*models.Candidate{c})
	if !strings.Contains(out, `"Ada ""The Countess"" Lovelace"`) {
		t.Errorf("embedded quotes not doubled: %s", out)
	}
}

func TestEncodeCandidatesCSV_PreservesInputOrder(t *testing.T) {
	a := sampleCandidate()
	a.Name = "Zed"
	b := sampleCandidate()
	b.Name = "Anna"

	out := EncodeCandidatesCSV([]*models.Candidate{a, b})
	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[1], `"Zed"`) || !strings.HasPrefix(lines[2], `"Anna"`) {
		t.Errorf("rows reordered:\n%s", out)
	}
}

func TestEncodeReportCSV(t *testing.T) {
	out := EncodeReportCSV([]*models.Candidate{sampleCandidate()})
	lines := strings.Split(out, "\n")

	wantHeader := `"Name","Email","Role","AI Score","Status","Applied Date"`
	if lines[0] != wantHeader {
		t.Errorf("header mismatch: %s", lines[0])
	}
	wantRow := `"Ada Lovelace","ada@example.com","Backend Engineer","85%","screening","2025-06-10"`
	if lines[1] != wantRow {
		t.Errorf("row mismatch: %s", lines[1])
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)
	got := Filename("candidates-export", now)
	if got != "candidates-export-2025-06-10.csv" {
		t.Errorf("unexpected filename: %s", got)
	}
}
