// Package export serializes candidate sets into downloadable artifacts:
// CSV for bulk export and reporting, XLSX for the full hiring report.
package export

import (
	"fmt"
	"strings"
	"time"

	"talent-track/internal/models"
)

// Column sets are fixed; callers pick the variant, rows follow input order.
var (
	candidateHeaders = []string{
		"Name", "Email", "Phone", "Position", "Experience",
		"AI Score", "Status", "Skills", "Applied Date",
	}
	reportHeaders = []string{
		"Name", "Email", "Role", "AI Score", "Status", "Applied Date",
	}
)

// EncodeCandidatesCSV renders the full bulk-export column set.
func EncodeCandidatesCSV(candidates []*models.Candidate) string {
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, []string{
			c.Name,
			c.Email,
			stringOrEmpty(c.Phone),
			c.JobRoleApplied,
			experienceCell(c.ExperienceYears),
			scoreCell(c.AIFitScore),
			c.CurrentStatus(),
			strings.Join(c.Skills, "; "),
			c.CreatedAt.Format("2006-01-02"),
		})
	}
	return encode(candidateHeaders, rows)
}

// EncodeReportCSV renders the shorter reporting column set.
func EncodeReportCSV(candidates []*models.Candidate) string {
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, []string{
			c.Name,
			c.Email,
			c.JobRoleApplied,
			scoreCell(c.AIFitScore),
			c.CurrentStatus(),
			c.CreatedAt.Format("2006-01-02"),
		})
	}
	return encode(reportHeaders, rows)
}

// Filename builds the download name, e.g. "candidates-export-2025-06-10.csv".
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", prefix, now.Format("2006-01-02"))
}

// encode wraps every cell, headers included, in double quotes. Embedded
// quotes are doubled so the output stays parseable.
func encode(headers []string, rows [][]string) string {
	var b strings.Builder
	writeRow(&b, headers)
	for _, row := range rows {
		b.WriteByte('\n')
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func experienceCell(years *float64) string {
	if years == nil {
		return ""
	}
	return fmt.Sprintf("%g years", *years)
}

func scoreCell(score *int) string {
	if score == nil {
		return ""
	}
	return fmt.Sprintf("%d%%", *score)
}
