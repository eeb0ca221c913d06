// Package filter evaluates dashboard search criteria against candidate
// records. Everything here is pure computation over in-memory data; the
// storage layer is never consulted.
package filter

import (
	"strings"
	"time"

	"talent-track/internal/models"
)

// Matches reports whether the candidate satisfies every clause of the
// criteria. Clauses are ANDed and evaluated in a fixed order; the first
// failing clause short-circuits.
func Matches(c *models.Candidate, crit models.FilterCriteria, now time.Time) bool {
	if !matchesQuery(c, crit.Query) {
		return false
	}

	score := c.FitScore()
	if score < crit.MinScore || score > crit.MaxScore {
		return false
	}

	if crit.Status != models.SelectorAll && c.CurrentStatus() != crit.Status {
		return false
	}

	if crit.JobRole != models.SelectorAll && c.JobRoleApplied != crit.JobRole {
		return false
	}

	exp := c.Experience()
	if exp < crit.ExperienceMin {
		return false
	}
	// The selector tops out at the cap, so a max at the cap means "and above".
	if crit.ExperienceMax < models.ExperienceCap && exp > crit.ExperienceMax {
		return false
	}

	if !matchesSkills(c.Skills, crit.Skills) {
		return false
	}

	return matchesDateRange(c.CreatedAt, crit.DateRange, now)
}

// Apply filters the candidate set, preserving input order.
func Apply(candidates []*models.Candidate, crit models.FilterCriteria, now time.Time) []*models.Candidate {
	out := make([]*models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if Matches(c, crit, now) {
			out = append(out, c)
		}
	}
	return out
}

// matchesQuery checks a case-insensitive substring against name, email, job
// role, or any skill. An empty query always passes.
func matchesQuery(c *models.Candidate, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Email), q) ||
		strings.Contains(strings.ToLower(c.JobRoleApplied), q) {
		return true
	}
	for _, skill := range c.Skills {
		if strings.Contains(strings.ToLower(skill), q) {
			return true
		}
	}
	return false
}

// matchesSkills requires every wanted skill to substring-match some candidate
// skill, case-insensitive. An empty requirement set always passes; an empty
// candidate skill list never satisfies a non-empty requirement set.
func matchesSkills(have []string, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		wl := strings.ToLower(w)
		found := false
		for _, h := range have {
			if strings.Contains(strings.ToLower(h), wl) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchesDateRange resolves the selector to [periodStart, now] and checks
// that created falls inside it.
func matchesDateRange(created time.Time, selector string, now time.Time) bool {
	if selector == "" || selector == models.RangeAll {
		return true
	}
	start := PeriodStart(selector, now)
	return !created.Before(start) && !created.After(now)
}

// PeriodStart returns the local-calendar start of the period the selector
// names: the current day, week (Sunday-first), month, or quarter. The "all"
// selector has no start; the zero time is returned so every timestamp passes.
func PeriodStart(selector string, now time.Time) time.Time {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch selector {
	case models.RangeToday:
		return today
	case models.RangeWeek:
		return today.AddDate(0, 0, -int(today.Weekday()))
	case models.RangeMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	case models.RangeQuarter:
		qm := time.Month((int(m)-1)/3*3 + 1)
		return time.Date(y, qm, 1, 0, 0, 0, 0, now.Location())
	}
	return time.Time{}
}

// JobRoles returns the distinct job roles present in the candidate set, in
// first-encountered order. Feeds the dashboard role selector.
func JobRoles(candidates []*models.Candidate) []string {
	seen := make(map[string]bool)
	var roles []string
	for _, c := range candidates {
		if c.JobRoleApplied == "" || seen[c.JobRoleApplied] {
			continue
		}
		seen[c.JobRoleApplied] = true
		roles = append(roles, c.JobRoleApplied)
	}
	return roles
}

// KnownSkills returns the distinct skills across the candidate set, in
// first-encountered order. Feeds the skill-suggestion input.
func KnownSkills(candidates []*models.Candidate) []string {
	seen := make(map[string]bool)
	var skills []string
	for _, c := range candidates {
		for _, s := range c.Skills {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			skills = append(skills, s)
		}
	}
	return skills
}
