package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"talent-track/internal/models"
	"talent-track/internal/storage/postgres"
)

// Seeds demo candidates so a fresh database has something to show on the
// dashboard. Safe to run repeatedly: every run inserts a new batch.
func main() {
	var count int
	var dryRun bool
	flag.IntVar(&count, "count", 12, "Number of demo candidates to insert")
	flag.BoolVar(&dryRun, "dry-run", false, "If true, print the candidates without inserting")
	flag.Parse()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	zl, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	store, err := postgres.New(dbURL, postgres.NopPublisher{}, zl)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}
	inserted := 0
	for i := 0; i < count; i++ {
		candidate := demoCandidate(i)
		if dryRun {
			fmt.Printf("%s <%s> — %s (%s)\n",
				candidate.Name, candidate.Email, candidate.JobRoleApplied, candidate.CurrentStatus())
			continue
		}
		if err := store.CreateCandidate(ctx, candidate); err != nil {
			log.Fatalf("insert failed: %v", err)
		}
		inserted++
	}

	zl.Info("seed complete", zap.Int("inserted", inserted), zap.Bool("dry_run", dryRun))
}

var demoRoles = []string{
	"Backend Engineer",
	"Frontend Engineer",
	"Data Scientist",
	"DevOps Engineer",
}

var demoSkills = map[string][]string{
	"Backend Engineer":  {"Go", "PostgreSQL", "Redis", "gRPC"},
	"Frontend Engineer": {"TypeScript", "React", "CSS"},
	"Data Scientist":    {"Python", "SQL", "Machine Learning"},
	"DevOps Engineer":   {"Kubernetes", "Terraform", "AWS"},
}

var demoStatuses = models.Statuses()

func demoCandidate(i int) *models.Candidate {
	role := demoRoles[i%len(demoRoles)]
	score := 35 + (i*11)%60
	years := float64(1 + i%9)
	status := demoStatuses[i%len(demoStatuses)]
	summary := fmt.Sprintf("Demo profile for a %s with %.0f years of experience.", role, years)

	return &models.Candidate{
		Name:            fmt.Sprintf("Demo Candidate %02d", i+1),
		Email:           fmt.Sprintf("demo.candidate.%02d@example.com", i+1),
		JobRoleApplied:  role,
		ExperienceYears: &years,
		Skills:          demoSkills[role],
		AIFitScore:      &score,
		AISummary:       &summary,
		Status:          status,
		CreatedAt:       time.Now().AddDate(0, 0, -(i % 45)),
	}
}
