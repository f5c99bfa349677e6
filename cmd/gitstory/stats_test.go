package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/audi70r/gitstory/internal/config"
	"github.com/audi70r/gitstory/internal/git"
	"github.com/audi70r/gitstory/internal/stats"
)

func testRepo() *stats.Repository {
	at := time.Date(2025, 2, 10, 14, 5, 0, 0, time.UTC)
	var events []git.EditEvent
	for i := 1; i <= 1200; i++ {
		events = append(events, git.EditEvent{
			Commit: "0123456789abcdef", File: "src/big.ts", Line: i, Type: "ts", Author: "Ana", Datetime: at,
		})
	}
	events = append(events, git.EditEvent{
		Commit: "fedcba", File: "README.md", Line: 1, Type: "md", Author: "Bo", Datetime: at.Add(time.Hour),
	})
	return stats.Build("loc.csv", events, time.UTC, nil)
}

func TestSummaryTable(t *testing.T) {
	repo := testRepo()
	out := summaryTable(stats.Summarize(repo.Events, repo.Commits, time.UTC))

	assert.Contains(t, out, "Lines of code")
	assert.Contains(t, out, "1,201")
	assert.Contains(t, out, "src/big.ts (1,200 lines)")
	assert.Contains(t, out, "afternoon")
}

func TestPeriodTable_MarksTop(t *testing.T) {
	repo := testRepo()
	out := periodTable(stats.PeriodBreakdown(repo.Events, time.UTC), stats.Afternoon)

	assert.Contains(t, out, "afternoon *")
	assert.Contains(t, out, "100.0%")
	assert.NotContains(t, out, "morning *")
}

func TestFilesTable_Limit(t *testing.T) {
	repo := testRepo()
	out := filesTable(stats.FileGroups(repo.Events), 1)

	assert.Contains(t, out, "src/big.ts")
	assert.Contains(t, out, "ts 1200")
	assert.NotContains(t, out, "README.md")
	// footers are upper-cased by the table style
	assert.Contains(t, strings.ToUpper(out), "TOTAL: 2 FILES")
}

func TestCommitsTable(t *testing.T) {
	cfg = config.Default()
	cfg.Timezone = time.UTC
	cfg.TimeFormat24h = true

	out := commitsTable(testRepo(), 10)
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "2025-02-10 14:05")
	assert.Contains(t, out, "fedcba")
}

func TestLocPath(t *testing.T) {
	cfg = config.Default()
	assert.Equal(t, "loc.csv", locPath(nil))
	assert.Equal(t, "other.csv", locPath([]string{"other.csv"}))
}
