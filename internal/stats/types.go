package stats

import (
	"time"

	"github.com/audi70r/gitstory/internal/git"
)

// Commit aggregates every edit event sharing a commit id. It carries no
// reference to its events; those live in the repository's LineIndex.
type Commit struct {
	ID         string
	Author     string
	URL        string
	Date       time.Time
	Time       string
	Timezone   string
	Datetime   time.Time
	HourFrac   float64 // hour of day plus minutes/60, display timezone
	TotalLines int
}

// LineIndex maps a commit id to its edit events
type LineIndex map[string][]git.EditEvent

// Repository holds the loaded edit log and the commits derived from it
type Repository struct {
	Path    string
	Events  []git.EditEvent
	Commits []*Commit // ascending by Datetime
	Lines   LineIndex
}

// Period is a coarse time-of-day bucket
type Period string

// Periods in their fixed tie-break order
const (
	Morning   Period = "morning"
	Afternoon Period = "afternoon"
	Evening   Period = "evening"
	Night     Period = "night"
)

// AllPeriods lists periods in tie-break order
var AllPeriods = []Period{Morning, Afternoon, Evening, Night}

// Summary holds corpus-wide aggregates for the stats panel
type Summary struct {
	TotalLOC     int
	TotalCommits int
	Files        int
	LongestFile  string
	MaxFileLen   int
	AvgFileLen   float64
	TopPeriod    Period
	HasData      bool
}

// PeriodCount is the number of edit events falling in a period
type PeriodCount struct {
	Period Period
	Lines  int
}

// FileGroup is the set of visible lines belonging to one file
type FileGroup struct {
	Name  string
	Lines []git.EditEvent
}
