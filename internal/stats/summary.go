package stats

import (
	"time"

	"github.com/audi70r/gitstory/internal/git"
)

// PeriodOfDay buckets an hour: morning [5,12), afternoon [12,17),
// evening [17,21), night otherwise
func PeriodOfDay(hour int) Period {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 21:
		return Evening
	default:
		return Night
	}
}

// PeriodBreakdown counts events per period in the display timezone, in
// AllPeriods order
func PeriodBreakdown(events []git.EditEvent, tz *time.Location) []PeriodCount {
	if tz == nil {
		tz = time.Local
	}

	counts := make(map[Period]int, len(AllPeriods))
	for _, e := range events {
		counts[PeriodOfDay(e.Datetime.In(tz).Hour())]++
	}

	out := make([]PeriodCount, len(AllPeriods))
	for i, p := range AllPeriods {
		out[i] = PeriodCount{Period: p, Lines: counts[p]}
	}
	return out
}

// HourBreakdown counts events per hour of day in the display timezone
func HourBreakdown(events []git.EditEvent, tz *time.Location) [24]int {
	if tz == nil {
		tz = time.Local
	}
	var counts [24]int
	for _, e := range events {
		counts[e.Datetime.In(tz).Hour()]++
	}
	return counts
}

// WeekHourBreakdown counts events per weekday and hour in the display
// timezone. Rows start on Monday.
func WeekHourBreakdown(events []git.EditEvent, tz *time.Location) [7][24]int {
	if tz == nil {
		tz = time.Local
	}
	var m [7][24]int
	for _, e := range events {
		t := e.Datetime.In(tz)
		m[(int(t.Weekday())+6)%7][t.Hour()]++
	}
	return m
}

// Summarize computes the stats panel aggregates over events and commits
func Summarize(events []git.EditEvent, commits []*Commit, tz *time.Location) Summary {
	s := Summary{
		TotalLOC:     len(events),
		TotalCommits: len(commits),
	}
	if len(events) == 0 {
		return s
	}
	s.HasData = true

	// file length is the highest line number seen, not the event count
	maxLine := make(map[string]int)
	for _, e := range events {
		if cur, ok := maxLine[e.File]; !ok || e.Line > cur {
			maxLine[e.File] = e.Line
		}
	}
	s.Files = len(maxLine)

	sum := 0
	for file, n := range maxLine {
		sum += n
		if s.LongestFile == "" || n > s.MaxFileLen || (n == s.MaxFileLen && file < s.LongestFile) {
			s.LongestFile = file
			s.MaxFileLen = n
		}
	}
	s.AvgFileLen = float64(sum) / float64(len(maxLine))

	best := -1
	for _, pc := range PeriodBreakdown(events, tz) {
		if pc.Lines > best {
			best = pc.Lines
			s.TopPeriod = pc.Period
		}
	}

	return s
}
