package stats

import (
	"sort"

	"github.com/audi70r/gitstory/internal/git"
)

// FileGroups groups lines by file, largest group first. Equal sizes keep the
// order in which files first appear.
func FileGroups(lines []git.EditEvent) []FileGroup {
	pos := make(map[string]int)
	var groups []FileGroup

	for _, e := range lines {
		i, ok := pos[e.File]
		if !ok {
			i = len(groups)
			pos[e.File] = i
			groups = append(groups, FileGroup{Name: e.File})
		}
		groups[i].Lines = append(groups[i].Lines, e)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Lines) > len(groups[j].Lines)
	})
	return groups
}

// TypeCounts returns the number of lines per type, in first-seen order
func (g FileGroup) TypeCounts() ([]string, map[string]int) {
	counts := make(map[string]int)
	var order []string
	for _, e := range g.Lines {
		if _, ok := counts[e.Type]; !ok {
			order = append(order, e.Type)
		}
		counts[e.Type]++
	}
	return order, counts
}
