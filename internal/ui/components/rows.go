package components

// RowDiff is the keyed difference between two renders of a list
type RowDiff struct {
	Enter  []string
	Update []string
	Exit   []string
}

// DiffKeys compares two key orders. Enter and Update follow next's order;
// Exit follows prev's.
func DiffKeys(prev, next []string) RowDiff {
	seen := make(map[string]bool, len(prev))
	for _, k := range prev {
		seen[k] = true
	}
	kept := make(map[string]bool, len(next))

	var d RowDiff
	for _, k := range next {
		kept[k] = true
		if seen[k] {
			d.Update = append(d.Update, k)
		} else {
			d.Enter = append(d.Enter, k)
		}
	}
	for _, k := range prev {
		if !kept[k] {
			d.Exit = append(d.Exit, k)
		}
	}
	return d
}
