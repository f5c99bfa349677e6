package git

import "time"

// EditEvent is one source line attributed to the commit that last touched it
type EditEvent struct {
	Commit   string
	File     string
	Line     int
	Depth    int
	Length   int
	Type     string
	Author   string
	Date     time.Time // midnight of the commit day in the commit's timezone
	Time     string    // raw clock field
	Timezone string    // raw offset field, e.g. "-08:00"
	Datetime time.Time // exact commit instant
}

// ScanProgress reports parsing progress
type ScanProgress struct {
	RowsParsed  int
	CurrentFile string
	Done        bool
}

// Columns is the header written and expected for edit logs
var Columns = []string{
	"commit", "file", "line", "depth", "length", "type",
	"author", "date", "time", "timezone", "datetime",
}
