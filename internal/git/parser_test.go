package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `commit,file,line,depth,length,type,author,date,time,timezone,datetime
abc,x.js,10,1,20,js,Ana,2025-02-10,14:32:11,-08:00,2025-02-10T14:32:11-08:00
abc,x.js,20,2,18,js,Ana,2025-02-10,14:32:11,-08:00,2025-02-10T14:32:11-08:00
def,style.css,3,0,12,css,Ana,2025-02-11,09:05:00,-08:00,2025-02-11T09:05:00-08:00
`

func parseAll(t *testing.T, input string) ([]EditEvent, error) {
	t.Helper()
	var events []EditEvent
	err := NewParser("").Parse(context.Background(), strings.NewReader(input), nil, func(e EditEvent) {
		events = append(events, e)
	})
	return events, err
}

func TestParseTypedFields(t *testing.T) {
	events, err := parseAll(t, sampleLog)
	require.NoError(t, err)
	require.Len(t, events, 3)

	e := events[0]
	assert.Equal(t, "abc", e.Commit)
	assert.Equal(t, "x.js", e.File)
	assert.Equal(t, 10, e.Line)
	assert.Equal(t, 1, e.Depth)
	assert.Equal(t, 20, e.Length)
	assert.Equal(t, "js", e.Type)
	assert.Equal(t, "Ana", e.Author)
	assert.Equal(t, "14:32:11", e.Time)
	assert.Equal(t, "-08:00", e.Timezone)

	wantDate := time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)
	assert.True(t, e.Date.Equal(wantDate), "date %v", e.Date)

	wantDatetime := time.Date(2025, 2, 10, 22, 32, 11, 0, time.UTC)
	assert.True(t, e.Datetime.Equal(wantDatetime), "datetime %v", e.Datetime)
}

func TestParseHeaderOrderIndependent(t *testing.T) {
	input := `datetime,timezone,time,date,author,type,length,depth,line,file,commit,extra
2025-02-10T14:32Z,Z,14:32,2025-02-10,Bo,go,4,0,1,main.go,c1,ignored
`
	events, err := parseAll(t, input)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "c1", events[0].Commit)
	assert.Equal(t, "main.go", events[0].File)
	assert.Equal(t, 14, events[0].Datetime.Hour())
}

func TestParseFailures(t *testing.T) {
	header := strings.Join(Columns, ",") + "\n"

	tests := []struct {
		name   string
		input  string
		want   error
		row    int
		column string
	}{
		{
			name:  "empty",
			input: "",
			want:  ErrEmptyLog,
		},
		{
			name:  "missing column",
			input: "commit,file,line\nabc,x.js,1\n",
			want:  ErrMissingColumn,
		},
		{
			name:   "bad integer",
			input:  header + "abc,x.js,ten,1,1,js,A,2025-02-10,1:00,-08:00,2025-02-10T01:00:00-08:00\n",
			want:   ErrMalformedRow,
			row:    2,
			column: "line",
		},
		{
			name: "bad datetime on second row",
			input: header +
				"abc,x.js,1,1,1,js,A,2025-02-10,1:00,-08:00,2025-02-10T01:00:00-08:00\n" +
				"abc,x.js,2,1,1,js,A,2025-02-10,1:00,-08:00,yesterday\n",
			want:   ErrMalformedRow,
			row:    3,
			column: "datetime",
		},
		{
			name:  "field count",
			input: header + "abc,x.js,1\n",
			want:  ErrMalformedRow,
			row:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAll(t, tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			if tt.row > 0 {
				var rowErr *RowError
				require.ErrorAs(t, err, &rowErr)
				assert.Equal(t, tt.row, rowErr.Row)
				assert.Equal(t, tt.column, rowErr.Column)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loc.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))

	var last ScanProgress
	events, err := NewParser(path).Load(context.Background(), func(p ScanProgress) { last = p })
	require.NoError(t, err)
	assert.Len(t, events, 3)
	assert.True(t, last.Done)
	assert.Equal(t, 3, last.RowsParsed)
}

func TestEstimateRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loc.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))

	n, err := NewParser(path).EstimateRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = NewParser(filepath.Join(t.TempDir(), "nope.csv")).EstimateRows(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMissingFile(t *testing.T) {
	events, err := NewParser(filepath.Join(t.TempDir(), "nope.csv")).Load(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, events)
}

func TestParseCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewParser("").Parse(ctx, strings.NewReader(sampleLog), nil, func(EditEvent) {})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseDateOffsets(t *testing.T) {
	d, err := ParseDate("2025-02-10", "+0530")
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2025, 2, 9, 18, 30, 0, 0, time.UTC)))

	d, err = ParseDate("2025-02-10", "")
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)))
}
