package git

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const progressEvery = 1000

// Sentinel load errors
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformedRow  = errors.New("malformed row")
	ErrEmptyLog      = errors.New("edit log has no header")
)

// RowError reports the row (1-based, header is row 1) that failed to parse
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05Z07:00",
}

// Parser reads edit logs
type Parser struct {
	Path string
}

// NewParser creates a parser for the edit log at path
func NewParser(path string) *Parser {
	return &Parser{Path: path}
}

// EstimateRows counts data rows by newlines, for progress reporting
func (p *Parser) EstimateRows(ctx context.Context) (int, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		return 0, fmt.Errorf("open edit log: %w", err)
	}
	defer f.Close()

	buf := make([]byte, 64*1024)
	lines := 0
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := f.Read(buf)
		lines += bytes.Count(buf[:n], []byte{'\n'})
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read edit log: %w", err)
		}
	}
	// header
	if lines > 0 {
		lines--
	}
	return lines, nil
}

// Load reads the whole edit log. Any unreadable file or malformed row fails
// the load; nothing is returned on error.
func (p *Parser) Load(ctx context.Context, onProgress func(ScanProgress)) ([]EditEvent, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("open edit log: %w", err)
	}
	defer f.Close()

	var events []EditEvent
	err = p.Parse(ctx, f, onProgress, func(e EditEvent) {
		events = append(events, e)
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Parse streams edit events from r via callback
func (p *Parser) Parse(ctx context.Context, r io.Reader,
	onProgress func(ScanProgress), onEvent func(EditEvent)) error {

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return ErrEmptyLog
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return err
	}
	reader.FieldsPerRecord = len(header)

	rows := 0
	var last string
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &RowError{Row: rows + 2, Err: fmt.Errorf("%w: %v", ErrMalformedRow, err)}
		}

		event, err := parseRecord(record, idx)
		if err != nil {
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				rowErr.Row = rows + 2
			}
			return err
		}

		onEvent(event)
		rows++
		last = event.File

		if onProgress != nil && rows%progressEvery == 0 {
			onProgress(ScanProgress{RowsParsed: rows, CurrentFile: last})
		}
	}

	if onProgress != nil {
		onProgress(ScanProgress{RowsParsed: rows, CurrentFile: last, Done: true})
	}

	return nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		idx[strings.ToLower(name)] = i
	}

	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return idx, nil
}

func parseRecord(record []string, idx map[string]int) (EditEvent, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[idx[name]])
	}

	e := EditEvent{
		Commit:   field("commit"),
		File:     field("file"),
		Type:     field("type"),
		Author:   field("author"),
		Time:     field("time"),
		Timezone: field("timezone"),
	}
	if e.Commit == "" {
		return e, &RowError{Column: "commit", Err: fmt.Errorf("%w: empty commit id", ErrMalformedRow)}
	}

	var err error
	for _, col := range []struct {
		name string
		dst  *int
	}{
		{"line", &e.Line},
		{"depth", &e.Depth},
		{"length", &e.Length},
	} {
		*col.dst, err = strconv.Atoi(field(col.name))
		if err != nil {
			return e, &RowError{Column: col.name, Err: fmt.Errorf("%w: %v", ErrMalformedRow, err)}
		}
	}

	e.Date, err = ParseDate(field("date"), e.Timezone)
	if err != nil {
		return e, &RowError{Column: "date", Err: fmt.Errorf("%w: %v", ErrMalformedRow, err)}
	}

	e.Datetime, err = ParseDatetime(field("datetime"))
	if err != nil {
		return e, &RowError{Column: "datetime", Err: fmt.Errorf("%w: %v", ErrMalformedRow, err)}
	}

	return e, nil
}

// ParseDate combines a YYYY-MM-DD date with a UTC offset into the instant of
// local midnight. An empty offset means UTC.
func ParseDate(date, tz string) (time.Time, error) {
	if tz == "" || tz == "Z" {
		return time.Parse("2006-01-02T15:04Z07:00", date+"T00:00Z")
	}
	layout := "2006-01-02T15:04Z07:00"
	if !strings.Contains(tz, ":") {
		layout = "2006-01-02T15:04-0700"
	}
	return time.Parse(layout, date+"T00:00"+tz)
}

// ParseDatetime parses an exact commit instant
func ParseDatetime(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range datetimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
