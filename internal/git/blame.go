package git

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNotRepository is returned when the path does not hold a git repository
var ErrNotRepository = errors.New("not a git repository")

// Language names keyed by file extension, used for the type column
var extTypes = map[string]string{
	".go":     "go",
	".js":     "js",
	".mjs":    "js",
	".ts":     "ts",
	".jsx":    "jsx",
	".tsx":    "tsx",
	".html":   "html",
	".htm":    "html",
	".css":    "css",
	".scss":   "scss",
	".svelte": "svelte",
	".py":     "py",
	".md":     "md",
	".json":   "json",
	".yaml":   "yaml",
	".yml":    "yaml",
	".sh":     "sh",
	".rs":     "rs",
	".java":   "java",
	".c":      "c",
	".h":      "c",
	".cpp":    "cpp",
}

// GenerateOptions controls which files are blamed
type GenerateOptions struct {
	Include []string // doublestar patterns; empty means every file
	Exclude []string
}

// DefaultGenerateOptions blames common web and source files
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Include: []string{"**/*.{js,ts,jsx,tsx,html,css,svelte,go,py}"},
		Exclude: []string{"node_modules/**", "vendor/**", "**/*.min.js"},
	}
}

// IsGitRepo checks if the path is a valid git repository
func IsGitRepo(repoPath string) bool {
	_, err := gogit.PlainOpen(repoPath)
	return err == nil
}

// Generate blames every matching file at HEAD and writes one edit log row per
// line. It returns the number of rows written.
func Generate(ctx context.Context, repoPath string, opts GenerateOptions,
	w io.Writer, onProgress func(ScanProgress)) (int, error) {

	for _, pattern := range append(append([]string{}, opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return 0, fmt.Errorf("invalid pattern %q", pattern)
		}
	}

	repo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrNotRepository, repoPath, err)
	}

	head, err := repo.Head()
	if err != nil {
		return 0, fmt.Errorf("resolve HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return 0, fmt.Errorf("get HEAD commit: %w", err)
	}

	paths, err := matchingFiles(commit, opts)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	rows := 0
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		blame, err := gogit.Blame(commit, p)
		if err != nil {
			return rows, fmt.Errorf("blame %s: %w", p, err)
		}

		for i, line := range blame.Lines {
			if err := writer.Write(blameRecord(p, i+1, line)); err != nil {
				return rows, fmt.Errorf("write row: %w", err)
			}
			rows++
		}

		if onProgress != nil {
			onProgress(ScanProgress{RowsParsed: rows, CurrentFile: p})
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return rows, fmt.Errorf("flush edit log: %w", err)
	}

	if onProgress != nil {
		onProgress(ScanProgress{RowsParsed: rows, Done: true})
	}
	return rows, nil
}

func matchingFiles(commit *object.Commit, opts GenerateOptions) ([]string, error) {
	files, err := commit.Files()
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	var paths []string
	err = files.ForEach(func(f *object.File) error {
		if !selected(f.Name, opts) {
			return nil
		}
		binary, err := f.IsBinary()
		if err != nil || binary {
			return nil
		}
		paths = append(paths, f.Name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk tree: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}

func selected(name string, opts GenerateOptions) bool {
	for _, pattern := range opts.Exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return false
		}
	}
	if len(opts.Include) == 0 {
		return true
	}
	for _, pattern := range opts.Include {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func blameRecord(file string, lineNum int, line *gogit.Line) []string {
	author := line.AuthorName
	if author == "" {
		author = line.Author
	}

	when := line.Date
	return []string{
		line.Hash.String(),
		file,
		strconv.Itoa(lineNum),
		strconv.Itoa(IndentDepth(line.Text)),
		strconv.Itoa(len(strings.TrimLeft(line.Text, " \t"))),
		TypeOf(file),
		author,
		when.Format("2006-01-02"),
		when.Format("15:04:05"),
		when.Format("-07:00"),
		when.Format("2006-01-02T15:04:05-07:00"),
	}
}

// IndentDepth counts indentation levels: a tab or two spaces per level
func IndentDepth(text string) int {
	depth, spaces := 0, 0
	for _, r := range text {
		switch r {
		case '\t':
			depth++
		case ' ':
			spaces++
		default:
			return depth + spaces/2
		}
	}
	return depth + spaces/2
}

// TypeOf returns the line type for a file path
func TypeOf(file string) string {
	ext := strings.ToLower(path.Ext(file))
	if t, ok := extTypes[ext]; ok {
		return t
	}
	if ext == "" {
		return "text"
	}
	return strings.TrimPrefix(ext, ".")
}
