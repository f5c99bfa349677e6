package components

import (
	"regexp"
	"strings"

	"github.com/rivo/uniseg"
)

var (
	tagPattern = regexp.MustCompile(`\[[a-zA-Z0-9_,;: \-\.#]*\]`)
	leadingTag = regexp.MustCompile(`^` + tagPattern.String())
)

// StripTags removes tview color and style tags
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// TaggedWidth returns the number of screen cells s occupies once tags are
// removed
func TaggedWidth(s string) int {
	return uniseg.StringWidth(StripTags(s))
}

// WrapTagged word-wraps tagged text to width cells. A style left open at the
// end of a line is reopened at the start of the next one. Words wider than
// width are broken between grapheme clusters.
func WrapTagged(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var (
		lines []string
		line  strings.Builder
		used  int
		open  string
	)
	flush := func() {
		s := line.String()
		lines = append(lines, s)
		line.Reset()
		used = 0
		if open != "" {
			line.WriteString(open)
		}
	}

	for _, para := range strings.Split(text, "\n") {
		for _, word := range strings.Fields(para) {
			for _, piece := range splitWide(word, width) {
				w := TaggedWidth(piece)
				if used > 0 && used+1+w > width {
					flush()
				}
				if used > 0 {
					line.WriteByte(' ')
					used++
				}
				line.WriteString(piece)
				used += w
				open = lastOpenTag(piece, open)
			}
		}
		flush()
	}
	return lines
}

// splitWide cuts word into pieces no wider than width; tags stay attached to
// the text that follows them
func splitWide(word string, width int) []string {
	if TaggedWidth(word) <= width {
		return []string{word}
	}
	var (
		pieces []string
		piece  strings.Builder
		used   int
	)
	for word != "" {
		if tag := leadingTag.FindString(word); tag != "" {
			piece.WriteString(tag)
			word = word[len(tag):]
			continue
		}
		cluster, rest, w, _ := uniseg.FirstGraphemeClusterInString(word, -1)
		if used > 0 && used+w > width {
			pieces = append(pieces, piece.String())
			piece.Reset()
			used = 0
		}
		piece.WriteString(cluster)
		used += w
		word = rest
	}
	if piece.Len() > 0 {
		pieces = append(pieces, piece.String())
	}
	return pieces
}

// lastOpenTag tracks the style still in effect after word
func lastOpenTag(word, open string) string {
	for _, tag := range tagPattern.FindAllString(word, -1) {
		if isReset(tag) {
			open = ""
		} else {
			open = tag
		}
	}
	return open
}

func isReset(tag string) bool {
	inner := strings.Trim(tag, "[]")
	for _, part := range strings.Split(inner, ":") {
		if part != "" && part != "-" {
			return false
		}
	}
	return true
}
