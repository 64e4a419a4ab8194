package services

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	spaceTabRun   = regexp.MustCompile(`[ \t]+`)
	blankLineRun  = regexp.MustCompile(`\n{3,}`)
)

// NormalizeInline collapses any whitespace (including NBSP and newlines) into
// single spaces. Every downstream heuristic consumes this canonical form.
// Empty input yields an empty string; never fails.
func NormalizeInline(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeBlocks keeps line structure for section splitting: NBSP to space,
// space/tab runs collapsed, CRLF to LF, and runs of 3+ newlines reduced to a
// single blank line.
func NormalizeBlocks(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = spaceTabRun.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = blankLineRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
