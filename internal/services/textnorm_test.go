package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"collapses runs", "a  \t b\n\nc", "a b c"},
		{"nbsp becomes space", "a b", "a b"},
		{"trims edges", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeInline(tt.in))
		})
	}
}

func TestNormalizeBlocks(t *testing.T) {
	in := "Line one  with\tspaces\r\n\r\n\r\n\r\nLine two"
	want := "Line one with spaces\n\nLine two"
	assert.Equal(t, want, NormalizeBlocks(in))
}

func TestNormalizeBlocksKeepsSingleNewlines(t *testing.T) {
	in := "SKILLS\nGo\nPostgres"
	assert.Equal(t, in, NormalizeBlocks(in))
}
