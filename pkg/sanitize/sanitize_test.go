package sanitize_test

import (
	"strings"
	"testing"

	"go-website-backend/pkg/sanitize"

	"github.com/stretchr/testify/assert"
)

func TestCleanStripsMarkup(t *testing.T) {
	inputs := []string{
		"<b>Hello</b> world",
		"<p>Hello world</p>",
		"Hello <a href='http://evil.example'>world</a>",
		"<div><span>Hello</span> world</div>",
	}

	for _, in := range inputs {
		out, ok := sanitize.Clean(in, 100)
		assert.True(t, ok)
		assert.Equal(t, "Hello world", out)
		assert.NotContains(t, out, "<")
		assert.NotContains(t, out, ">")
	}
}

func TestCleanMissing(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, ok := sanitize.Clean("", 100)
		assert.False(t, ok)
	})

	t.Run("whitespace only", func(t *testing.T) {
		_, ok := sanitize.Clean("   \t\n  ", 100)
		assert.False(t, ok)
	})

	t.Run("empty after stripping", func(t *testing.T) {
		_, ok := sanitize.Clean("<br><hr>", 100)
		assert.False(t, ok)
	})
}

func TestCleanTruncates(t *testing.T) {
	out, ok := sanitize.Clean(strings.Repeat("a", 150), 100)
	assert.True(t, ok)
	assert.Len(t, out, 100)

	t.Run("rune boundary", func(t *testing.T) {
		out, ok := sanitize.Clean(strings.Repeat("é", 150), 100)
		assert.True(t, ok)
		assert.Len(t, []rune(out), 100)
	})
}

func TestCleanTrimsWhitespace(t *testing.T) {
	out, ok := sanitize.Clean("  hello  ", 100)
	assert.True(t, ok)
	assert.Equal(t, "hello", out)
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		"<b>Hello</b> world",
		"  padded value  ",
		strings.Repeat("x", 300),
	}

	for _, in := range inputs {
		once, ok := sanitize.Clean(in, 100)
		assert.True(t, ok)
		twice, ok := sanitize.Clean(once, 100)
		assert.True(t, ok)
		assert.Equal(t, once, twice)
	}
}
