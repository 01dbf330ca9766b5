package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/spakit/core/sanitizer"
)

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"ann@example.com", "ann@example.com"},
		{"  Ann@Example.COM\n", "ann@example.com"},
		{"ann @example.com", "ann@example.com"},
		{"ann\x00@example.com", "ann@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.Email(tt.input))
		})
	}
}

func TestUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "local part", input: "bob@example.com", max: 18, want: "bob"},
		{name: "dots and tags removed", input: "Ann.Lee+news@example.com", max: 18, want: "annlee"},
		{name: "leading digits dropped", input: "42ann@example.com", max: 18, want: "ann"},
		{name: "non ascii dropped", input: "jürgen@example.com", max: 18, want: "jrgen"},
		{name: "truncated", input: "averyveryverylongusername@example.com", max: 18, want: "averyveryverylongu"},
		{name: "nothing usable", input: "123@example.com", max: 18, want: ""},
		{name: "plain text", input: "Ann Lee", max: 18, want: "annlee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.Username(tt.input, tt.max))
		})
	}
}

func TestSingleLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "user not found", sanitizer.SingleLine("  user\r\nnot \t found "))
	assert.Equal(t, "", sanitizer.SingleLine(" \n "))
}

func TestMaxLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "héll", sanitizer.MaxLength("héllo", 4))
	assert.Equal(t, "hi", sanitizer.MaxLength("hi", 4))
	assert.Equal(t, "", sanitizer.MaxLength("hi", 0))
}

func TestTrim(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b", sanitizer.Trim("  a b \n"))
	assert.Equal(t, "a b", sanitizer.TrimToLower("  A B \n"))
	assert.Equal(t, "ab\n", sanitizer.RemoveControlChars("a\x07b\n"))
}
