package util

import (
	"strings"
	"testing"
)

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	got := CleanText("hello\t\n  world\r\n again", 6000)
	want := "hello world again"
	if got != want {
		t.Fatalf("CleanText = %q, want %q", got, want)
	}
}

func TestCleanTextIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"plain text",
		"a\tb\nc\r\nd",
		strings.Repeat("word ", 3000),
	}
	for _, in := range inputs {
		once := CleanText(in, 6000)
		twice := CleanText(once, 6000)
		if once != twice {
			t.Fatalf("CleanText not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestCleanTextTruncationBoundary(t *testing.T) {
	limit := 6000
	input := strings.Repeat("x", limit+1)
	got := CleanText(input, limit)
	if TextLength(got) != limit {
		t.Fatalf("expected %d characters after truncation, got %d", limit, TextLength(got))
	}
}

func TestCleanTextUnderLimitUnchanged(t *testing.T) {
	input := strings.Repeat("y", 100)
	if got := CleanText(input, 6000); got != input {
		t.Fatalf("expected input unchanged, got %q", got)
	}
}

func TestCleanTextTruncatesRunesNotBytes(t *testing.T) {
	input := strings.Repeat("é", 10)
	got := CleanText(input, 5)
	if got != strings.Repeat("é", 5) {
		t.Fatalf("expected 5 runes, got %q", got)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  User@Example.COM "); got != "user@example.com" {
		t.Fatalf("NormalizeEmail = %q", got)
	}
}
