// internal/util/util_test.go
package util

import "testing"

// TestTruncateRunes checks rune-aware truncation with the ellipsis
// marker, including multibyte input.
func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("short", 10); got != "short" {
		t.Fatalf("expected untruncated string, got %q", got)
	}
	if got := TruncateRunes("abcdefgh", 5); got != "abcde…" {
		t.Fatalf("expected truncated string with ellipsis, got %q", got)
	}
	if got := TruncateRunes("日本語のテキスト", 3); got != "日本語…" {
		t.Fatalf("expected rune-aware truncation, got %q", got)
	}
}

// TestMIMEByExtension verifies the png/jpeg split on file extensions.
func TestMIMEByExtension(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"factory.png", "image/png"},
		{"FACTORY.PNG", "image/png"},
		{"factory.jpg", "image/jpeg"},
		{"factory.jpeg", "image/jpeg"},
		{"factory", "image/jpeg"},
	}

	for _, tc := range cases {
		if got := MIMEByExtension(tc.path); got != tc.want {
			t.Fatalf("MIMEByExtension(%q) = %q, expected %q", tc.path, got, tc.want)
		}
	}
}

// TestSlugify checks the slug rules used for output filenames.
func TestSlugify(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"IMG 0123.png", "img-0123-png"},
		{"gemma3:4b", "gemma3_4b"},
		{"--loading dock--", "loading-dock"},
		{"warehouse_aisle_7", "warehouse_aisle_7"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.input); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, expected %q", tc.input, got, tc.want)
		}
	}
}
