package extractors

import (
	"testing"
)

func TestTextFromContentStream(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "single Tj operator",
			stream: "BT\n/F1 12 Tf\n(Hello World) Tj\nET",
			want:   "Hello World",
		},
		{
			name:   "TJ array with kerning offsets",
			stream: "[(Hel) -20 (lo) -100 ( World)] TJ",
			want:   "Hello World",
		},
		{
			name:   "quote operator starts a new line",
			stream: "(first) Tj\n(second) '",
			want:   "first second",
		},
		{
			name:   "Td positioning separates words",
			stream: "(one) Tj\n10 0 Td\n(two) Tj",
			want:   "one two",
		},
		{
			name:   "T star breaks lines then collapses",
			stream: "(alpha) Tj\nT*\n(beta) Tj",
			want:   "alpha beta",
		},
		{
			name:   "non-text operators are ignored",
			stream: "q\n1 0 0 1 50 700 cm\n/Im0 Do\nQ",
			want:   "",
		},
		{
			name:   "empty stream",
			stream: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textFromContentStream([]byte(tt.stream))
			if got != tt.want {
				t.Errorf("textFromContentStream() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain text", "Hello", "Hello"},
		{"escaped parens", `a\(b\)c`, "a(b)c"},
		{"escaped backslash", `a\\b`, `a\b`},
		{"newline and tab escapes", `a\nb\tc`, "a\nb\tc"},
		{"octal space", `a\040b`, "a b"},
		{"short octal", `\7x`, "\x07x"},
		{"trailing backslash kept literally", `abc\`, `abc\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodePDFString([]byte(tt.raw))
			if got != tt.want {
				t.Errorf("decodePDFString(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"runs collapse to single spaces", "a  b\t\nc", "a b c"},
		{"leading whitespace dropped", "  abc", "abc"},
		{"non-printable stripped", "a\x00b\x01c", "abc"},
		{"unicode preserved", "café 中文", "café 中文"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collapseWhitespace(tt.in)
			if got != tt.want {
				t.Errorf("collapseWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
