package palette

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"#ECC94B", "#ecc94b"},
		{"ecc94b", "#ecc94b"},
		{" #abc ", "#abc"},
		{"FFF", "#fff"},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.input)
		if err != nil {
			t.Errorf("Normalize(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeInvalid(t *testing.T) {
	for _, input := range []string{"", "red", "#12", "#1234567", "#ggg", "url(x)"} {
		if _, err := Normalize(input); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("Normalize(%q): expected ErrInvalidColor, got %v", input, err)
		}
	}
}

func TestParse(t *testing.T) {
	fallback := []string{"#000000"}
	tests := []struct {
		input string
		want  []string
	}{
		{"ecc94b,#4A5568", []string{"#ecc94b", "#4a5568"}},
		{" fff , , 000 ", []string{"#fff", "#000"}},
		{"", fallback},
		{" , ", fallback},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input, fallback)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.input, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}

	if _, err := Parse("fff,nope", fallback); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}

func TestFromSlice(t *testing.T) {
	got, err := FromSlice([]string{"ABC", "#123456"})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if diff := cmp.Diff([]string{"#abc", "#123456"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if _, err := FromSlice([]string{"x"}); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}
