package faq

import (
	"math"
	"testing"
)

func TestRatio_Identical(t *testing.T) {
	for _, s := range []string{"", "a", "hello world", "päßword reset"} {
		if got := Ratio(s, s); got != 1.0 {
			t.Errorf("Ratio(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestRatio_Disjoint(t *testing.T) {
	if got := Ratio("abc", "xyz"); got != 0 {
		t.Fatalf("Ratio disjoint = %v, want 0", got)
	}
}

func TestRatio_OneEmpty(t *testing.T) {
	if got := Ratio("", "abc"); got != 0 {
		t.Fatalf("Ratio(\"\", \"abc\") = %v, want 0", got)
	}
	if got := Ratio("abc", ""); got != 0 {
		t.Fatalf("Ratio(\"abc\", \"\") = %v, want 0", got)
	}
}

func TestRatio_KnownValues(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		// 2*M/T with M = total matched runes, T = combined length.
		{"abcd", "bcd", 2.0 * 3.0 / 7.0},
		// Greedy matching blocks "ab" + "c" give M=3, less than the LCS
		// length 4 for this pair.
		{"abcabba", "cbabac", 2.0 * 3.0 / 13.0},
		{"one two", "one three", 2.0 * 5.0 / 16.0}, // "one t" common prefix
		{"refund", "refunds", 2.0 * 6.0 / 13.0},
		{"hello", "help", 2.0 * 3.0 / 9.0},
	}
	for _, tc := range tests {
		got := Ratio(tc.a, tc.b)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Ratio(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestRatio_SymmetricAndBounded(t *testing.T) {
	pairs := [][2]string{
		{"how do i reset my password?", "how do i change my password?"},
		{"track my order", "where is my order"},
		{"refund", "refunds"},
		{"", "x"},
	}
	for _, p := range pairs {
		ab := Ratio(p[0], p[1])
		ba := Ratio(p[1], p[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Ratio not symmetric for (%q, %q): %v vs %v", p[0], p[1], ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Errorf("Ratio(%q, %q) = %v out of [0,1]", p[0], p[1], ab)
		}
	}
}

func TestRatio_SimilarBeatsDissimilar(t *testing.T) {
	q := "how do i reset my password"
	close := Ratio(q, "how do i reset my password?")
	far := Ratio(q, "do you ship internationally?")
	if close <= far {
		t.Fatalf("expected close match (%v) > far match (%v)", close, far)
	}
	if close < 0.9 {
		t.Fatalf("near-identical strings scored too low: %v", close)
	}
}

func TestRatio_Unicode(t *testing.T) {
	// Rune-based, not byte-based: multi-byte runes count once.
	got := Ratio("héllo", "héllo")
	if got != 1.0 {
		t.Fatalf("Ratio unicode identical = %v, want 1.0", got)
	}
	// "héllo" vs "hello": common blocks "h" + "llo" = 4 of 10 runes.
	got = Ratio("héllo", "hello")
	want := 2.0 * 4.0 / 10.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Ratio(héllo, hello) = %v, want %v", got, want)
	}
}
