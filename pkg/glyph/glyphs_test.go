package glyph

import "testing"

func TestIntensityScale(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{0, " "},
		{-1, " "},
		{1, "."},
		{2, "o"},
		{3, "O"},
		{4, "#"},
		{17, "#"},
	}
	for _, tc := range cases {
		if got := Intensity(tc.count); got != tc.want {
			t.Fatalf("count %d: got %q, want %q", tc.count, got, tc.want)
		}
	}
}
