package glob

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"**", -100},
		{"**/*", -99},
		// 2*len + 10*slashes - wildcard penalties
		{"a/report.txt", 2*12 + 10},
		{"a/*.txt", 2*7 + 10 - 10},
		{"*.txt", 2*5 - 20},
		{"file?.txt", 2*9 - 2},
		{"[0-9].csv", 2*9 - 2 - 2},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			if got := Score(tt.pattern); got != tt.want {
				t.Errorf("Score(%q) = %d, want %d", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestScoreOrdering(t *testing.T) {
	ordered := []string{"**", "**/*", "a/*.txt", "a/report.txt"}
	for i := 0; i < len(ordered)-1; i++ {
		lo, hi := Score(ordered[i]), Score(ordered[i+1])
		if lo >= hi {
			t.Errorf("Score(%q) = %d, expected less than Score(%q) = %d",
				ordered[i], lo, ordered[i+1], hi)
		}
	}
}

func TestScoreLeadingWildcardPenalty(t *testing.T) {
	if Score("*.txt") >= Score("a*.txt") {
		t.Errorf("leading wildcard should score below embedded wildcard")
	}
}
