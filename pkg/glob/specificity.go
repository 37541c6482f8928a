package glob

import "strings"

// Score rates how narrowly a pattern targets paths; higher is more
// specific. Literal characters and path depth raise the score, wildcards
// lower it. The catch-all patterns "**" and "**/*" sort below everything
// else regardless of the general formula.
func Score(pattern string) int {
	if pattern == "**" {
		return -100
	}
	if pattern == "**/*" {
		return -99
	}

	score := 2*len(pattern) + 10*strings.Count(pattern, "/")
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*':
			if i == 0 {
				score -= 20
			} else {
				score -= 10
			}
		case '?', '!', ']', '[', '{':
			score -= 2
		}
	}
	return score
}
