package compiler

// suggestThreshold is the maximum edit distance for "did you mean"
// suggestions. Anything further away is noise, not a typo.
const suggestThreshold = 2

// suggest returns the candidate nearest to unknown by edit distance,
// if within the threshold. Candidates are scanned in order and ties keep
// the first encountered, so suggestion output is deterministic for a
// given registry state.
func suggest(unknown string, candidates []string) (string, bool) {
	best := ""
	bestDist := suggestThreshold + 1

	for _, candidate := range candidates {
		d := editDistance(unknown, candidate)
		if d < bestDist {
			best = candidate
			bestDist = d
		}
	}

	return best, bestDist <= suggestThreshold
}

// editDistance computes the Levenshtein distance between two strings,
// operating on runes so multibyte characters count once.
func editDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
