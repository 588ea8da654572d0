package textutil

import "github.com/antzucaro/matchr"

// Similarity computes the Jaro-Winkler similarity of the comparison keys of a
// and b. Returns 0 if either is blank.
func Similarity(a, b string) float64 {
	ka, kb := Fold(a), Fold(b)
	if ka == "" || kb == "" {
		return 0
	}
	return matchr.JaroWinkler(ka, kb, false)
}

// Closest returns the index of the candidate most similar to text along with
// its score. Blank candidates are ignored; -1 is returned when none qualify.
func Closest(text string, candidates []string) (int, float64) {
	best := -1
	var bestScore float64
	for i, candidate := range candidates {
		score := Similarity(text, candidate)
		if score == 0 {
			continue
		}
		if best == -1 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best, bestScore
}
