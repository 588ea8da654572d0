package textutil

// IndexAllFold returns the rune offsets of every occurrence of needle in
// haystack, comparing rune windows with Fold. Occurrences may overlap.
func IndexAllFold(haystack, needle string) []int {
	hay := []rune(haystack)
	size := len([]rune(needle))
	if size == 0 || size > len(hay) {
		return nil
	}
	key := Fold(needle)
	var positions []int
	for i := 0; i+size <= len(hay); i++ {
		if Fold(string(hay[i:i+size])) == key {
			positions = append(positions, i)
		}
	}
	return positions
}

// Nearest returns the element of positions closest to target. Ties resolve to
// the earlier position. It returns -1 when positions is empty.
func Nearest(positions []int, target int) int {
	best := -1
	bestDist := 0
	for _, pos := range positions {
		dist := pos - target
		if dist < 0 {
			dist = -dist
		}
		if best == -1 || dist < bestDist {
			best = pos
			bestDist = dist
		}
	}
	return best
}
