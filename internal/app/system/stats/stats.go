// Package stats holds the numeric helpers behind the analytics reads.
// Averages are computed here, in Go, over fetched rating vectors rather
// than inside store pipelines, so the arithmetic is unit-testable and the
// "flatten across questions" rule lives in exactly one place.
package stats

// FlattenMean returns the mean of every individual rating across all
// vectors: each rating counts once, never a mean of per-review means.
// The second return is false when there are no ratings at all.
func FlattenMean(vectors [][]int) (float64, bool) {
	var sum, count int
	for _, v := range vectors {
		for _, r := range v {
			sum += r
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return float64(sum) / float64(count), true
}

// PerQuestionMeans returns one mean per question position. Vectors shorter
// than width contribute only to the positions they cover; positions with
// no ratings are reported as 0 with ok=false in the parallel slice.
func PerQuestionMeans(vectors [][]int, width int) ([]float64, []bool) {
	sums := make([]int, width)
	counts := make([]int, width)
	for _, v := range vectors {
		for i, r := range v {
			if i >= width {
				break
			}
			sums[i] += r
			counts[i]++
		}
	}
	means := make([]float64, width)
	ok := make([]bool, width)
	for i := range sums {
		if counts[i] > 0 {
			means[i] = float64(sums[i]) / float64(counts[i])
			ok[i] = true
		}
	}
	return means, ok
}
