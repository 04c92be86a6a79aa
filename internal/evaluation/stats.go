package evaluation

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jonathan/intern-eval/internal/types"
)

// RatedCount returns the number of criteria with a score above zero
func RatedCount(c types.Candidate) int {
	n := 0
	for _, item := range c.Criteria {
		if item.Rated() {
			n++
		}
	}
	return n
}

// Average returns the mean of the rated criteria with one decimal place,
// or "0" when nothing is rated. Exact half-way values round up.
func Average(c types.Candidate) string {
	sum, n := 0, 0
	for _, item := range c.Criteria {
		if item.Rated() {
			sum += item.Score
			n++
		}
	}
	if n == 0 {
		return "0"
	}
	return formatMean(sum, n)
}

// Progress returns round(100 * rated / total). A candidate without criteria reports 0.
func Progress(c types.Candidate) int {
	total := len(c.Criteria)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(RatedCount(c)) / float64(total) * 100))
}

func formatMean(sum, n int) string {
	// sum/n lands exactly on a .x5 boundary only when it is a binary fraction
	twentieths := 20 * sum
	if twentieths%n == 0 && (twentieths/n)%2 == 1 && isPowerOfTwo(n/gcd(sum, n)) {
		tenths := (twentieths/n + 1) / 2
		return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
	}
	return strconv.FormatFloat(float64(sum)/float64(n), 'f', 1, 64)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
