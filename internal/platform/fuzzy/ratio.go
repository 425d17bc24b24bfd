package fuzzy

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Ratio is the normalized Indel similarity of a and b on a 0-100 scale.
// Inputs are compared as given; callers normalize first.
func Ratio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la+lb == 0 {
		return 100
	}
	if la == 0 || lb == 0 {
		return 0
	}
	if a == b {
		return 100
	}

	lcs := edlib.LCS(a, b)
	return 100 * float64(2*lcs) / float64(la+lb)
}

// PartialRatio scores the shorter string against the best-aligned window
// of the longer one. An exact substring scores 100.
func PartialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	best := partialWindows(ra, rb)
	if len(ra) == len(rb) && best < 100 {
		if swapped := partialWindows(rb, ra); swapped > best {
			best = swapped
		}
	}

	return best
}

func partialWindows(short, long []rune) float64 {
	shortStr := string(short)
	if strings.Contains(string(long), shortStr) {
		return 100
	}

	n, m := len(short), len(long)
	best := 0.0
	consider := func(window []rune) {
		if score := Ratio(shortStr, string(window)); score > best {
			best = score
		}
	}

	for i := 1; i < n && i <= m; i++ {
		consider(long[:i])
	}
	for i := 0; i+n <= m; i++ {
		consider(long[i : i+n])
		if best == 100 {
			return best
		}
	}
	for i := m - n + 1; i < m; i++ {
		if i <= 0 {
			continue
		}
		consider(long[i:])
	}

	return best
}

// TokenSortRatio compares both strings after sorting their tokens.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortedJoin(tokens(a)), sortedJoin(tokens(b)))
}

// PartialTokenSortRatio is PartialRatio over token-sorted strings.
func PartialTokenSortRatio(a, b string) float64 {
	return PartialRatio(sortedJoin(tokens(a)), sortedJoin(tokens(b)))
}

// TokenSetRatio compares the shared tokens against each side's remainder.
// A token subset scores 100.
func TokenSetRatio(a, b string) float64 {
	sect, diffAB, diffBA := splitTokenSets(a, b)
	if len(sect) > 0 && (len(diffAB) == 0 || len(diffBA) == 0) {
		return 100
	}

	t0 := strings.Join(sect, " ")
	t1 := strings.TrimSpace(t0 + " " + strings.Join(diffAB, " "))
	t2 := strings.TrimSpace(t0 + " " + strings.Join(diffBA, " "))

	best := Ratio(t1, t2)
	if t0 != "" {
		best = max(best, Ratio(t0, t1), Ratio(t0, t2))
	}

	return best
}

// PartialTokenSetRatio is 100 when any token is shared, otherwise the
// partial ratio of the non-shared tokens.
func PartialTokenSetRatio(a, b string) float64 {
	sect, diffAB, diffBA := splitTokenSets(a, b)
	if len(sect) > 0 {
		return 100
	}

	return PartialRatio(strings.Join(diffAB, " "), strings.Join(diffBA, " "))
}

func splitTokenSets(a, b string) (sect, diffAB, diffBA []string) {
	setA := toSet(tokens(a))
	setB := toSet(tokens(b))

	for tok := range setA {
		if _, ok := setB[tok]; ok {
			sect = append(sect, tok)
			continue
		}
		diffAB = append(diffAB, tok)
	}
	for tok := range setB {
		if _, ok := setA[tok]; !ok {
			diffBA = append(diffBA, tok)
		}
	}

	sort.Strings(sect)
	sort.Strings(diffAB)
	sort.Strings(diffBA)
	return sect, diffAB, diffBA
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		out[item] = struct{}{}
	}
	return out
}

func sortedJoin(items []string) string {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}
