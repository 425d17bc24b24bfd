// Package fuzzy scores free text against candidate names using the
// weighted-ratio family of string similarity metrics.
package fuzzy

import "unicode/utf8"

const (
	unbaseScale         = 0.95
	partialScale        = 0.9
	longPartialScale    = 0.6
	partialLenRatio     = 1.5
	longPartialLenRatio = 8.0
)

// WRatio normalizes both inputs and returns the best of the plain, token
// and partial ratios, each weighted by how much the lengths differ.
// Empty input after normalization scores 0.
func WRatio(a, b string) float64 {
	return wratioProcessed(Normalize(a), Normalize(b))
}

func wratioProcessed(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return 0
	}

	lenRatio := float64(max(la, lb)) / float64(min(la, lb))
	score := Ratio(a, b)

	if lenRatio < partialLenRatio {
		tokenScore := max(TokenSortRatio(a, b), TokenSetRatio(a, b))
		return max(score, tokenScore*unbaseScale)
	}

	scale := partialScale
	if lenRatio > longPartialLenRatio {
		scale = longPartialScale
	}

	score = max(score, PartialRatio(a, b)*scale)
	partialToken := max(PartialTokenSortRatio(a, b), PartialTokenSetRatio(a, b))
	return max(score, partialToken*unbaseScale*scale)
}

// Match is the best candidate returned by ExtractOne.
type Match struct {
	Index int
	Value string
	Score float64
}

// ExtractOne scores query against every choice with WRatio and returns the
// highest scorer. Earlier choices win ties. ok is false when query or
// choices are empty.
func ExtractOne(query string, choices []string) (Match, bool) {
	processed := Normalize(query)
	if processed == "" || len(choices) == 0 {
		return Match{}, false
	}

	best := Match{Index: -1, Score: -1}
	for i, choice := range choices {
		score := wratioProcessed(processed, Normalize(choice))
		if score > best.Score {
			best = Match{Index: i, Value: choice, Score: score}
		}
	}

	return best, best.Index >= 0
}
