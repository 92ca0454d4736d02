package textutil

import (
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
)

// NormalizeName lower cases a name and drops everything that is not a letter
// or a digit, ex. "Mr. Mime" -> "mrmime". The gender symbols are kept as
// "f" and "m" so "Nidoran♀" and "nidoran_f" are the same name.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r == '♀':
			b.WriteRune('f')
		case r == '♂':
			b.WriteRune('m')
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ClosestMatch returns the candidate most similar to `name` by Jaro-Winkler
// similarity on normalized names, only if that similarity is at least `threshold`.
//
// Candidates whose digits differ from the digits of `name` never match
// (Porygon2 is not Porygon), and a tie between two different names is no
// match at all.
func ClosestMatch(name string, candidates []string, threshold float64) (string, float64, bool) {
	target := NormalizeName(name)
	targetDigits := digits(target)

	var mostSimilarity, runnerUp float64
	var mostSimilar, mostSimilarNormalized string
	for _, c := range candidates {
		normalized := NormalizeName(c)
		if digits(normalized) != targetDigits {
			continue
		}
		similarity := matchr.JaroWinkler(target, normalized, false)
		switch {
		case similarity > mostSimilarity:
			if normalized != mostSimilarNormalized {
				runnerUp = mostSimilarity
			}
			mostSimilarity = similarity
			mostSimilar = c
			mostSimilarNormalized = normalized
		case similarity > runnerUp && normalized != mostSimilarNormalized:
			runnerUp = similarity
		}
	}

	if mostSimilarity < threshold || mostSimilar == "" || runnerUp == mostSimilarity {
		return "", mostSimilarity, false
	}
	return mostSimilar, mostSimilarity, true
}
