package audit

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Pool size contributed by each recognized character class.
const (
	lowerPool  = 26
	upperPool  = 26
	digitPool  = 10
	symbolPool = 33
)

// symbolSet is the fixed set counted towards the symbol pool. Runes outside
// the four classes (e.g. non-ASCII letters) contribute nothing.
const symbolSet = "!@#$%^&*()_+=-{}[]:;\"'<,>.?/\\|`~"

// EstimateEntropy returns the keyspace entropy of the password in bits:
// rune count times log2 of the pool implied by the character classes
// present, rounded to two decimals. Zero when no recognized class appears.
//
// This is an upper bound driven by variety and length alone; "aaaaaaaa" and
// "kxqjzwpl" share the same pool. Realistic guessability is what the
// strength estimator is for.
func EstimateEntropy(password string) float64 {
	var pool float64
	if strings.IndexFunc(password, isLower) >= 0 {
		pool += lowerPool
	}
	if strings.IndexFunc(password, isUpper) >= 0 {
		pool += upperPool
	}
	if strings.IndexFunc(password, isDigit) >= 0 {
		pool += digitPool
	}
	if strings.ContainsAny(password, symbolSet) {
		pool += symbolPool
	}

	if pool == 0 {
		return 0
	}

	bits := float64(utf8.RuneCountInString(password)) * math.Log2(pool)
	return math.Round(bits*100) / 100
}

func isLower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
