package scheduler

import "math/big"

// newerPostID compara IDs de snowflake em ordem numérica. IDs que não são
// decimais caem para tamanho e depois ordem lexicográfica.
func newerPostID(candidate, current string) bool {
	if candidate == "" {
		return false
	}
	if current == "" {
		return true
	}

	a, okA := new(big.Int).SetString(candidate, 10)
	b, okB := new(big.Int).SetString(current, 10)
	if okA && okB {
		return a.Cmp(b) > 0
	}

	if len(candidate) != len(current) {
		return len(candidate) > len(current)
	}
	return candidate > current
}

func maxPostID(current, candidate string) string {
	if newerPostID(candidate, current) {
		return candidate
	}
	return current
}
