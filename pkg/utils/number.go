package utils

import "math"

func RoundWithFourDecimalPlaces(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*10000) / 10000
}
