package util

import (
	"math"
	"math/rand"
	"strconv"
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func RandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// Unavailable is rendered for any metric whose fetch failed or whose
// upstream had no data. Missing values never render as 0 or blank.
const Unavailable = "N/A"

// FormatAmount renders a price to two decimal places, or the unavailable
// marker for nil.
func FormatAmount(v *float64) string {
	if v == nil {
		return Unavailable
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// FormatChange renders a percentage change as its absolute value to two
// decimal places plus an increase flag. Direction is shown by the flag,
// not by a minus sign.
func FormatChange(v *float64) (string, bool) {
	if v == nil {
		return Unavailable, false
	}
	return strconv.FormatFloat(math.Abs(*v), 'f', 2, 64), *v > 0
}
