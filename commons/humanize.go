package commons

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var magnitudes = [...]string{"", "K", "M", "G", "T", "P"}

// HumanFormat renders num with a K/M/G/T/P suffix and two decimals.
// 999 -> "999.00", 1000 -> "1.00K", 10000000 -> "10.00M".
// Anything past P stays in P.
func HumanFormat(num float64) string {
	magnitude := 0
	for math.Abs(num) >= 1000 && magnitude < len(magnitudes)-1 {
		magnitude++
		num /= 1000.0
	}
	return fmt.Sprintf("%.2f%s", num, magnitudes[magnitude])
}

// RoundRate rounds a percent to two decimals and prints it in its shortest form,
// keeping at least one fractional digit: 30 -> "30.0", 29.966 -> "29.97".
func RoundRate(rate float64) string {
	rounded := math.Round(rate*100) / 100
	s := strconv.FormatFloat(rounded, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
