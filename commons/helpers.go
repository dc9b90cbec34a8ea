package commons

import (
	"strconv"
	"strings"
)

var newHelperError = NewTaggedError("Helper")

func cleanNumber(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// GetInt parses string into int64
// s: string, comma allowed. Empty string or "-" is zero.
func GetInt(s string) (int64, error) {
	val, err := strconv.ParseInt(cleanNumber(s), 10, 64)
	if err != nil {
		return 0, newHelperError(err.Error())
	}
	return val, nil
}

// GetDouble parses string into float64
// s: string, comma allowed. Empty string or "-" is zero.
func GetDouble(s string) (float64, error) {
	val, err := strconv.ParseFloat(cleanNumber(s), 64)
	if err != nil {
		return 0, newHelperError(err.Error())
	}
	return val, nil
}
