package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNTD renders an integer amount with thousand separators, e.g. "NT$1,250".
func FormatNTD(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%sNT$%s", sign, formatThousand(amount))
}

// ParseNTDToInt parses "NT$ 1,000" or "1000" into an integer amount.
func ParseNTDToInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToLower(s), "nt$")
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(",", "", " ", "")
	s = replacer.Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid NTD amount")
	}
	return strconv.ParseInt(s, 10, 64)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
