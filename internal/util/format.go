package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatIndian renders a monetary value with Indian-style digit grouping and
// two decimal places: 1234567.5 -> "12,34,567.50". The last three integer
// digits form one group, every pair before that forms another.
func FormatIndian(d decimal.Decimal) string {
	s := d.StringFixed(2)

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	grouped := groupIndian(intPart)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(grouped)
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	groups := []string{digits[len(digits)-3:]}
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",")
}
