// Package seqcode formats and parses the year-scoped document codes shared by
// quotes, briefings and formulas: a prefix, the two-digit year, and a
// four-digit zero-padded sequence, e.g. Q250008.
package seqcode

import (
	"fmt"
	"strconv"
	"unicode"
)

// YearDigits reduces a full year to its two-digit code component.
func YearDigits(year int) int {
	return year % 100
}

// Format assembles a code from its components. seq values beyond 9999 widen
// the field rather than wrap; uniqueness is what matters, not the padding.
func Format(prefix string, yearDigits, seq int) string {
	return fmt.Sprintf("%s%02d%04d", prefix, yearDigits, seq)
}

// Parse breaks a code into prefix, two-digit year and sequence. The prefix is
// any leading run of letters; everything after must be at least six digits.
func Parse(code string) (prefix string, yearDigits, seq int, err error) {
	i := 0
	for i < len(code) && unicode.IsLetter(rune(code[i])) {
		i++
	}
	if i == 0 {
		return "", 0, 0, fmt.Errorf("code %q has no prefix", code)
	}
	digits := code[i:]
	if len(digits) < 6 {
		return "", 0, 0, fmt.Errorf("code %q too short", code)
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return "", 0, 0, fmt.Errorf("code %q has non-digit sequence", code)
		}
	}
	yearDigits, err = strconv.Atoi(digits[:2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("code %q: %w", code, err)
	}
	seq, err = strconv.Atoi(digits[2:])
	if err != nil {
		return "", 0, 0, fmt.Errorf("code %q: %w", code, err)
	}
	return code[:i], yearDigits, seq, nil
}

// ValidPrefix reports whether prefix is a non-empty run of uppercase letters.
func ValidPrefix(prefix string) bool {
	if prefix == "" {
		return false
	}
	for _, r := range prefix {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
