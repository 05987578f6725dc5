package sierra

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidNumber is returned for strings that are not Sierra record numbers.
var ErrInvalidNumber = errors.New("invalid Sierra number")

// ParseNumber normalizes a bib or item number to the 8 digit form the API expects.
// A leading "b" or "i" prefix and a trailing check digit are removed:
// "b12345678x", "123456789" and " 12345678" all yield "12345678".
func ParseNumber(sid string) (string, error) {
	sid = strings.TrimSpace(sid)
	if sid == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidNumber)
	}
	if c := sid[0]; c == 'b' || c == 'B' || c == 'i' || c == 'I' {
		sid = sid[1:]
	}
	switch len(sid) {
	case 8:
	case 9:
		sid = sid[:8]
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidNumber, sid)
	}
	for _, r := range sid {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidNumber, sid)
		}
	}
	return sid, nil
}

// ParseNumbers normalizes every number in sids and joins them with commas.
func ParseNumbers(sids []string) (string, error) {
	out := make([]string, 0, len(sids))
	for _, sid := range sids {
		n, err := ParseNumber(sid)
		if err != nil {
			return "", err
		}
		out = append(out, n)
	}
	return strings.Join(out, ","), nil
}

// SplitNumbers splits a comma separated list such as "b12345678,i87654321".
func SplitNumbers(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
