package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reCPF   = regexp.MustCompile(`^[0-9]{11}$`)
	reURL   = regexp.MustCompile(`^https?://[^\s]+$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// CPF accepts the national tax id as exactly 11 digits, stripping common
// punctuation first.
func CPF(s string) (string, bool) {
	s = strings.NewReplacer(".", "", "-", "", " ", "").Replace(strings.TrimSpace(s))
	return s, reCPF.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 120 {
		return "", false
	}
	return s, true
}

// Password enforces a simple length window plus character classes.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 72 { // bcrypt input cap
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}

// ID parses a positive integer path parameter.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n > 0
}

func URL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 2048 {
		return "", false
	}
	return s, reURL.MatchString(s)
}

// Page clamps pagination query values rather than rejecting them.
func Page(pageStr, sizeStr string, maxSize int) (page, size int) {
	page, size = 1, 20
	if n, err := strconv.Atoi(strings.TrimSpace(pageStr)); err == nil && n >= 1 {
		page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(sizeStr)); err == nil && n >= 1 {
		size = n
	}
	if size > maxSize {
		size = maxSize
	}
	return page, size
}
