package services

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?(?:\(\d{1,4}\)[\s.-]?)?\d{1,4}(?:[\s.-]?\(?\d{1,4}\)?){1,6}`)

	titleLines = map[string]struct{}{
		"resume":           {},
		"résumé":           {},
		"cv":               {},
		"curriculum vitae": {},
	}
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// ContactInfo holds the best-effort contact fields found in resume text.
// Empty strings mean not found.
type ContactInfo struct {
	Name  string
	Phone string
	Email string
}

func ExtractContactInfo(text string) ContactInfo {
	return ContactInfo{
		Name:  ExtractName(text),
		Phone: ExtractPhone(text),
		Email: ExtractEmail(text),
	}
}

func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

// ExtractPhone returns the first phone-like run with 7 to 15 digits,
// normalized to an optional leading "+" followed by digits only.
func ExtractPhone(text string) string {
	// Digits inside e-mail addresses are not phone numbers.
	text = emailPattern.ReplaceAllString(text, " ")

	for _, candidate := range phonePattern.FindAllString(text, -1) {
		normalized := normalizePhone(candidate)
		digits := strings.TrimPrefix(normalized, "+")
		if normalized == digits && isYearRange(digits) {
			continue
		}
		if len(digits) >= minPhoneDigits && len(digits) <= maxPhoneDigits {
			return normalized
		}
	}

	return ""
}

// isYearRange reports whether digits are two 19xx/20xx years run together,
// as in "2018-2022" or "2015 2019".
func isYearRange(digits string) bool {
	return len(digits) == 8 && isYear(digits[:4]) && isYear(digits[4:])
}

func isYear(s string) bool {
	return strings.HasPrefix(s, "19") || strings.HasPrefix(s, "20")
}

func normalizePhone(s string) string {
	var b strings.Builder
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "+") {
		b.WriteByte('+')
	}
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExtractName picks the first non-empty line that is neither contact data
// nor a document title such as "Resume".
func ExtractName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if emailPattern.MatchString(line) || ExtractPhone(line) != "" {
			continue
		}
		if _, ok := titleLines[strings.ToLower(strings.Trim(line, " :-"))]; ok {
			continue
		}
		if !containsLetter(line) {
			continue
		}
		return line
	}

	return ""
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
