// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize provides the small vocabulary of pure string
// normalization functions the field model and matcher build on: weak and
// strong text folding, and per-type normalizers for DOIs, URLs, months,
// and ISBNs. Every normalizer either returns the normal form or signals
// that the input is invalid; none of them observe any state beyond their
// argument.
package normalize

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// StrWeak NFKD-folds s, strips diacritics, lowercases, and collapses runs
// of ASCII whitespace to a single space while preserving punctuation. It
// is idempotent: StrWeak(StrWeak(s)) == StrWeak(s).
func StrWeak(s string) string {
	decomposed := norm.NFKD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // combining mark dropped by the diacritic strip
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return collapseSpace(b.String())
}

// Str applies StrWeak, then drops every character outside [a-z0-9 ],
// collapses whitespace, and trims. Used for fuzzy comparison between two
// field values. Idempotent.
func Str(s string) string {
	weak := StrWeak(s)

	var b strings.Builder
	b.Grow(len(weak))
	for _, r := range weak {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(collapseSpace(b.String()))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// doiPrefix strips a leading doi.org URL (or a bare host/path prefix
// ending right before the "10." registrant segment) from a DOI string.
var doiPrefix = regexp.MustCompile(`(?i)^.*?(10\.\d{4,9}/\S+)$`)

// doiShape validates the bare-DOI form after prefix stripping.
var doiShape = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

// DOI strips any "http[s]://(dx.)?doi.org/" (or similar host-path) prefix,
// lowercases, and trims the result. It returns an error if what remains
// does not match 10.\d{4,9}/\S+.
func DOI(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("normalize: empty DOI")
	}

	candidate := s
	if m := doiPrefix.FindStringSubmatch(s); m != nil {
		candidate = m[1]
	}
	candidate = strings.ToLower(strings.TrimSpace(candidate))

	if !doiShape.MatchString(candidate) {
		return "", fmt.Errorf("normalize: %q is not a valid DOI", s)
	}
	return candidate, nil
}

// URL parses s, requires an http/https scheme, and returns (host,
// path+query) with spaces in the query percent-encoded as "+". It fails
// on any other scheme or malformed URL.
func URL(s string) (host, pathQuery string, err error) {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil {
		return "", "", fmt.Errorf("normalize: invalid URL %q: %w", s, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", fmt.Errorf("normalize: unsupported scheme in %q", s)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("normalize: missing host in %q", s)
	}

	path := u.EscapedPath()
	if u.RawQuery != "" {
		path += "?" + strings.ReplaceAll(u.RawQuery, "%20", "+")
	}
	return strings.ToLower(u.Host), path, nil
}

// enMonths maps full and 3-letter English month names (lowercase) to
// their decimal string. This is the closed EN_MONTHS vocabulary spec.md
// §4.1 requires at minimum.
var enMonths = map[string]string{
	"jan": "1", "january": "1",
	"feb": "2", "february": "2",
	"mar": "3", "march": "3",
	"apr": "4", "april": "4",
	"may": "5",
	"jun": "6", "june": "6",
	"jul": "7", "july": "7",
	"aug": "8", "august": "8",
	"sep": "9", "sept": "9", "september": "9",
	"oct": "10", "october": "10",
	"nov": "11", "november": "11",
	"dec": "12", "december": "12",
}

// Month maps a localized month name to its decimal string (1..12). If s
// already parses as an integer in 1..12 it is returned unchanged. Any
// other input is returned unchanged (normalization failure is silent here
// since month is an advisory display field, not an identifier).
func Month(s string) string {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.Atoi(trimmed); err == nil && n >= 1 && n <= 12 {
		return trimmed
	}
	if v, ok := enMonths[strings.ToLower(trimmed)]; ok {
		return v
	}
	return s
}

// nonISBNChar matches separators stripped before ISBN validation.
var nonISBNChar = regexp.MustCompile(`[-\s]`)

// ISBN strips separators and validates the checksum for ISBN-10/13,
// returning the cleaned digit string or an error.
func ISBN(s string) (string, error) {
	cleaned := strings.ToUpper(nonISBNChar.ReplaceAllString(strings.TrimSpace(s), ""))
	switch len(cleaned) {
	case 10:
		if !validISBN10(cleaned) {
			return "", fmt.Errorf("normalize: invalid ISBN-10 checksum in %q", s)
		}
	case 13:
		if !validISBN13(cleaned) {
			return "", fmt.Errorf("normalize: invalid ISBN-13 checksum in %q", s)
		}
	default:
		return "", fmt.Errorf("normalize: %q is not 10 or 13 digits", s)
	}
	return cleaned, nil
}

func validISBN10(s string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		c := s[i]
		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case c == 'X' && i == 9:
			v = 10
		default:
			return false
		}
		sum += v * (10 - i)
	}
	return sum%11 == 0
}

func validISBN13(s string) bool {
	sum := 0
	for i := 0; i < 13; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		v := int(c - '0')
		if i%2 == 0 {
			sum += v
		} else {
			sum += v * 3
		}
	}
	return sum%10 == 0
}
