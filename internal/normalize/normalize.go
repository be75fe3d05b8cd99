/*
Responsibilities
- Map a raw (artist, title) pair to the canonical lookup path used by the
  lyrics source
- Stay pure: no I/O, no state, no clock

The source's addressing scheme is sensitive to the exact ordering of the
steps below, so they must not be reordered.
*/
package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	parentheticalPattern = regexp.MustCompile(`\(([^)]*)\)`)
	featSuffixPattern    = regexp.MustCompile(`(?i)\s*-?\s*\bfeat\b.*$`)
	whitespaceRunPattern = regexp.MustCompile(`\s+`)
	hyphenRunPattern     = regexp.MustCompile(`-{2,}`)
)

// asciiFolder decomposes accented characters and strips the combining
// marks, e.g. "é" -> "e". Runes with no ASCII base form survive folding
// and are dropped afterwards.
var asciiFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// LyricsPath derives the lookup path for an (artist, title) pair:
// "/" + Artist + "-" + title + "-lyrics", with the artist's first character
// capitalized. Deterministic; identical inputs always yield identical paths.
// Inputs that are not structurally valid UTF-8 fail with a
// NormalizationError.
func LyricsPath(artist, title string) (string, error) {
	if !utf8.ValidString(artist) {
		return "", &NormalizationError{
			Message: "artist is not valid UTF-8",
			Cause:   ErrCauseInvalidEncoding,
		}
	}
	if !utf8.ValidString(title) {
		return "", &NormalizationError{
			Message: "title is not valid UTF-8",
			Cause:   ErrCauseInvalidEncoding,
		}
	}

	artistToken := capitalizeFirst(FormatToken(artist))
	titleToken := FormatToken(title)

	return "/" + artistToken + "-" + titleToken + "-lyrics", nil
}

// FormatToken normalizes a single artist or title string into its path
// segment. An input that normalizes to nothing yields the empty segment;
// that boundary is part of the addressing contract, not an error.
func FormatToken(raw string) string {
	s := foldToASCII(raw)
	s = resolveParentheticals(s)
	s = featSuffixPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "$", "-")
	s = strings.ReplaceAll(s, "&", "and")
	s = stripPunctuation(s)
	s = strings.ToLower(s)
	s = whitespaceRunPattern.ReplaceAllString(s, "-")
	s = hyphenRunPattern.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}

// foldToASCII strips accents via Unicode decomposition and discards any
// remaining non-ASCII runes ("Beyoncé" -> "Beyonce", "Måneskin" -> "Maneskin").
func foldToASCII(s string) string {
	folded, _, err := transform.String(asciiFolder, s)
	if err != nil {
		// transform only fails on malformed input, which LyricsPath rejects
		// up front; fall back to dropping non-ASCII from the original.
		folded = s
	}
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, folded)
}

// resolveParentheticals drops "(feat …)" / "(with …)" groups entirely and
// unwraps every other group, keeping its content.
func resolveParentheticals(s string) string {
	return parentheticalPattern.ReplaceAllStringFunc(s, func(group string) string {
		content := strings.TrimSuffix(strings.TrimPrefix(group, "("), ")")
		lowered := strings.ToLower(content)
		if strings.Contains(lowered, "feat") || strings.Contains(lowered, "with") {
			return ""
		}
		return content
	})
}

// stripPunctuation removes every rune that is not a letter, digit,
// whitespace, or hyphen.
func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '-':
			return r
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, s)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
