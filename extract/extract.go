// Package extract recovers structured JSON values from free-form
// generator output that does not reliably emit clean JSON.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Error reports that no JSON value could be recovered after every strategy
// was exhausted. Preview holds a truncated copy of the offending text.
type Error struct {
	Preview string
}

func (e *Error) Error() string {
	return "extract: no JSON value found in text: " + e.Preview
}

var (
	fenceRe         = regexp.MustCompile("(?s)```(?:[a-zA-Z]+)?[ \t]*\n?(.*?)```")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// JSON extracts a value of type T from text, trying strategies in order:
//
//  1. Parse the whole text directly.
//  2. Parse the interior of the first fenced code block, retrying with
//     trailing commas stripped.
//  3. Scan for the first balanced {...} span, then the first balanced
//     [...] span, attempting each directly and with trailing-comma repair.
//
// Object-shaped recovery always runs before array-shaped recovery. When
// every strategy fails the returned error is an *Error carrying a
// truncated preview of the text.
func JSON[T any](text string) (T, error) {
	if v, ok := tryParse[T](text); ok {
		return v, nil
	}

	if m := fenceRe.FindStringSubmatch(text); m != nil {
		block := strings.TrimSpace(m[1])
		if v, ok := tryParse[T](block); ok {
			return v, nil
		}
		if v, ok := tryParse[T](trailingCommaRe.ReplaceAllString(block, "$1")); ok {
			return v, nil
		}
	}

	for _, brackets := range [][2]byte{{'{', '}'}, {'[', ']'}} {
		candidate, found := balancedSpan(text, brackets[0], brackets[1])
		if !found {
			continue
		}
		if v, ok := tryParse[T](candidate); ok {
			return v, nil
		}
		if v, ok := tryParse[T](trailingCommaRe.ReplaceAllString(candidate, "$1")); ok {
			return v, nil
		}
	}

	var zero T
	return zero, &Error{Preview: truncate(text, 200)}
}

// Value extracts an untyped JSON value (object, array, or scalar).
func Value(text string) (any, error) {
	return JSON[any](text)
}

func tryParse[T any](text string) (T, bool) {
	var v T
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// balancedSpan returns the span from the first open bracket to the close
// that returns the nesting depth to zero. The scan counts raw bracket
// bytes and does not special-case brackets inside quoted string literals,
// so a candidate whose strings contain brackets can be mis-split.
func balancedSpan(text string, open, closing byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
