// Package vector parses and serializes CVSS vector strings.
package vector

import (
	"strings"

	"github.com/huangsam/cvsspop/schema"
)

// tokenSeparator splits KEY:VALUE tokens; keyValueSeparator splits a token.
const (
	tokenSeparator    = "/"
	keyValueSeparator = ":"
)

// Parsed is the result of parsing a vector string.
// Pairs holds only the legal pairs that were found; it may be a subset of the schema.
type Parsed struct {
	Standard schema.Standard
	Pairs    schema.Assignment
}

// Detect returns the standard whose prefix starts text.
func Detect(text string) (schema.Standard, bool) {
	for _, std := range schema.AllStandards {
		if strings.HasPrefix(text, std.Prefix()) {
			return std, true
		}
	}
	return "", false
}

// Parse reads a vector string into its standard and the legal key/value pairs it mentions.
//
// Unknown keys are ignored. Illegal values do not stop parsing: every one is
// collected into an *InvalidValueError, returned alongside the legal pairs.
func Parse(text string) (Parsed, error) {
	std, ok := Detect(text)
	if !ok {
		return Parsed{}, ErrUnknownPrefix
	}
	ms, _ := schema.SchemaFor(std)

	parsed := Parsed{Standard: std, Pairs: schema.Assignment{}}
	var invalid []InvalidToken

	body := strings.TrimPrefix(text, std.Prefix())
	for token := range strings.SplitSeq(body, tokenSeparator) {
		key, value, _ := strings.Cut(token, keyValueSeparator)
		if !ms.HasKey(key) {
			continue
		}
		if !ms.IsLegal(key, value) {
			invalid = append(invalid, InvalidToken{Key: key, Value: value})
			continue
		}
		parsed.Pairs[key] = value // last legal occurrence wins
	}

	if len(invalid) > 0 {
		return parsed, &InvalidValueError{Standard: std, Tokens: invalid}
	}
	return parsed, nil
}

// Serialize renders an assignment as a canonical vector string in schema order.
// Keys absent from the assignment are skipped.
func Serialize(std schema.Standard, a schema.Assignment) string {
	ms, ok := schema.SchemaFor(std)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(ms.Prefix)
	first := true
	for _, key := range ms.Keys() {
		value, ok := a[key]
		if !ok {
			continue
		}
		if !first {
			b.WriteString(tokenSeparator)
		}
		b.WriteString(key)
		b.WriteString(keyValueSeparator)
		b.WriteString(value)
		first = false
	}
	return b.String()
}

// Highlight locates the KEY:VALUE token for key inside a vector string.
// It returns the text before the token, the token itself and the text after it.
func Highlight(vector, key string) (before, token, after string, ok bool) {
	needle := key + keyValueSeparator
	offset := 0
	for {
		idx := strings.Index(vector[offset:], needle)
		if idx < 0 {
			return vector, "", "", false
		}
		start := offset + idx
		// The token must start the string or follow a separator.
		if start == 0 || vector[start-1:start] == tokenSeparator {
			end := strings.Index(vector[start:], tokenSeparator)
			if end < 0 {
				end = len(vector)
			} else {
				end += start
			}
			return vector[:start], vector[start:end], vector[end:], true
		}
		offset = start + len(needle)
	}
}
