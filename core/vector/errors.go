package vector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/cvsspop/schema"
)

// Sentinel errors returned by Parse.
var (
	// ErrUnknownPrefix means the text does not start with a recognized standard marker.
	ErrUnknownPrefix = errors.New("invalid vector string prefix: must start with CVSS:3.1/ or CVSS:4.0/")

	// ErrInvalidValue means one or more tokens carry a value that is not legal for their metric.
	ErrInvalidValue = errors.New("invalid metric value")
)

// InvalidToken is a single KEY:VALUE token whose value failed schema validation.
type InvalidToken struct {
	Key   string
	Value string
}

// InvalidValueError lists every invalid token found in one vector.
type InvalidValueError struct {
	Standard schema.Standard
	Tokens   []InvalidToken
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	parts := make([]string, len(e.Tokens))
	for i, tok := range e.Tokens {
		parts[i] = fmt.Sprintf("%s:%s", tok.Key, tok.Value)
	}
	return fmt.Sprintf("%s for %s: %s", ErrInvalidValue, e.Standard.Title(), strings.Join(parts, ", "))
}

// Is lets errors.Is match ErrInvalidValue.
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}
