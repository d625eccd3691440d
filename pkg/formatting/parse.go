package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrParseFailed is returned when program output cannot be parsed as a JSON record.
var ErrParseFailed = errors.New("failed to parse output")

const excerptLimit = 200

// Parse unmarshals content as a single JSON value into T.
// When the whole content does not parse, the last non-empty line is tried,
// which tolerates programs whose runtime prints banner lines before the record.
// Returns ErrParseFailed if both attempts fail.
func Parse[T any](content string) (T, error) {
	var result T
	content = strings.TrimSpace(content)

	if content == "" {
		return result, fmt.Errorf("%w: empty output", ErrParseFailed)
	}

	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return result, nil
	}

	if i := strings.LastIndexByte(content, '\n'); i >= 0 {
		last := strings.TrimSpace(content[i+1:])
		var retry T
		if err := json.Unmarshal([]byte(last), &retry); err == nil {
			return retry, nil
		}
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, Excerpt(content, excerptLimit))
}

// Excerpt shortens s to at most n bytes, keeping the tail where programs
// usually report their final error.
func Excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
