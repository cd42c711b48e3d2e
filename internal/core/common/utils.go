package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNoJSON = errors.New("no JSON object found in response")

// ParseJSON decodes the outermost JSON object in an LLM response into T.
// Text around the object, such as markdown fences or a preamble, is ignored.
func ParseJSON[T any](response string) (T, error) {
	var result T

	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start == -1 || end < start {
		return result, ErrNoJSON
	}

	body := response[start : end+1]
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, body)
	}
	return result, nil
}
