package deck

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Sanitize strips markup from card text and trims it. Text that is empty
// after stripping is rejected.
func Sanitize(input string) (string, error) {
	clean := strings.TrimSpace(html.UnescapeString(policy.Sanitize(input)))
	if clean == "" {
		return "", fmt.Errorf("input is empty or unsafe")
	}
	return clean, nil
}

// sanitizeOptional is Sanitize for fields that may be blank.
func sanitizeOptional(input string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(input)))
}
