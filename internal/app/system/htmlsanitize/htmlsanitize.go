// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips all markup; user-entered text fields (team names, missions,
// dream titles, connect notes) are stored as plain text.
var strict = bluemonday.StrictPolicy()

// Clean strips HTML from user input and trims surrounding whitespace.
func Clean(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
