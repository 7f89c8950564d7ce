package service

import (
	"regexp"
	"strings"
)

// The gateway is instructed to return bare HTML, but models still wrap output
// in markdown fences often enough that stripping them defensively is cheaper
// than failing the revision.
var (
	fenceOpenRe  = regexp.MustCompile("(?i)```[a-z]*\n?")
	fenceCloseRe = regexp.MustCompile("```\\s*$")
)

// SanitizeGenerated strips markdown code-fence wrapping and surrounding
// whitespace from gateway output. Applying it twice yields the same result
// as once.
func SanitizeGenerated(code string) string {
	code = fenceCloseRe.ReplaceAllString(code, "")
	code = fenceOpenRe.ReplaceAllString(code, "")
	return strings.TrimSpace(code)
}
