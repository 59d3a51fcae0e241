// Package sanitizer cleans stored article HTML before it is rendered.
package sanitizer

import (
	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer strips scripts, event handlers and unsafe URLs from article HTML
// while keeping formatting, headings, lists, links, images, tables and code.
//
// Safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewHTMLSanitizer builds the user-generated-content policy used for rendered version bodies.
// Inline data: images are kept; editors embed pasted screenshots that way.
func NewHTMLSanitizer() *HTMLSanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowDataURIImages()
	return &HTMLSanitizer{policy: policy}
}

// Sanitize returns html with disallowed markup removed
func (s *HTMLSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
