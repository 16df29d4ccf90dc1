// Package textclean provides the light regex-based normalization applied
// to raw documents before classification.
package textclean

import (
	"regexp"
	"strings"
)

var (
	urlRe        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	controlRe    = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Clean strips URLs, HTML tags and control characters, then collapses
// all whitespace runs into single spaces.
func Clean(text string) string {
	text = urlRe.ReplaceAllString(text, " ")
	text = htmlTagRe.ReplaceAllString(text, " ")
	text = controlRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
