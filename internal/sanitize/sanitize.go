// Package sanitize is the boundary every piece of user-authored markup
// crosses before it reaches the render tree. Inline scripts are split
// out for isolated execution; everything else is reduced to passive,
// allow-listed markup.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer wraps the HTML policy applied to custom section and custom
// widget content.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New creates a Sanitizer with the platform policy: user-generated
// content baseline (text formatting, links, lists, images) plus the
// class and style attributes profile themes rely on. Script tags,
// event-handler attributes and any non-allow-listed markup are
// stripped.
func New() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowStyling()
	p.AllowImages()
	p.AllowStandardURLs()
	return &Sanitizer{policy: p}
}

// Sanitize strips unsafe markup from content. Malformed input degrades
// to whatever survives the policy; it never produces an error.
func (s *Sanitizer) Sanitize(content string) string {
	return strings.TrimSpace(s.policy.Sanitize(content))
}

var scriptFallbackRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)

// ExtractScripts pulls inline <script> bodies out of content and
// returns them alongside the remaining markup (not yet sanitized).
// Extracted scripts are destined for the sandbox service and must never
// be injected into the main document. If the content cannot be parsed
// as HTML, script tags are removed textually and no scripts are
// extracted, so a parse failure never lets one slip through.
func (s *Sanitizer) ExtractScripts(content string) (scripts []string, rest string) {
	if !strings.Contains(strings.ToLower(content), "<script") {
		return nil, content
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, scriptFallbackRe.ReplaceAllString(content, "")
	}
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if src, ok := sel.Attr("src"); ok && src != "" {
			// External script references are dropped outright; only
			// inline bodies are eligible for sandboxed execution.
			sel.Remove()
			return
		}
		if body := strings.TrimSpace(sel.Text()); body != "" {
			scripts = append(scripts, body)
		}
		sel.Remove()
	})
	rest, err = doc.Find("body").Html()
	if err != nil {
		return scripts, ""
	}
	return scripts, rest
}
