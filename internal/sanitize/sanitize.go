package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// Write-path denylist. These passes strip the constructs a journal entry must
// never persist: script-bearing elements, inline event handlers and
// script-scheme URIs. The allowlist policy below remains the authoritative
// filter on every read path.
var (
	// Whole elements including their content, case-insensitive, non-greedy,
	// matching across newlines.
	reScriptBlock = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	reIframeBlock = regexp.MustCompile(`(?is)<iframe\b[^>]*>.*?</iframe>`)
	reObjectBlock = regexp.MustCompile(`(?is)<object\b[^>]*>.*?</object>`)
	reEmbedBlock  = regexp.MustCompile(`(?is)<embed\b[^>]*>.*?</embed>`)

	// Inline event handler attributes, double- or single-quoted.
	reEventAttr = regexp.MustCompile(`(?i)\s*on\w+\s*=\s*("[^"]*"|'[^']*')`)

	// href/src attributes whose value starts with a script-executing scheme.
	reScriptURI = regexp.MustCompile(`(?i)\s*(href|src)\s*=\s*("\s*javascript:[^"]*"|'\s*javascript:[^']*')`)

	// Leftover opening tags pass 1 missed because they were never closed.
	reDanglingOpen = regexp.MustCompile(`(?i)<(script|iframe|object|embed)\b[^>]*>`)
)

// displayPolicy is the allowlist applied before content leaves the service:
// basic formatting tags, href on links restricted to http/https/mailto.
var displayPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "b", "strong", "i", "em", "u", "s",
		"h1", "h2", "h3", "blockquote", "ul", "ol", "li", "span", "div")
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(true)
	return p
}()

// Clean strips dangerous constructs from untrusted markup before it is
// persisted. It is idempotent: Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	s = reScriptBlock.ReplaceAllString(s, "")
	s = reIframeBlock.ReplaceAllString(s, "")
	s = reObjectBlock.ReplaceAllString(s, "")
	s = reEmbedBlock.ReplaceAllString(s, "")
	s = reEventAttr.ReplaceAllString(s, "")
	s = reScriptURI.ReplaceAllString(s, "")
	s = reDanglingOpen.ReplaceAllString(s, "")
	return s
}

// Display sanitizes markup through the allowlist policy. Every read path runs
// content through Display before returning it to a client, regardless of what
// was persisted.
func Display(s string) string {
	return displayPolicy.Sanitize(s)
}
