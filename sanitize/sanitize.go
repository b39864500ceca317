// Package sanitize is the boundary every piece of stored free-text HTML
// passes through before persistence. Update bodies, coverage context and
// audience questions arrive from rich-text editors or anonymous visitors
// and are never trusted verbatim.
package sanitize

import "github.com/microcosm-cc/bluemonday"

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("p", "span", "div", "blockquote", "table", "tr", "td", "th")
	p.AllowElements("u", "s", "sub", "sup", "mark")
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	return p
}

// HTML strips scripts, event handlers and javascript: URLs while keeping
// the formatting tags the editors actually produce.
func HTML(s string) string {
	return policy.Sanitize(s)
}
