package htmldoc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// navPattern matches class and id values of menus and breadcrumbs. Page
// headers and footers are kept since invoice portals put the address blocks
// there.
var navPattern = regexp.MustCompile(`(?i)(^|[^a-z])(nav|navbar|navigation|menu|topnav|sidenav|breadcrumb|breadcrumbs)([^a-z]|$)`)

// isNavigation reports whether the subtree under n is site navigation whose
// tables should not be read as document content.
func isNavigation(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if n.Data == "nav" || getAttr(n, "role") == "navigation" {
		return true
	}
	for _, key := range []string{"class", "id"} {
		if v := getAttr(n, key); v != "" && navPattern.MatchString(normalizeClassName(v)) {
			return true
		}
	}
	return n.Data == "table" && isLinkDense(n)
}

// linkStats summarizes the text under a node.
type linkStats struct {
	text     int // trimmed text bytes
	linkText int // trimmed text bytes inside <a>
	links    int
}

func (s *linkStats) walk(n *html.Node, inLink bool) {
	switch {
	case n.Type == html.TextNode:
		l := len(strings.TrimSpace(n.Data))
		s.text += l
		if inLink {
			s.linkText += l
		}
	case n.Type == html.ElementNode && n.Data == "a":
		s.links++
		inLink = true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s.walk(c, inLink)
	}
}

// isLinkDense reports whether more than 60% of the text under n sits inside
// at least four links.
func isLinkDense(n *html.Node) bool {
	var s linkStats
	s.walk(n, false)
	if s.text == 0 || s.links < 4 {
		return false
	}
	return float64(s.linkText)/float64(s.text) > 0.6
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// normalizeClassName converts camelCase to dashed lower case so "mainNav"
// matches like "main-nav".
func normalizeClassName(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			sb.WriteByte('-')
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}
