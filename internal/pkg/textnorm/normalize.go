// Package textnorm turns decorated, hand-formatted venue text into clean
// display and search strings. Every function is total: bad input degrades to
// an empty or best-effort string.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var (
	htmlTagRe       = regexp.MustCompile(`<.*?>`)
	markdownLinkRe  = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	multiSpaceRe    = regexp.MustCompile(`[\s\p{Zs}]+`)
	strongMarkupRes = []*regexp.Regexp{
		regexp.MustCompile(`\*\*(.*?)\*\*`),
		regexp.MustCompile(`__(.*?)__`),
		regexp.MustCompile(`~~(.*?)~~`),
	}
	emMarkupRes = []*regexp.Regexp{
		regexp.MustCompile(`\*(.*?)\*`),
		regexp.MustCompile(`_(.*?)_`),
	}
)

type markupStyle struct {
	tag  string
	link string
}

var (
	displayStyle = markupStyle{tag: "", link: "$1 ($2)"}
	searchStyle  = markupStyle{tag: " ", link: "$1"}
)

func prepare(raw string) string {
	s := ReplaceSymbols(FoldFancy(raw))
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// stripMarkup removes tags, links and emphasis until nothing is left to strip.
// Every replacement shortens the text, so the loop terminates.
func stripMarkup(s string, style markupStyle) string {
	for {
		prev := s
		s = htmlTagRe.ReplaceAllString(s, style.tag)
		s = markdownLinkRe.ReplaceAllString(s, style.link)
		for _, re := range strongMarkupRes {
			s = re.ReplaceAllString(s, "$1")
		}
		for _, re := range emMarkupRes {
			s = re.ReplaceAllString(s, "$1")
		}
		s = strings.ReplaceAll(s, "`", "")
		if s == prev {
			return s
		}
	}
}

// NormalizeDisplay folds decorative letters and emoji, strips HTML and
// Markdown markup (links become "text (url)") and trims.
func NormalizeDisplay(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return strings.TrimSpace(stripMarkup(prepare(raw), displayStyle))
}

// NormalizeForSearch reduces text to plain words separated by single spaces.
func NormalizeForSearch(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	s := stripMarkup(prepare(raw), searchStyle)
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(s, " "))
}

// ContainsFold reports whether the search-normalized source contains search,
// ignoring case.
func ContainsFold(source, search string) bool {
	if strings.TrimSpace(source) == "" {
		return false
	}
	normalized := NormalizeForSearch(source)
	if normalized == "" {
		return false
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(normalized), fold.String(search))
}
