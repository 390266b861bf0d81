package textnorm

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const bulletPrefix = "• "

var (
	headingEqualsRe       = regexp.MustCompile(`^\s*=+\s*(.*?)\s*=+\s*$`)
	headingSingleEqualsRe = regexp.MustCompile(`^\s*=\s*(.*?)\s*$`)
	leadingBulletRe       = regexp.MustCompile(`^\s*[-*•▪◦·]+\s*`)
	onlyPunctuationRe     = regexp.MustCompile("^[=\\-_*`~|+\\\\/]+$")
	urlRe                 = regexp.MustCompile(`(?i)https?://[^\s\)\]\}<>"]+`)
)

// SanitizeDescription turns raw description paragraphs into display lines:
// decorations and separators are removed, bullets normalized and hard-wrapped
// lines merged back into paragraphs. Blank lines separate paragraphs.
func SanitizeDescription(paragraphs []string) string {
	kept := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	text := NormalizeDisplay(strings.Join(kept, "\n"))
	if text == "" {
		return ""
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		cleaned, keep := cleanLine(line)
		if keep {
			lines = append(lines, cleaned)
		}
	}

	return strings.TrimSpace(strings.Join(mergeLines(lines), "\n"))
}

// cleanLine returns "" with keep=true for a blank line, keep=false for lines
// that carry no content.
func cleanLine(line string) (string, bool) {
	s := strings.TrimSpace(multiSpaceRe.ReplaceAllString(line, " "))
	if s == "" {
		return "", true
	}

	if m := headingEqualsRe.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	} else if m := headingSingleEqualsRe.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	s = trimTrailingDecoration(trimLeadingDecoration(s))

	bullet := leadingBulletRe.MatchString(s)
	s = strings.TrimSpace(leadingBulletRe.ReplaceAllString(s, ""))
	if s == "" {
		return "", false
	}
	if bullet {
		s = bulletPrefix + s
	}

	if utf8.RuneCountInString(s) > 6 && onlyPunctuationRe.MatchString(s) {
		return "", false
	}
	return s, true
}

func isDecoration(r rune) bool {
	return unicode.IsSymbol(r) || unicode.IsSpace(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// trimLeadingDecoration drops a run of symbols and spaces, but only when a
// letter or digit follows it.
func trimLeadingDecoration(s string) string {
	for i, r := range s {
		if isDecoration(r) {
			continue
		}
		if i > 0 && isWordRune(r) {
			return s[i:]
		}
		return s
	}
	return s
}

// trimTrailingDecoration mirrors trimLeadingDecoration at the end of the line.
func trimTrailingDecoration(s string) string {
	end := len(s)
	for end > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:end])
		if !isDecoration(r) {
			if end < len(s) && isWordRune(r) {
				return s[:end]
			}
			return s
		}
		end -= size
	}
	return s
}

// mergeLines re-joins hard-wrapped lines. Blank entries become single
// paragraph breaks.
func mergeLines(lines []string) []string {
	merged := make([]string, 0, len(lines))
	for _, line := range lines {
		last := len(merged) - 1
		if line == "" {
			if last >= 0 && merged[last] != "" {
				merged = append(merged, "")
			}
			continue
		}
		if last < 0 || merged[last] == "" || !shouldJoin(merged[last], line) {
			merged = append(merged, line)
			continue
		}
		merged[last] += " " + line
	}
	return merged
}

func shouldJoin(previous, current string) bool {
	if strings.HasPrefix(current, bulletPrefix) {
		return false
	}
	switch previous[len(previous)-1] {
	case '.', '!', '?', ';', ':':
		return false
	}
	return true
}

// Segment is a piece of a description line; URL is set for links.
type Segment struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// SplitLinks cuts a sanitized line into plain text and http(s) links.
// Trailing punctuation is moved out of the link into the following text.
func SplitLinks(line string) []Segment {
	var segments []Segment
	appendText := func(text string) {
		if text == "" {
			return
		}
		if n := len(segments); n > 0 && segments[n-1].URL == "" {
			segments[n-1].Text += text
			return
		}
		segments = append(segments, Segment{Text: text})
	}

	cursor := 0
	for _, loc := range urlRe.FindAllStringIndex(line, -1) {
		appendText(line[cursor:loc[0]])
		raw := line[loc[0]:loc[1]]
		link := strings.TrimRight(raw, ".,;:!?)")
		if isAbsoluteURL(link) {
			segments = append(segments, Segment{Text: link, URL: link})
			appendText(raw[len(link):])
		} else {
			appendText(raw)
		}
		cursor = loc[1]
	}
	appendText(line[cursor:])
	return segments
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
