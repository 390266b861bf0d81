package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Small caps folded to capitals; their presence triggers re-title-casing.
var smallCaps = map[rune]rune{
	0x1D00: 'A', 0x0299: 'B', 0x1D04: 'C', 0x1D05: 'D', 0x1D07: 'E',
	0xA730: 'F', 0x0262: 'G', 0x029C: 'H', 0x026A: 'I', 0x1D0A: 'J',
	0x1D0B: 'K', 0x029F: 'L', 0x1D0D: 'M', 0x0274: 'N', 0x1D0F: 'O',
	0x1D18: 'P', 0x01EB: 'Q', 0x0280: 'R', 0x1D1B: 'T', 0x1D1C: 'U',
	0x1D20: 'V', 0x1D21: 'W', 0x028F: 'Y', 0x1D22: 'Z',
}

// Letterlike symbols standing in for the reserved holes of the math alphabets,
// plus a few Greek look-alikes.
var lookalikes = map[rune]rune{
	0x210E: 'h', 0x2113: 'l', 0x1D70A: 'o', 0x1D70B: 'o', 0x1D710: 'u',
	0x212C: 'B', 0x2130: 'E', 0x2131: 'F', 0x210B: 'H', 0x2110: 'I',
	0x2112: 'L', 0x2133: 'M', 0x211B: 'R', 0x212F: 'e', 0x210A: 'g',
	0x2134: 'o', 0x212D: 'C', 0x210C: 'H', 0x2111: 'I', 0x211C: 'R',
	0x2128: 'Z', 0x2102: 'C', 0x210D: 'H', 0x2115: 'N', 0x2119: 'P',
	0x211A: 'Q', 0x211D: 'R', 0x2124: 'Z',
}

var droppedRunes = map[rune]bool{0xA9C1: true, 0xA9C2: true}

const (
	mathAlphaStart = 0x1D400 // MATHEMATICAL BOLD CAPITAL A
	mathAlphaEnd   = 0x1D6A3 // MATHEMATICAL MONOSPACE SMALL Z
)

// foldLetter maps stylised Latin letters (math alphanumerics, circled,
// fullwidth) onto ASCII.
func foldLetter(r rune) (rune, bool) {
	switch {
	case r >= mathAlphaStart && r <= mathAlphaEnd:
		idx := (r - mathAlphaStart) % 52
		if idx < 26 {
			return 'A' + idx, true
		}
		return 'a' + idx - 26, true
	case r >= 0x24B6 && r <= 0x24CF:
		return 'A' + r - 0x24B6, true
	case r >= 0x24D0 && r <= 0x24E9:
		return 'a' + r - 0x24D0, true
	case r >= 0xFF21 && r <= 0xFF3A:
		return 'A' + r - 0xFF21, true
	case r >= 0xFF41 && r <= 0xFF5A:
		return 'a' + r - 0xFF41, true
	}
	if c, ok := lookalikes[r]; ok {
		return c, true
	}
	return 0, false
}

// FoldFancy replaces decorative letterforms with plain ASCII. When small caps
// were present the whole result is lower-cased and title-cased.
func FoldFancy(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	sawSmallCaps := false

	for _, r := range s {
		if droppedRunes[r] {
			continue
		}
		if c, ok := smallCaps[r]; ok {
			sawSmallCaps = true
			b.WriteRune(c)
			continue
		}
		if c, ok := foldLetter(r); ok {
			b.WriteRune(c)
			continue
		}
		b.WriteRune(r)
	}

	out := b.String()
	if sawSmallCaps {
		// Casers keep state between calls, so each call gets its own.
		out = cases.Title(language.Und).String(strings.ToLower(out))
	}
	return out
}

var symbolReplacements = map[rune]string{
	0x2728:  "*",
	0x1F48B: "•",
	0x1F3B6: "♪",
	0x1F3A7: "♪",
	0x1F378: "*",
	0x1F376: "*",
	0x1F3B2: "•",
	0x1F3AD: "*",
	0x1F389: "*",
	0x1F525: "*",
	0x1F319: "*",
	0x1F31F: "*",
	0x2B50:  "*",
	0x2605:  "*",
	0x2606:  "*",
	0x1F338: "*",
	0x1F940: "*",
	0x2740:  "*",
	0x1F49C: "♥",
	0x1F49B: "♥",
	0x1F5A4: "♥",
	0x2764:  "♥",
	0x2661:  "♥",
	0x1F4CD: "•",
	0x1F517: "->",
	0x1F4AC: "",
	0xFE0F:  "",
	0x200D:  "",
	0x2060:  "",
}

// ReplaceSymbols swaps emoji for glyphs a plain font can render. Emoji without
// an entry become a bullet.
func ReplaceSymbols(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if repl, ok := symbolReplacements[r]; ok {
			b.WriteString(repl)
			continue
		}
		if r >= 0x1F000 && r <= 0x1FAFF {
			b.WriteString("•")
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
