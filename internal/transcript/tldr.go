package transcript

import "regexp"

// TL;DR heading line: one or two #, flexible whitespace, optional lightning
// bolt (with or without the emoji variation selector), then a
// case-insensitive TL;DR. Both "## ⚡️ TL;DR" and "## TL;DR Summary" match.
var reTLDRHeading = regexp.MustCompile(`(?mi)^[ \t]*#{1,2}[ \t]*(?:⚡\x{FE0F}?[ \t]*)?tl;dr`)

// ContainsTLDRHeading reports whether text holds a TL;DR-style heading line.
func ContainsTLDRHeading(text string) bool {
	return reTLDRHeading.MatchString(text)
}

// TruncateAtLastTLDR discards everything before the last TL;DR heading line,
// keeping the heading itself and all content after it (including later
// headings) verbatim. Text without a TL;DR heading is returned unchanged.
func TruncateAtLastTLDR(text string) string {
	locs := reTLDRHeading.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}
	return text[locs[len(locs)-1][0]:]
}
