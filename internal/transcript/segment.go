// Package transcript turns the raw multi-turn text returned by an h2oGPTe
// agent session into a clean, bounded markdown answer suitable for a GitHub
// comment.
//
// The pipeline is a pure function composition: segment on the turn delimiter,
// pick the segment holding the final answer, strip structural noise, rewrite
// max-turns system notices, and truncate at the last TL;DR heading. Nothing
// here touches the network or mutates its inputs.
package transcript

import (
	"strings"
)

// DefaultDelimiter is the literal token the agent emits between turns.
const DefaultDelimiter = "ENDOFTURN"

// NoResponseMessage is returned when the transcript is empty or yields no
// usable content after cleaning.
const NoResponseMessage = "The agent did not return a valid response. Please check h2oGPTe."

// Segment splits a transcript on every literal occurrence of delimiter.
// Empty segments are preserved (two adjacent delimiters yield one), no
// trimming happens here, and joining the result with the delimiter
// reproduces the input exactly.
func Segment(transcript, delimiter string) []string {
	return strings.Split(transcript, delimiter)
}

// ExtractReply derives the user-facing answer from a raw transcript using
// the default turn delimiter.
func ExtractReply(transcript string) string {
	return ExtractReplyWithDelimiter(transcript, DefaultDelimiter)
}

// ExtractReplyWithDelimiter derives the user-facing answer from a raw
// transcript. Selection policy, first match wins:
//
//  1. Empty or whitespace-only transcript -> NoResponseMessage.
//  2. Fewer than two delimiter-separated segments -> the original
//     transcript untouched (segmentation did not take effect).
//  3. The last segment whose cleaned content contains a TL;DR heading ->
//     that segment, truncated at its last TL;DR heading. Intervening
//     segments are discarded, not concatenated.
//  4. Otherwise the second-to-last segment (the last fully-closed turn),
//     scanning backward past empty segments.
//  5. Nothing non-empty anywhere -> NoResponseMessage.
//
// Max-turns system notices are rewritten into fixed warning blocks on every
// path, after cleaning and before TL;DR truncation.
func ExtractReplyWithDelimiter(transcript, delimiter string) string {
	if strings.TrimSpace(transcript) == "" {
		return NoResponseMessage
	}

	segments := Segment(transcript, delimiter)
	if len(segments) < 2 {
		return transcript
	}

	// Content-based rule: the agent usually closes with an explicit TL;DR
	// section. Scan from the end so the last one wins.
	for i := len(segments) - 1; i >= 0; i-- {
		cleaned := Clean(segments[i])
		if !ContainsTLDRHeading(cleaned) {
			continue
		}
		out := rewriteMaxTurns(cleaned)
		out = TruncateAtLastTLDR(out)
		out = strings.TrimSpace(out)
		if out == "" {
			return NoResponseMessage
		}
		return out
	}

	// Positional rule for older transcript formats: a trailing unterminated
	// segment is not a usable turn, so start at the second-to-last.
	for i := len(segments) - 2; i >= 0; i-- {
		cleaned := strings.TrimSpace(Clean(segments[i]))
		if cleaned == "" {
			continue
		}
		return strings.TrimSpace(rewriteMaxTurns(cleaned))
	}

	return NoResponseMessage
}
