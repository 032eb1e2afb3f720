package transcript

import (
	"regexp"
	"strings"
)

// Two historical shapes of the "maximum turns reached" system notice exist.
// Older sessions prepend the Shape A prefix directly to the answer text;
// newer ones emit the standalone Shape B sentence. Only one shape appears
// per transcript version, but both are recognized.
var reMaxTurnsPrefix = regexp.MustCompile(`^Max turns \d+ out of \d+ reached, ending conversation\.\.\.`)

const (
	// Shape B, matched verbatim anywhere in the cleaned text.
	maxTurnsSentence = "Reached max number of turns, increase agent accuracy (or max turns) if seems to have finished without completing task."

	maxTurnsHeader = "**Warning: Maximum Turns Reached**\n\n---\n\n"

	maxTurnsBlock = "**⚠️ Warning: Maximum Turns Reached.**\n\n💡 Hint: If this is a recurring issue, try increasing the `agent_max_turns` or `agent_accuracy` in your config file."
)

// rewriteMaxTurns substitutes max-turns system notices with fixed warning
// blocks.
//
// Shape B discards all surrounding content: the notice means the session was
// cut off and whatever else the segment holds is an unfinished fragment.
// Shape A must sit at the very start of the cleaned, trimmed text; the
// prefix is replaced with a warning header and the rest is kept verbatim.
// The same words appearing mid-text are ordinary content and pass through.
func rewriteMaxTurns(text string) string {
	if strings.Contains(text, maxTurnsSentence) {
		return maxTurnsBlock
	}

	trimmed := strings.TrimSpace(text)
	if loc := reMaxTurnsPrefix.FindStringIndex(trimmed); loc != nil {
		return maxTurnsHeader + trimmed[loc[1]:]
	}

	return text
}
