package transcript

import (
	"regexp"
	"strings"
)

var (
	// Inline turn-title tag and its payload, e.g. <turn_title>Fix CI</turn_title>.
	reTurnTitle = regexp.MustCompile(`<turn_title>.*?</turn_title>`)

	// Citation markers, with or without a space after the colon. The single
	// space preceding the marker is consumed too so punctuation spacing
	// stays natural: "text [citation:1]." -> "text.".
	reCitation = regexp.MustCompile(` ?\[citation: ?\d+\]`)

	// Execution telemetry the agent runtime appends after each turn:
	// elapsed time, turn counts, or executed code blocks.
	telemetryTopics = `(?i:time taken|elapsed time|turns? \d+ of \d+|executed \d+ code blocks?)`

	// Telemetry line bounded by ** emphasis markers, e.g.
	//   **Time taken: 12.4 seconds | Turn 3 of 10 | Executed 2 code blocks**
	reTelemetryEmph = regexp.MustCompile(`^\*\*[^*\n]*` + telemetryTopics + `[^*\n]*\*\*$`)

	// Telemetry line opened by a bracketed timestamp, e.g.
	//   [2024-06-11 09:14:02] Time taken so far: 41.0 seconds
	reTelemetryStamp = regexp.MustCompile(`^\[[^\]\n]+\][ \t]*[^\n]*` + telemetryTopics + `[^\n]*$`)
)

func isTelemetryLine(line string) bool {
	return reTelemetryEmph.MatchString(line) || reTelemetryStamp.MatchString(line)
}

// Clean strips structural and telemetry noise from a transcript segment:
// turn-title tags, execution telemetry lines, and citation markers.
//
// The passes work line by line and are independent of each other and of
// selection; a line that becomes empty purely because of a removal is
// dropped so no artificial blank runs appear. Blank lines present in the
// original content are kept. Clean is idempotent.
func Clean(text string) string {
	if text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		cleaned := reTurnTitle.ReplaceAllString(line, "")
		cleaned = reCitation.ReplaceAllString(cleaned, "")
		// Telemetry is matched on the stripped line: a tag or citation
		// marker glued onto a telemetry line must not mask it.
		if isTelemetryLine(strings.TrimSpace(cleaned)) {
			continue
		}
		if strings.TrimSpace(cleaned) == "" && strings.TrimSpace(line) != "" {
			// Removal artifact, not an original blank line.
			continue
		}
		out = append(out, cleaned)
	}

	return trimBlankEdges(out)
}

// trimBlankEdges drops leading and trailing whitespace-only lines and
// rejoins. Interior blank lines survive untouched.
func trimBlankEdges(lines []string) string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
