// Package reply assembles the markdown comment bodies posted back to GitHub:
// the transient working comment and the final answer.
package reply

import (
	"fmt"
	"strings"

	"github.com/h2oai/h2ogpte-action/internal/slashcmd"
)

const (
	failureHeader = "❌ h2oGPTe ran into some issues"

	attributionLine = "🤖 Generated by the [h2oGPTe GitHub Action](https://github.com/h2oai/h2ogpte-action)"

	spinner = `<img src="https://github.com/user-attachments/assets/5ac382c7-e004-429b-8e35-7feb3e8f9c6f" width="14px" /> `
)

// Compose builds the final comment body. Section order is fixed: optional
// failure header, quoted instruction, divider, body verbatim, divider,
// optional slash-command summary, then the footer links. The footer is
// always present and always last.
//
// Compose is pure and total: malformed URLs pass through verbatim and the
// body is not cleaned here (cleaning already happened upstream).
func Compose(success bool, body, instruction, actionURL, chatURL string, used []slashcmd.Command) string {
	var lines []string

	if !success {
		lines = append(lines, failureHeader, "---")
	}

	lines = append(lines, quoteInstruction(instruction)...)
	lines = append(lines, "---", body, "", "---")

	if len(used) > 0 {
		lines = append(lines, "Slash commands used: "+slashcmd.Summary(used), "", "---")
	}

	lines = append(lines, referencesLine(actionURL, chatURL), attributionLine)
	return strings.Join(lines, "\n")
}

// quoteInstruction renders the instruction as a markdown quote, one "> "
// prefixed line per trimmed input line. A fully empty instruction collapses
// to a single empty line so the section structure stays intact.
func quoteInstruction(instruction string) []string {
	if strings.TrimSpace(instruction) == "" {
		return []string{""}
	}
	raw := strings.Split(instruction, "\n")
	quoted := make([]string, 0, len(raw))
	for _, line := range raw {
		quoted = append(quoted, "> "+strings.TrimSpace(line))
	}
	return quoted
}

func referencesLine(actionURL, chatURL string) string {
	return fmt.Sprintf("🔗 References: [Action Run](%s) | [Chat Session](%s)", actionURL, chatURL)
}

// WorkingBody is the initial comment posted while the agent session runs.
func WorkingBody(instruction string) string {
	var b strings.Builder
	b.WriteString(spinner)
	b.WriteString("h2oGPTe is working on your request...\n\n")
	for _, line := range quoteInstruction(instruction) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("\n---\n")
	b.WriteString(attributionLine)
	return b.String()
}
