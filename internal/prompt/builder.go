// Package prompt builds the instruction message sent to the h2oGPTe agent
// session, wrapping the user's request with repository context, matched
// slash-command prompts, and the output conventions the transcript pipeline
// relies on.
package prompt

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/h2oai/h2ogpte-action/internal/slashcmd"
)

// Params carries everything the instruction template needs.
type Params struct {
	Repository  string // owner/name
	IssueNumber int
	Actor       string
	Instruction string
	Delimiter   string

	// SlashCommandBlock is the "- name: prompt" listing of matched
	// commands, empty when none matched.
	SlashCommandBlock string
}

// Build renders the agent instruction. A template failure falls back to the
// raw instruction so the run still proceeds with degraded context.
func Build(p Params, matched []slashcmd.Command) string {
	p.SlashCommandBlock = slashcmd.PromptBlock(matched)

	tmpl, err := template.New("instruction").Parse(instructionTemplate)
	if err != nil {
		return fmt.Sprintf("%s\n\n(Template error: %v)", p.Instruction, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return fmt.Sprintf("%s\n\n(Template error: %v)", p.Instruction, err)
	}
	return buf.String()
}
