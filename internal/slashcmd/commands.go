// Package slashcmd loads the user-declared slash command set and matches
// command names against free-text instructions.
package slashcmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Command is a user-invokable instruction shortcut.
type Command struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// Parse validates and decodes a slash command configuration: a JSON array of
// {name, prompt} objects with string values and a non-empty name. Names are
// expected to start with "/" by convention, but that is not enforced.
//
// Any shape violation is a configuration error that should fail the whole
// run; there is no partial result.
func Parse(raw string) ([]Command, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var entries []map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("slash commands must be a JSON array of {name, prompt} objects: %w", err)
	}

	commands := make([]Command, 0, len(entries))
	for i, entry := range entries {
		name, ok := entry["name"].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("slash command entry %d: missing or non-string \"name\"", i)
		}
		prompt, ok := entry["prompt"].(string)
		if !ok {
			return nil, fmt.Errorf("slash command entry %d (%q): missing or non-string \"prompt\"", i, name)
		}
		commands = append(commands, Command{Name: name, Prompt: prompt})
	}

	return commands, nil
}

// Match returns the commands whose name occurs as a literal substring of the
// instruction, sorted lexicographically by name for stable rendering.
//
// Substring containment is intentional: a name embedded inside ordinary text
// matches too. The existing behavior is relied upon, do not tighten it to
// word boundaries.
func Match(commands []Command, instruction string) []Command {
	var matched []Command
	for _, c := range commands {
		if strings.Contains(instruction, c.Name) {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched
}

// PromptBlock renders matched commands as "- name: prompt" lines for the
// instruction builder. Empty input yields an empty string.
func PromptBlock(matched []Command) string {
	if len(matched) == 0 {
		return ""
	}
	lines := make([]string, 0, len(matched))
	for _, c := range matched {
		lines = append(lines, fmt.Sprintf("- %s: %s", c.Name, c.Prompt))
	}
	return strings.Join(lines, "\n")
}

// Summary renders matched command names space-joined in ascending
// lexicographic order, regardless of input order.
func Summary(matched []Command) string {
	names := make([]string, 0, len(matched))
	for _, c := range matched {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}
