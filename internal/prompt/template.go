package prompt

// instructionTemplate is the message sent to the agent session. The closing
// conventions matter: the transcript pipeline looks for the {{.Delimiter}}
// token between turns and a final TL;DR section to pick the answer.
const instructionTemplate = `You are responding to a request on the GitHub repository {{.Repository}}, issue/PR #{{.IssueNumber}}, raised by @{{.Actor}}.

<request>
{{.Instruction}}
</request>
{{if .SlashCommandBlock}}
The request invokes the following user-defined slash commands. Apply each command's prompt to the request:
{{.SlashCommandBlock}}
{{end}}
Work through the request step by step. When you are done, end your reply with a "## TL;DR" markdown section that summarizes the outcome for the person who asked; it will be posted back to GitHub as a comment.`
