package llm

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/siddharthkul/voyager-gha/pkg/models"
)

// promptTemplate asks for complete file contents in fenced blocks whose info
// string carries the target path, the format the extractor understands best.
// The model does not always comply, which is why extraction stays heuristic.
const promptTemplate = `You are an automated software engineer working on this repository.

A user filed the following issue:

## Issue #{{.Issue.Number}}: {{.Issue.Title}}

{{.Issue.Body}}
{{- if .Comments}}

## Discussion so far
{{- range .Comments}}

{{.}}
{{- end}}
{{- end}}

Propose source-file edits that resolve the issue.

Rules for your reply:
- For every file you change, output one fenced code block containing the COMPLETE new file contents.
- Start each fence with the language tag and the file path, for example: ` + "```typescript:{{.SourceRoot}}App.tsx" + `
- Only touch files under {{.SourceRoot}}.
- Do not include explanations inside the code blocks.
`

var promptTmpl = template.Must(template.New("completion").Parse(promptTemplate))

// PromptInput carries everything the prompt template renders.
type PromptInput struct {
	Issue      *models.Issue
	Comments   []string
	SourceRoot string
}

// BuildPrompt renders the completion request for an issue. comments is
// optional context from the issue thread, oldest first.
func BuildPrompt(issue *models.Issue, comments []string, sourceRoot string) (string, error) {
	var buf bytes.Buffer
	err := promptTmpl.Execute(&buf, PromptInput{
		Issue:      issue,
		Comments:   comments,
		SourceRoot: sourceRoot,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}
