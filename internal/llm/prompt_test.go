package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddharthkul/voyager-gha/pkg/models"
)

func TestBuildPrompt(t *testing.T) {
	issue := &models.Issue{
		Number: 42,
		Title:  "Increase counter to 42",
		Body:   "The header counter should show 42.",
	}

	prompt, err := BuildPrompt(issue, nil, "src/")
	require.NoError(t, err)

	assert.Contains(t, prompt, "Issue #42: Increase counter to 42")
	assert.Contains(t, prompt, "The header counter should show 42.")
	assert.Contains(t, prompt, "```typescript:src/App.tsx")
	assert.Contains(t, prompt, "Only touch files under src/.")
	assert.NotContains(t, prompt, "Discussion so far")
}

func TestBuildPromptWithComments(t *testing.T) {
	issue := &models.Issue{Number: 8, Title: "t", Body: "b"}
	comments := []string{"@alice: counter, not badge", "@bob: agreed"}

	prompt, err := BuildPrompt(issue, comments, "src/")
	require.NoError(t, err)

	assert.Contains(t, prompt, "Discussion so far")
	assert.Contains(t, prompt, "@alice: counter, not badge")
	assert.Contains(t, prompt, "@bob: agreed")
	// Thread order is preserved.
	assert.Less(t,
		strings.Index(prompt, "@alice"),
		strings.Index(prompt, "@bob"))
}
