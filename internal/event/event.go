package event

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/go-github/v58/github"

	"github.com/siddharthkul/voyager-gha/pkg/models"
)

// Source reads the issue from the Actions event payload on disk. The payload
// is consumed exactly once per run.
type Source struct {
	path string
}

// NewSource creates an issue source backed by the event payload file the
// runner writes (GITHUB_EVENT_PATH).
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Issue parses the issues-event payload and returns the triggering issue.
func (s *Source) Issue() (*models.Issue, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, readError(err)
	}
	return ParseIssueEvent(data)
}

// ParseIssueEvent decodes an issues-event payload and validates the fields
// the pipeline needs.
func ParseIssueEvent(payload []byte) (*models.Issue, error) {
	if len(payload) == 0 {
		return nil, parseError(ErrEmptyPayload)
	}

	var event github.IssuesEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, parseError(fmt.Errorf("%w: %v", ErrInvalidPayload, err))
	}

	if event.Issue == nil {
		return nil, validationError(ErrMissingIssue)
	}
	if event.Issue.Number == nil {
		return nil, validationError(ErrMissingNumber)
	}

	return &models.Issue{
		Number: event.Issue.GetNumber(),
		Title:  event.Issue.GetTitle(),
		Body:   event.Issue.GetBody(),
	}, nil
}
