package event

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIssueEvent(t *testing.T) {
	payload := []byte(`{
		"action": "opened",
		"issue": {
			"number": 7,
			"title": "Increase counter to 42",
			"body": "The counter should show 42."
		}
	}`)

	issue, err := ParseIssueEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, 7, issue.Number)
	assert.Equal(t, "Increase counter to 42", issue.Title)
	assert.Equal(t, "The counter should show 42.", issue.Body)
}

func TestParseIssueEventErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		wantErr error
	}{
		{
			name:    "empty payload",
			payload: nil,
			wantErr: ErrEmptyPayload,
		},
		{
			name:    "malformed json",
			payload: []byte("{not json"),
			wantErr: ErrInvalidPayload,
		},
		{
			name:    "missing issue",
			payload: []byte(`{"action": "opened"}`),
			wantErr: ErrMissingIssue,
		},
		{
			name:    "missing issue number",
			payload: []byte(`{"issue": {"title": "no number"}}`),
			wantErr: ErrMissingNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIssueEvent(tt.payload)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSourceReadsPayloadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	payload := `{"issue": {"number": 3, "title": "t", "body": "b"}}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	issue, err := NewSource(path).Issue()
	require.NoError(t, err)
	assert.Equal(t, 3, issue.Number)
}

func TestSourceMissingFile(t *testing.T) {
	_, err := NewSource(filepath.Join(t.TempDir(), "absent.json")).Issue()
	require.Error(t, err)

	var perr *PayloadError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "read", perr.Op)
}
