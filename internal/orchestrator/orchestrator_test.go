package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddharthkul/voyager-gha/internal/config"
	"github.com/siddharthkul/voyager-gha/internal/githost"
	"github.com/siddharthkul/voyager-gha/pkg/models"
)

type fakeSource struct {
	issue *models.Issue
}

func (s *fakeSource) Issue() (*models.Issue, error) {
	return s.issue, nil
}

type fakeProvider struct {
	response string
	err      error
	prompts  []string
}

func (p *fakeProvider) Complete(_ context.Context, prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return p.response, p.err
}

func (p *fakeProvider) Name() string { return "fake" }

type fakeHost struct {
	files    map[string]*githost.RemoteFile
	putErrs  map[string]error
	comments []string

	branches []string
	puts     []string
	prs      []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		files:   map[string]*githost.RemoteFile{},
		putErrs: map[string]error{},
	}
}

func (h *fakeHost) GetDefaultBranch(context.Context) (string, error) { return "main", nil }

func (h *fakeHost) ResolveRef(_ context.Context, branch string) (string, error) {
	return "abc123", nil
}

func (h *fakeHost) CreateBranch(_ context.Context, name, fromSHA string) error {
	h.branches = append(h.branches, name)
	return nil
}

func (h *fakeHost) GetFile(_ context.Context, path, branch string) (*githost.RemoteFile, error) {
	if f, ok := h.files[path]; ok {
		return f, nil
	}
	return nil, githost.ErrFileNotFound
}

func (h *fakeHost) PutFile(_ context.Context, change models.FileChange, branch, message, priorSHA string) error {
	if err, ok := h.putErrs[change.Path]; ok {
		return err
	}
	h.puts = append(h.puts, change.Path)
	return nil
}

func (h *fakeHost) CreatePullRequest(_ context.Context, title, body, head, base string) (*githost.PullRequest, error) {
	h.prs = append(h.prs, title)
	return &githost.PullRequest{Number: 99, URL: "https://github.com/o/r/pull/99"}, nil
}

func (h *fakeHost) CreateIssueComment(_ context.Context, number int, body string) error {
	h.comments = append(h.comments, body)
	return nil
}

func (h *fakeHost) IssueComments(context.Context, int, int) ([]string, error) {
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Policy:       models.DefaultPolicy(),
		BranchPrefix: "voyager",
	}
}

func newTestOrchestrator(host *fakeHost, provider *fakeProvider, issue *models.Issue) *Orchestrator {
	o := New(testConfig(), &fakeSource{issue: issue}, host, provider)
	o.now = func() time.Time { return time.Unix(1700000000, 0) }
	return o
}

func TestRunCreatesPullRequest(t *testing.T) {
	issue := &models.Issue{Number: 12, Title: "Increase counter to 42", Body: "Increase counter to 42"}
	response := "Here you go:\n" +
		"```typescript:src/App.tsx\n" +
		"export default function App() { return <div>42</div> }\n" +
		"```\n" +
		"And a style tweak:\n" +
		"```typescript:src/App.css\n" +
		".counter { font-weight: bold; }\n" +
		"```\n"

	host := newFakeHost()
	provider := &fakeProvider{response: response}
	o := newTestOrchestrator(host, provider, issue)

	report, err := o.Run(context.Background())
	require.NoError(t, err)

	// The .css change is rejected: the issue body never mentions ".css".
	assert.Equal(t, []string{"src/App.tsx"}, host.puts)
	assert.Equal(t, 1, report.AppliedCount())
	assert.Equal(t, []string{"voyager/issue-12-1700000000"}, host.branches)
	require.Len(t, host.prs, 1)
	assert.Equal(t, 99, report.PRNumber)
	require.Len(t, host.comments, 1)
	assert.Contains(t, host.comments[0], "https://github.com/o/r/pull/99")
	assert.Equal(t, StatePRCreated, o.State())

	// The prompt carried the issue text.
	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "Increase counter to 42")
}

func TestRunNoFencesCommentsAndStops(t *testing.T) {
	issue := &models.Issue{Number: 5, Title: "t", Body: "b"}
	host := newFakeHost()
	o := newTestOrchestrator(host, &fakeProvider{response: "I cannot propose a change."}, issue)

	report, err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, host.branches, "no branch should be created")
	assert.Empty(t, host.prs)
	require.Len(t, host.comments, 1)
	assert.Contains(t, host.comments[0], "could not determine")
	assert.Equal(t, 0, report.AppliedCount())
	assert.Equal(t, StateNoChangesCommented, o.State())
}

func TestRunPartialWriteFailure(t *testing.T) {
	issue := &models.Issue{Number: 3, Title: "t", Body: "b"}
	var response strings.Builder
	for _, name := range []string{"a", "b", "c"} {
		fmt.Fprintf(&response, "```typescript:src/%s.ts\nexport const %s = 1\n```\n", name, name)
	}

	host := newFakeHost()
	host.putErrs["src/b.ts"] = githost.ErrStaleFile
	o := newTestOrchestrator(host, &fakeProvider{response: response.String()}, issue)

	report, err := o.Run(context.Background())
	require.NoError(t, err, "one bad file must not abort the run")

	assert.Equal(t, []string{"src/a.ts", "src/c.ts"}, host.puts)
	assert.Equal(t, 2, report.AppliedCount())
	assert.Equal(t, 1, report.FailedCount())
	require.Len(t, host.prs, 1, "PR is still created")
	assert.Equal(t, StatePRCreated, o.State())
}

func TestRunCompletionFailureIsFatal(t *testing.T) {
	issue := &models.Issue{Number: 1, Title: "t", Body: "b"}
	host := newFakeHost()
	o := newTestOrchestrator(host, &fakeProvider{err: fmt.Errorf("rate limited")}, issue)

	_, err := o.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailed, o.State())
	assert.Empty(t, host.branches)
	assert.Empty(t, host.comments)
}

func TestRunUpdatesExistingFileWithPriorSHA(t *testing.T) {
	issue := &models.Issue{Number: 2, Title: "t", Body: "b"}
	host := newFakeHost()
	host.files["src/App.tsx"] = &githost.RemoteFile{Content: "old", SHA: "blob1"}
	response := "```typescript:src/App.tsx\nnew content\n```"
	o := newTestOrchestrator(host, &fakeProvider{response: response}, issue)

	report, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.AppliedCount())
	assert.Equal(t, []string{"src/App.tsx"}, host.puts)
}
