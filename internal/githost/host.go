package githost

import (
	"context"
	"errors"

	"github.com/siddharthkul/voyager-gha/pkg/models"
)

var (
	// ErrFileNotFound means the path does not exist on the branch yet; the
	// write becomes a create instead of an update.
	ErrFileNotFound = errors.New("file not found")

	// ErrStaleFile means the prior version identifier no longer matches the
	// branch head. The caller skips the file and keeps going.
	ErrStaleFile = errors.New("stale file version")
)

// RemoteFile is a file's current state on a branch.
type RemoteFile struct {
	Content string
	SHA     string
}

// PullRequest identifies a created pull request.
type PullRequest struct {
	Number int
	URL    string
}

// Host is the repository-side surface the pipeline needs. All operations are
// awaited sequentially; no two calls run concurrently within one run.
type Host interface {
	// GetDefaultBranch returns the repository's default branch name.
	GetDefaultBranch(ctx context.Context) (string, error)

	// ResolveRef resolves a branch name to its head commit SHA.
	ResolveRef(ctx context.Context, branch string) (string, error)

	// CreateBranch creates a new branch ref pointing at fromSHA.
	CreateBranch(ctx context.Context, name, fromSHA string) error

	// GetFile fetches a file's content and blob SHA from a branch. Returns
	// ErrFileNotFound when the path does not exist there.
	GetFile(ctx context.Context, path, branch string) (*RemoteFile, error)

	// PutFile creates or updates a file on a branch. priorSHA is empty for a
	// create; a mismatched priorSHA fails with ErrStaleFile.
	PutFile(ctx context.Context, change models.FileChange, branch, message, priorSHA string) error

	// CreatePullRequest opens a PR from head into base.
	CreatePullRequest(ctx context.Context, title, body, head, base string) (*PullRequest, error)

	// CreateIssueComment posts a comment on an issue.
	CreateIssueComment(ctx context.Context, number int, body string) error

	// IssueComments returns the bodies of the most recent comments on an
	// issue, oldest first.
	IssueComments(ctx context.Context, number, limit int) ([]string, error)
}
