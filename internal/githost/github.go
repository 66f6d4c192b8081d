package githost

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v58/github"
	"github.com/qiniu/x/log"
	"github.com/shurcooL/githubv4"

	"github.com/siddharthkul/voyager-gha/internal/config"
	"github.com/siddharthkul/voyager-gha/pkg/models"
)

// Client implements Host against the GitHub REST and GraphQL APIs. It never
// touches a local checkout; every write goes through the Contents API.
type Client struct {
	gh    *github.Client
	v4    *githubv4.Client
	owner string
	repo  string
}

func NewClient(cfg *config.Config) (*Client, error) {
	owner, repo, err := cfg.GitHub.SplitRepository()
	if err != nil {
		return nil, err
	}

	httpClient, err := newHTTPClient(cfg.GitHub)
	if err != nil {
		return nil, err
	}

	return &Client{
		gh:    github.NewClient(httpClient),
		v4:    githubv4.NewClient(httpClient),
		owner: owner,
		repo:  repo,
	}, nil
}

func (c *Client) GetDefaultBranch(ctx context.Context) (string, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, c.owner, c.repo)
	if err != nil {
		return "", fmt.Errorf("failed to get repository %s/%s: %w", c.owner, c.repo, err)
	}
	branch := repo.GetDefaultBranch()
	if branch == "" {
		return "", fmt.Errorf("repository %s/%s has no default branch", c.owner, c.repo)
	}
	return branch, nil
}

func (c *Client) ResolveRef(ctx context.Context, branch string) (string, error) {
	ref, _, err := c.gh.Git.GetRef(ctx, c.owner, c.repo, "refs/heads/"+branch)
	if err != nil {
		return "", fmt.Errorf("failed to resolve branch %s: %w", branch, err)
	}
	sha := ref.GetObject().GetSHA()
	if sha == "" {
		return "", fmt.Errorf("branch %s resolved to an empty commit", branch)
	}
	return sha, nil
}

func (c *Client) CreateBranch(ctx context.Context, name, fromSHA string) error {
	_, _, err := c.gh.Git.CreateRef(ctx, c.owner, c.repo, &github.Reference{
		Ref:    github.String("refs/heads/" + name),
		Object: &github.GitObject{SHA: github.String(fromSHA)},
	})
	if err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	log.Infof("Created branch %s at %s", name, fromSHA)
	return nil
}

func (c *Client) GetFile(ctx context.Context, path, branch string) (*RemoteFile, error) {
	file, _, resp, err := c.gh.Repositories.GetContents(ctx, c.owner, c.repo, path,
		&github.RepositoryContentGetOptions{Ref: branch})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to get %s on %s: %w", path, branch, err)
	}
	if file == nil {
		// The path resolved to a directory listing.
		return nil, ErrFileNotFound
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &RemoteFile{Content: content, SHA: file.GetSHA()}, nil
}

func (c *Client) PutFile(ctx context.Context, change models.FileChange, branch, message, priorSHA string) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: []byte(change.Content),
		Branch:  github.String(branch),
	}

	var err error
	if priorSHA == "" {
		_, _, err = c.gh.Repositories.CreateFile(ctx, c.owner, c.repo, change.Path, opts)
	} else {
		opts.SHA = github.String(priorSHA)
		_, _, err = c.gh.Repositories.UpdateFile(ctx, c.owner, c.repo, change.Path, opts)
	}
	if err != nil {
		if isStaleVersion(err) {
			return fmt.Errorf("write of %s rejected: %w", change.Path, ErrStaleFile)
		}
		return fmt.Errorf("failed to write %s on %s: %w", change.Path, branch, err)
	}

	log.Infof("Wrote %s on %s", change.Path, branch)
	return nil
}

// isStaleVersion detects the Contents API rejecting a write whose prior blob
// SHA no longer matches the branch head (409, or 422 on a create that raced
// an existing file).
func isStaleVersion(err error) bool {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) || ghErr.Response == nil {
		return false
	}
	code := ghErr.Response.StatusCode
	return code == http.StatusConflict || code == http.StatusUnprocessableEntity
}

func (c *Client) CreatePullRequest(ctx context.Context, title, body, head, base string) (*PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Create(ctx, c.owner, c.repo, &github.NewPullRequest{
		Title: github.String(title),
		Body:  github.String(body),
		Head:  github.String(head),
		Base:  github.String(base),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}

	log.Infof("Created PR #%d: %s", pr.GetNumber(), pr.GetHTMLURL())
	return &PullRequest{Number: pr.GetNumber(), URL: pr.GetHTMLURL()}, nil
}

func (c *Client) CreateIssueComment(ctx context.Context, number int, body string) error {
	_, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, number, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to comment on issue #%d: %w", number, err)
	}
	log.Infof("Commented on issue #%d", number)
	return nil
}
