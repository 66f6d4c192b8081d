package githost

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"
)

// issueCommentsQuery fetches the tail of an issue's comment thread in one
// round trip.
type issueCommentsQuery struct {
	Repository struct {
		Issue struct {
			Comments struct {
				Nodes []struct {
					Body   githubv4.String
					Author struct {
						Login githubv4.String
					}
				}
			} `graphql:"comments(last: $limit)"`
		} `graphql:"issue(number: $number)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// IssueComments returns the bodies of the most recent comments on an issue,
// oldest first, prefixed with the author login.
func (c *Client) IssueComments(ctx context.Context, number, limit int) ([]string, error) {
	var query issueCommentsQuery
	variables := map[string]interface{}{
		"owner":  githubv4.String(c.owner),
		"name":   githubv4.String(c.repo),
		"number": githubv4.Int(number),
		"limit":  githubv4.Int(limit),
	}

	if err := c.v4.Query(ctx, &query, variables); err != nil {
		return nil, fmt.Errorf("failed to fetch comments for issue #%d: %w", number, err)
	}

	nodes := query.Repository.Issue.Comments.Nodes
	comments := make([]string, 0, len(nodes))
	for _, node := range nodes {
		comments = append(comments, fmt.Sprintf("@%s: %s", node.Author.Login, node.Body))
	}
	return comments, nil
}
