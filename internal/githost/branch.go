package githost

import (
	"fmt"
	"time"
)

// BranchName builds the deterministic branch name for an issue run. The
// timestamp keeps repeated runs on the same issue from colliding.
func BranchName(prefix string, issueNumber int, now time.Time) string {
	return fmt.Sprintf("%s/issue-%d-%d", prefix, issueNumber, now.UTC().Unix())
}
