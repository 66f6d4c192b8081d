package models

// FileChange is an instruction to set a file's full content on a branch.
// Both fields are required; the extractor never emits a record with either
// one empty.
type FileChange struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ApplyStatus is the per-file outcome of the write loop.
type ApplyStatus string

const (
	ApplyApplied ApplyStatus = "applied"
	ApplySkipped ApplyStatus = "skipped"
	ApplyFailed  ApplyStatus = "failed"
)

// ApplyResult records what happened to a single change.
type ApplyResult struct {
	Change FileChange  `json:"change"`
	Status ApplyStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
}

// RunReport aggregates per-file outcomes for one end-to-end run.
type RunReport struct {
	Results  []ApplyResult `json:"results"`
	Branch   string        `json:"branch,omitempty"`
	PRNumber int           `json:"pr_number,omitempty"`
	PRURL    string        `json:"pr_url,omitempty"`
}

// AppliedCount returns how many changes were written successfully.
func (r *RunReport) AppliedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == ApplyApplied {
			n++
		}
	}
	return n
}

// FailedCount returns how many planned writes failed at the host.
func (r *RunReport) FailedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == ApplyFailed {
			n++
		}
	}
	return n
}
