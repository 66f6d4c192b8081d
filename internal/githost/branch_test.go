package githost

import (
	"testing"
	"time"
)

func TestBranchName(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	got := BranchName("voyager", 42, now)
	want := "voyager/issue-42-1787486400"
	if got != want {
		t.Errorf("BranchName() = %q, want %q", got, want)
	}
}

func TestBranchNameDistinctAcrossRuns(t *testing.T) {
	first := BranchName("voyager", 7, time.Unix(1000, 0))
	second := BranchName("voyager", 7, time.Unix(1001, 0))
	if first == second {
		t.Errorf("repeated runs on the same issue must not collide: %q", first)
	}
}
