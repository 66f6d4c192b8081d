package validate

import (
	"errors"
	"strings"

	"github.com/qiniu/x/log"

	"github.com/siddharthkul/voyager-gha/pkg/models"
)

// Rejection reasons. These are filtering decisions, not failures: each one is
// logged and the run continues.
var (
	ErrIncompleteChange      = errors.New("incomplete change")
	ErrOutOfPolicyRoot       = errors.New("out of policy root")
	ErrSensitiveNotRequested = errors.New("sensitive extension not requested")
)

// Rejection pairs a discarded change with the rule that discarded it.
type Rejection struct {
	Change models.FileChange
	Reason error
}

// Validator filters extracted changes against the run's policy.
type Validator struct {
	policy models.Policy
}

func New(policy models.Policy) *Validator {
	return &Validator{policy: policy}
}

// Filter returns the changes that pass policy, in their original order, plus
// the rejected ones with their reasons. issueBody authorizes sensitive
// extensions via a case-insensitive substring match.
func (v *Validator) Filter(changes []models.FileChange, issueBody string) ([]models.FileChange, []Rejection) {
	body := strings.ToLower(issueBody)

	var kept []models.FileChange
	var rejected []Rejection
	for _, change := range changes {
		if err := v.Check(change, body); err != nil {
			log.Warnf("Rejecting change for %q: %v", change.Path, err)
			rejected = append(rejected, Rejection{Change: change, Reason: err})
			continue
		}
		kept = append(kept, change)
	}
	return kept, rejected
}

// Check applies the policy rules to a single change. lowerBody must already
// be lowercased. A nil return means the change is accepted.
func (v *Validator) Check(change models.FileChange, lowerBody string) error {
	if change.Path == "" || strings.TrimSpace(change.Content) == "" {
		return ErrIncompleteChange
	}

	if !v.policy.UnderAllowedRoot(change.Path) {
		if !v.policy.ExemptImportPaths || !models.IsImportPath(change.Path) {
			return ErrOutOfPolicyRoot
		}
	}

	// Sensitive file types need an explicit opt-in: the issue author must
	// have mentioned the extension themselves.
	if ext, sensitive := v.policy.IsSensitive(change.Path); sensitive {
		if !strings.Contains(lowerBody, ext) {
			return ErrSensitiveNotRequested
		}
	}

	return nil
}
