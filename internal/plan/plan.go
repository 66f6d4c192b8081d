package plan

import (
	"github.com/qiniu/x/log"

	"github.com/siddharthkul/voyager-gha/pkg/models"
)

// Plan assembles the final ordered write list from the validated changes:
// deduplicated by path, first occurrence wins, original order preserved.
func Plan(changes []models.FileChange) []models.FileChange {
	seen := make(map[string]struct{}, len(changes))

	var planned []models.FileChange
	for _, change := range changes {
		if _, dup := seen[change.Path]; dup {
			log.Infof("Dropping duplicate change for %s", change.Path)
			continue
		}
		seen[change.Path] = struct{}{}
		planned = append(planned, change)
	}
	return planned
}
