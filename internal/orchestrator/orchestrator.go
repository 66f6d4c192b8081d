package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/qiniu/x/log"

	"github.com/siddharthkul/voyager-gha/internal/config"
	"github.com/siddharthkul/voyager-gha/internal/extract"
	"github.com/siddharthkul/voyager-gha/internal/githost"
	"github.com/siddharthkul/voyager-gha/internal/llm"
	"github.com/siddharthkul/voyager-gha/internal/plan"
	"github.com/siddharthkul/voyager-gha/internal/validate"
	"github.com/siddharthkul/voyager-gha/pkg/models"
)

// State names the steps of one run. Transitions are strictly sequential;
// anything but a per-file write failure moves to StateFailed.
type State string

const (
	StateFetchingIssue        State = "fetching_issue"
	StateRequestingCompletion State = "requesting_completion"
	StateExtracting           State = "extracting"
	StateValidating           State = "validating"
	StatePlanning             State = "planning"
	StateCreatingBranch       State = "creating_branch"
	StateApplyingChanges      State = "applying_changes"
	StateReportingResult      State = "reporting_result"

	StatePRCreated          State = "pr_created"
	StateNoChangesCommented State = "no_changes_commented"
	StateFailed             State = "failed"
)

// commentContextLimit caps how many issue comments are folded into the prompt.
const commentContextLimit = 20

// IssueSource supplies the one issue a run handles.
type IssueSource interface {
	Issue() (*models.Issue, error)
}

// Orchestrator drives one issue event end to end: issue → completion →
// extraction → validation → plan → branch → writes → report.
type Orchestrator struct {
	cfg       *config.Config
	issues    IssueSource
	host      githost.Host
	provider  llm.Provider
	extractor *extract.Extractor
	validator *validate.Validator
	now       func() time.Time

	state State
}

func New(cfg *config.Config, issues IssueSource, host githost.Host, provider llm.Provider) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		issues:    issues,
		host:      host,
		provider:  provider,
		extractor: extract.New(cfg.SourceRoot()),
		validator: validate.New(cfg.Policy),
		now:       time.Now,
	}
}

// State returns the step the orchestrator last entered.
func (o *Orchestrator) State() State {
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.state = s
	log.Infof("State: %s", s)
}

// Run executes the pipeline. The returned report is valid whenever the error
// is nil, including the no-changes outcome.
func (o *Orchestrator) Run(ctx context.Context) (*models.RunReport, error) {
	report, err := o.run(ctx)
	if err != nil {
		o.setState(StateFailed)
	}
	return report, err
}

func (o *Orchestrator) run(ctx context.Context) (*models.RunReport, error) {
	o.setState(StateFetchingIssue)
	issue, err := o.issues.Issue()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issue: %w", err)
	}
	log.Infof("Handling issue #%d: %s", issue.Number, issue.Title)

	o.setState(StateRequestingCompletion)
	comments, err := o.host.IssueComments(ctx, issue.Number, commentContextLimit)
	if err != nil {
		// Context enrichment only; the prompt works without it.
		log.Warnf("Skipping issue comment context: %v", err)
		comments = nil
	}
	prompt, err := llm.BuildPrompt(issue, comments, o.cfg.SourceRoot())
	if err != nil {
		return nil, err
	}
	response, err := o.provider.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	o.setState(StateExtracting)
	extracted := o.extractor.Extract(response)
	log.Infof("Extracted %d candidate change(s)", len(extracted))

	o.setState(StateValidating)
	validated, rejected := o.validator.Filter(extracted, issue.Body)
	log.Infof("Validation kept %d of %d change(s)", len(validated), len(extracted))

	o.setState(StatePlanning)
	planned := plan.Plan(validated)

	report := &models.RunReport{}
	for _, rej := range rejected {
		report.Results = append(report.Results, models.ApplyResult{
			Change: rej.Change,
			Status: models.ApplySkipped,
			Reason: rej.Reason.Error(),
		})
	}

	if len(planned) == 0 {
		return report, o.reportNoChanges(ctx, issue)
	}

	o.setState(StateCreatingBranch)
	base, err := o.host.GetDefaultBranch(ctx)
	if err != nil {
		return nil, err
	}
	baseSHA, err := o.host.ResolveRef(ctx, base)
	if err != nil {
		return nil, err
	}
	branch := githost.BranchName(o.cfg.BranchPrefix, issue.Number, o.now())
	if err := o.host.CreateBranch(ctx, branch, baseSHA); err != nil {
		return nil, err
	}
	report.Branch = branch

	o.setState(StateApplyingChanges)
	o.applyChanges(ctx, issue, planned, branch, report)

	o.setState(StateReportingResult)
	if report.AppliedCount() == 0 {
		return report, o.reportNoChanges(ctx, issue)
	}
	return report, o.reportPullRequest(ctx, issue, response, branch, base, report)
}

// applyChanges writes the plan one file at a time, in order. A failed write
// is recorded and skipped; it never aborts the remaining files.
func (o *Orchestrator) applyChanges(ctx context.Context, issue *models.Issue, planned []models.FileChange, branch string, report *models.RunReport) {
	for _, change := range planned {
		priorSHA := ""
		existing, err := o.host.GetFile(ctx, change.Path, branch)
		switch {
		case err == nil:
			priorSHA = existing.SHA
		case errors.Is(err, githost.ErrFileNotFound):
			// New file.
		default:
			log.Errorf("Skipping %s, lookup failed: %v", change.Path, err)
			report.Results = append(report.Results, models.ApplyResult{
				Change: change, Status: models.ApplyFailed, Reason: err.Error(),
			})
			continue
		}

		message := fmt.Sprintf("Update %s for issue #%d", change.Path, issue.Number)
		if err := o.host.PutFile(ctx, change, branch, message, priorSHA); err != nil {
			log.Errorf("Skipping %s, write failed: %v", change.Path, err)
			report.Results = append(report.Results, models.ApplyResult{
				Change: change, Status: models.ApplyFailed, Reason: err.Error(),
			})
			continue
		}
		report.Results = append(report.Results, models.ApplyResult{
			Change: change, Status: models.ApplyApplied,
		})
	}
}

func (o *Orchestrator) reportNoChanges(ctx context.Context, issue *models.Issue) error {
	body := fmt.Sprintf("Voyager could not determine any applicable file changes for issue #%d. "+
		"No pull request was created.", issue.Number)
	if err := o.host.CreateIssueComment(ctx, issue.Number, body); err != nil {
		return err
	}
	o.setState(StateNoChangesCommented)
	return nil
}

func (o *Orchestrator) reportPullRequest(ctx context.Context, issue *models.Issue, response, branch, base string, report *models.RunReport) error {
	title := fmt.Sprintf("Voyager: resolve issue #%d - %s", issue.Number, issue.Title)
	pr, err := o.host.CreatePullRequest(ctx, title, buildPRBody(issue, response, report), branch, base)
	if err != nil {
		return err
	}
	report.PRNumber = pr.Number
	report.PRURL = pr.URL

	comment := fmt.Sprintf("Voyager opened %s with %d change(s) for this issue.", pr.URL, report.AppliedCount())
	if report.FailedCount() > 0 {
		comment += fmt.Sprintf(" %d file(s) could not be written and were skipped.", report.FailedCount())
	}
	if err := o.host.CreateIssueComment(ctx, issue.Number, comment); err != nil {
		return err
	}

	o.setState(StatePRCreated)
	return nil
}

func buildPRBody(issue *models.Issue, response string, report *models.RunReport) string {
	body := fmt.Sprintf("Automated changes for issue #%d.\n\n### Files\n", issue.Number)
	for _, res := range report.Results {
		switch res.Status {
		case models.ApplyApplied:
			body += fmt.Sprintf("- `%s` — applied\n", res.Change.Path)
		case models.ApplyFailed:
			body += fmt.Sprintf("- `%s` — failed: %s\n", res.Change.Path, res.Reason)
		case models.ApplySkipped:
			body += fmt.Sprintf("- `%s` — skipped: %s\n", res.Change.Path, res.Reason)
		}
	}
	body += fmt.Sprintf("\n<details>\n<summary>Raw model response</summary>\n\n%s\n\n</details>\n", response)
	body += fmt.Sprintf("\nCloses #%d\n", issue.Number)
	return body
}
