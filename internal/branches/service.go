package branches

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/cleanmybranch/internal/execshell"
	"github.com/temirov/cleanmybranch/internal/jira"
)

const (
	gitBranchSubcommandConstant = "branch"
	gitPushSubcommandConstant   = "push"
	gitDeleteFlagConstant       = "--delete"
	gitForceFlagConstant        = "--force"

	gitTerminalPromptEnvironmentNameConstant = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledValueConstant   = "0"

	branchListSectionTitleConstant  = "Branch List"
	issueStatusSectionTitleConstant = "Jira Issue"
	lookupProgressMessageConstant   = "Resolving Jira issues"

	// DefaultRemoteName is the remote that receives branch deletions.
	DefaultRemoteName = "origin"
	// DefaultConcurrency bounds simultaneous issue lookups.
	DefaultConcurrency = 4

	logFieldProjectPathConstant  = "project_path"
	logFieldBranchConstant       = "branch"
	logFieldIssueKeyConstant     = "issue_key"
	logFieldRemoteConstant       = "remote"
	logFieldBranchCountConstant  = "branch_count"
	logFieldDeletedCountConstant = "deleted_count"
	logFieldDryRunConstant       = "dry_run"

	branchesListedMessageConstant          = "branches listed"
	issueLookupFailedMessageConstant       = "issue lookup failed"
	localDeletionFailedMessageConstant     = "local branch deletion failed"
	remoteDeletionFailedMessageConstant    = "remote branch deletion failed"
	checkedOutBranchSkippedMessageConstant = "checked out branch skipped"
	pruneCompletedMessageConstant          = "prune completed"

	gitExecutorMissingMessageConstant     = "git executor not configured"
	issueResolverMissingMessageConstant   = "issue status resolver not configured"
	projectPathRequiredMessageConstant    = "must be provided"
	projectPathFieldNameConstant          = "project_path"
	branchListErrorTemplateConstant       = "unable to list branches: %w"
	localDeletionErrorTemplateConstant    = "unable to delete local branch %s: %w"
	remoteDeletionErrorTemplateConstant   = "unable to delete branch %s on %s: %w"
	checkedOutBranchMessageConstant       = "branch is checked out"
	checkedOutBranchErrorTemplateConstant = "unable to delete branch %s: %w"
)

// ErrBranchCheckedOut indicates a closed branch was kept because it is checked out in a worktree.
var ErrBranchCheckedOut = errors.New(checkedOutBranchMessageConstant)

var (
	errGitExecutorMissing   = errors.New(gitExecutorMissingMessageConstant)
	errIssueResolverMissing = errors.New(issueResolverMissingMessageConstant)
)

// DefaultClosedStatuses lists the tracker states that make a branch eligible for deletion.
func DefaultClosedStatuses() []string {
	return []string{"Closed", "Close"}
}

// InvalidInputError describes prune option validation failures.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", inputError.FieldName, inputError.Message)
}

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// IssueStatusResolver looks up the status name of an issue.
type IssueStatusResolver interface {
	IssueStatus(executionContext context.Context, session jira.Session, issueKey string) (string, error)
}

// ReportPrinter renders the human-facing report.
type ReportPrinter interface {
	Section(title string)
	Branch(branchName string, issueKey string)
	IssueStatus(issueKey string, statusOrError string)
	Deletion(branchName string, dryRun bool)
	DeletionFailure(branchName string, failure error)
}

// ProgressIndicator signals that lookups are in flight.
type ProgressIndicator interface {
	Start(message string)
	Stop()
}

// ServiceDependencies describes the collaborators of Service.
type ServiceDependencies struct {
	Logger        *zap.Logger
	GitExecutor   GitExecutor
	IssueResolver IssueStatusResolver
	Printer       ReportPrinter
	Progress      ProgressIndicator
}

// PruneOptions configures one prune run.
type PruneOptions struct {
	ProjectPath    string
	RemoteName     string
	ClosedStatuses []string
	DryRun         bool
	Concurrency    int
	Session        jira.Session
	Matcher        *IssueKeyMatcher
}

// BranchOutcome records what happened to one branch.
type BranchOutcome struct {
	Item           BranchItem
	Status         string
	LookupError    error
	Closed         bool
	Deleted        bool
	DeletionErrors []error
}

// PruneReport lists branch outcomes in branch-list order.
type PruneReport struct {
	Outcomes []BranchOutcome
}

// DeletedBranches returns the names of branches removed (or that would be removed in a dry run).
func (report PruneReport) DeletedBranches() []string {
	deletedBranches := make([]string, 0, len(report.Outcomes))
	for _, outcome := range report.Outcomes {
		if outcome.Deleted {
			deletedBranches = append(deletedBranches, outcome.Item.BranchName)
		}
	}
	return deletedBranches
}

// Service lists, resolves, and prunes branches of a single project.
type Service struct {
	logger        *zap.Logger
	gitExecutor   GitExecutor
	issueResolver IssueStatusResolver
	printer       ReportPrinter
	progress      ProgressIndicator
}

// NewService constructs a Service with the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, errGitExecutorMissing
	}
	if dependencies.IssueResolver == nil {
		return nil, errIssueResolverMissing
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var printer ReportPrinter = noopReportPrinter{}
	if dependencies.Printer != nil {
		printer = dependencies.Printer
	}

	var progress ProgressIndicator = noopProgressIndicator{}
	if dependencies.Progress != nil {
		progress = dependencies.Progress
	}

	return &Service{
		logger:        logger,
		gitExecutor:   dependencies.GitExecutor,
		issueResolver: dependencies.IssueResolver,
		printer:       printer,
		progress:      progress,
	}, nil
}

// ListBranches runs `git branch` inside projectPath and parses its output.
func (service *Service) ListBranches(executionContext context.Context, projectPath string, matcher *IssueKeyMatcher) ([]BranchItem, error) {
	result, executionError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitBranchSubcommandConstant},
		WorkingDirectory: projectPath,
	})
	if executionError != nil {
		return nil, fmt.Errorf(branchListErrorTemplateConstant, executionError)
	}

	items := ParseBranchList(result.StandardOutput, matcher)
	service.logger.Debug(branchesListedMessageConstant, zap.String(logFieldProjectPathConstant, projectPath), zap.Int(logFieldBranchCountConstant, len(items)))
	return items, nil
}

// Prune lists the project's branches, resolves every embedded issue key, and deletes each branch whose
// issue status is closed. Lookup and deletion failures are recorded in the report; only a listing
// failure or cancellation aborts the run.
func (service *Service) Prune(executionContext context.Context, options PruneOptions) (PruneReport, error) {
	normalizedOptions, validationError := normalizeOptions(options)
	if validationError != nil {
		return PruneReport{}, validationError
	}

	service.printer.Section(branchListSectionTitleConstant)
	items, listError := service.ListBranches(executionContext, normalizedOptions.ProjectPath, normalizedOptions.Matcher)
	if listError != nil {
		return PruneReport{}, listError
	}
	for _, item := range items {
		service.printer.Branch(item.BranchName, item.IssueKey)
	}

	service.printer.Section(issueStatusSectionTitleConstant)
	outcomes, resolveError := service.resolveStatuses(executionContext, items, normalizedOptions)
	if resolveError != nil {
		return PruneReport{}, resolveError
	}

	closedStatuses := make(map[string]struct{}, len(normalizedOptions.ClosedStatuses))
	for _, closedStatus := range normalizedOptions.ClosedStatuses {
		closedStatuses[closedStatus] = struct{}{}
	}

	for outcomeIndex := range outcomes {
		outcome := &outcomes[outcomeIndex]
		if !outcome.Item.HasIssueKey() {
			continue
		}

		if outcome.LookupError != nil {
			service.printer.IssueStatus(outcome.Item.IssueKey, outcome.LookupError.Error())
			continue
		}
		service.printer.IssueStatus(outcome.Item.IssueKey, outcome.Status)

		if _, closed := closedStatuses[outcome.Status]; !closed {
			continue
		}
		outcome.Closed = true

		if contextError := executionContext.Err(); contextError != nil {
			return PruneReport{Outcomes: outcomes}, contextError
		}

		if outcome.Item.CheckedOut() {
			skippedError := fmt.Errorf(checkedOutBranchErrorTemplateConstant, outcome.Item.BranchName, ErrBranchCheckedOut)
			service.logger.Warn(checkedOutBranchSkippedMessageConstant, zap.String(logFieldBranchConstant, outcome.Item.BranchName))
			service.printer.DeletionFailure(outcome.Item.BranchName, skippedError)
			outcome.DeletionErrors = append(outcome.DeletionErrors, skippedError)
			continue
		}

		service.printer.Deletion(outcome.Item.BranchName, normalizedOptions.DryRun)
		if normalizedOptions.DryRun {
			outcome.Deleted = true
			continue
		}
		service.deleteBranch(executionContext, outcome, normalizedOptions)
	}

	report := PruneReport{Outcomes: outcomes}
	service.logger.Info(
		pruneCompletedMessageConstant,
		zap.String(logFieldProjectPathConstant, normalizedOptions.ProjectPath),
		zap.Int(logFieldBranchCountConstant, len(outcomes)),
		zap.Int(logFieldDeletedCountConstant, len(report.DeletedBranches())),
		zap.Bool(logFieldDryRunConstant, normalizedOptions.DryRun),
	)
	return report, nil
}

func (service *Service) resolveStatuses(executionContext context.Context, items []BranchItem, options PruneOptions) ([]BranchOutcome, error) {
	outcomes := make([]BranchOutcome, len(items))
	lookupCount := 0
	for itemIndex, item := range items {
		outcomes[itemIndex].Item = item
		if item.HasIssueKey() {
			lookupCount++
		}
	}
	if lookupCount == 0 {
		return outcomes, nil
	}

	service.progress.Start(lookupProgressMessageConstant)
	defer service.progress.Stop()

	lookupGroup, groupContext := errgroup.WithContext(executionContext)
	lookupGroup.SetLimit(options.Concurrency)
	for itemIndex := range outcomes {
		outcome := &outcomes[itemIndex]
		if !outcome.Item.HasIssueKey() {
			continue
		}
		lookupGroup.Go(func() error {
			status, lookupError := service.issueResolver.IssueStatus(groupContext, options.Session, outcome.Item.IssueKey)
			if lookupError != nil {
				service.logger.Warn(issueLookupFailedMessageConstant, zap.String(logFieldIssueKeyConstant, outcome.Item.IssueKey), zap.Error(lookupError))
				outcome.LookupError = lookupError
				return nil
			}
			outcome.Status = status
			return nil
		})
	}

	if waitError := lookupGroup.Wait(); waitError != nil {
		return nil, waitError
	}
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}
	return outcomes, nil
}

func (service *Service) deleteBranch(executionContext context.Context, outcome *BranchOutcome, options PruneOptions) {
	branchName := outcome.Item.BranchName

	_, localError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitBranchSubcommandConstant, gitDeleteFlagConstant, gitForceFlagConstant, branchName},
		WorkingDirectory: options.ProjectPath,
	})
	if localError != nil {
		wrappedError := fmt.Errorf(localDeletionErrorTemplateConstant, branchName, localError)
		service.logger.Warn(localDeletionFailedMessageConstant, zap.String(logFieldBranchConstant, branchName), zap.Error(localError))
		service.printer.DeletionFailure(branchName, wrappedError)
		outcome.DeletionErrors = append(outcome.DeletionErrors, wrappedError)
	}

	_, remoteError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitPushSubcommandConstant, options.RemoteName, gitDeleteFlagConstant, branchName},
		WorkingDirectory:     options.ProjectPath,
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptDisabledValueConstant},
	})
	if remoteError != nil {
		wrappedError := fmt.Errorf(remoteDeletionErrorTemplateConstant, branchName, options.RemoteName, remoteError)
		service.logger.Warn(remoteDeletionFailedMessageConstant, zap.String(logFieldBranchConstant, branchName), zap.String(logFieldRemoteConstant, options.RemoteName), zap.Error(remoteError))
		service.printer.DeletionFailure(branchName, wrappedError)
		outcome.DeletionErrors = append(outcome.DeletionErrors, wrappedError)
	}

	outcome.Deleted = len(outcome.DeletionErrors) == 0
}

func normalizeOptions(options PruneOptions) (PruneOptions, error) {
	normalized := options
	normalized.ProjectPath = strings.TrimSpace(options.ProjectPath)
	if len(normalized.ProjectPath) == 0 {
		return PruneOptions{}, InvalidInputError{FieldName: projectPathFieldNameConstant, Message: projectPathRequiredMessageConstant}
	}

	normalized.RemoteName = strings.TrimSpace(options.RemoteName)
	if len(normalized.RemoteName) == 0 {
		normalized.RemoteName = DefaultRemoteName
	}

	normalized.ClosedStatuses = sanitizeValues(options.ClosedStatuses)
	if len(normalized.ClosedStatuses) == 0 {
		normalized.ClosedStatuses = DefaultClosedStatuses()
	}

	if normalized.Concurrency <= 0 {
		normalized.Concurrency = DefaultConcurrency
	}

	if normalized.Matcher == nil {
		normalized.Matcher = NewIssueKeyMatcher(false)
	}

	return normalized, nil
}

type noopReportPrinter struct{}

func (noopReportPrinter) Section(string)                {}
func (noopReportPrinter) Branch(string, string)         {}
func (noopReportPrinter) IssueStatus(string, string)    {}
func (noopReportPrinter) Deletion(string, bool)         {}
func (noopReportPrinter) DeletionFailure(string, error) {}

type noopProgressIndicator struct{}

func (noopProgressIndicator) Start(string) {}
func (noopProgressIndicator) Stop()        {}
