package branches

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/temirov/cleanmybranch/internal/execshell"
	"github.com/temirov/cleanmybranch/internal/jira"
	"github.com/temirov/cleanmybranch/internal/projects"
	"github.com/temirov/cleanmybranch/internal/prompt"
	"github.com/temirov/cleanmybranch/internal/ui"
)

const (
	commandUseConstant                    = "prune"
	commandShortDescriptionConstant       = "Delete local and remote branches whose Jira issue is closed"
	commandLongDescriptionConstant        = "prune lists the branches of a sibling project, resolves the Jira issue embedded in each branch name, and deletes every branch whose issue is closed, locally and on the remote."
	commandExecutionErrorTemplateConstant = "prune failed: %w"
	unexpectedArgumentsMessageConstant    = "prune does not accept positional arguments"
	workingDirectoryErrorTemplateConstant = "unable to determine working directory: %w"
	projectSelectionErrorTemplateConstant = "project selection failed: %w"
	credentialsErrorTemplateConstant      = "credential collection failed: %w"
	trackerCreationErrorTemplateConstant  = "unable to create jira client: %w"
	flagProjectNameConstant               = "project"
	flagProjectDescriptionConstant        = "Project directory to prune (skips the project prompt)"
	flagProjectsRootNameConstant          = "projects-root"
	flagProjectsRootDescriptionConstant   = "Directory whose subdirectories are offered as projects (defaults to the parent of the working directory)"
	flagRemoteNameConstant                = "remote"
	flagRemoteDescriptionConstant         = "Name of the remote that receives branch deletions"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Report branches that would be deleted without deleting them"
	flagConcurrencyNameConstant           = "concurrency"
	flagConcurrencyDescriptionConstant    = "Maximum number of simultaneous Jira lookups"
	flagClosedStatusNameConstant          = "closed-status"
	flagClosedStatusDescriptionConstant   = "Issue status that marks a branch for deletion (repeatable)"
	flagUnseparatedKeysNameConstant       = "match-keys-without-separator"
	flagUnseparatedKeysDescription        = "Also match issue keys that are not preceded by a slash"
	logFieldProjectConstant               = "project"
	logFieldProjectsRootConstant          = "projects_root"
	projectSelectedMessageConstant        = "project selected"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current prune configuration.
type ConfigurationProvider func() CommandConfiguration

// JiraConfigurationProvider returns the current tracker configuration.
type JiraConfigurationProvider func() jira.Configuration

// IssueTracker authenticates against the tracker and resolves issue statuses.
type IssueTracker interface {
	IssueStatusResolver
	Login(executionContext context.Context, credentials jira.Credentials) (jira.Session, error)
}

// ProjectLister enumerates candidate projects.
type ProjectLister interface {
	ListProjects(root string) ([]string, error)
}

// CommandBuilder assembles the Cobra command for branch pruning.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        ConfigurationProvider
	JiraConfigurationProvider    JiraConfigurationProvider
	GitExecutor                  GitExecutor
	IssueTracker                 IssueTracker
	ProjectLister                ProjectLister
	Prompter                     prompt.Prompter
	Printer                      ReportPrinter
	Progress                     ProgressIndicator
	WorkingDirectory             string
}

// Build constructs the prune command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(flagProjectNameConstant, "", flagProjectDescriptionConstant)
	command.Flags().String(flagProjectsRootNameConstant, "", flagProjectsRootDescriptionConstant)
	command.Flags().String(flagRemoteNameConstant, defaults.RemoteName, flagRemoteDescriptionConstant)
	command.Flags().Bool(flagDryRunNameConstant, false, flagDryRunDescriptionConstant)
	command.Flags().Int(flagConcurrencyNameConstant, defaults.Concurrency, flagConcurrencyDescriptionConstant)
	command.Flags().StringSlice(flagClosedStatusNameConstant, nil, flagClosedStatusDescriptionConstant)
	command.Flags().Bool(flagUnseparatedKeysNameConstant, false, flagUnseparatedKeysDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	configuration := builder.applyFlagOverrides(command, builder.resolveConfiguration())
	jiraConfiguration := builder.resolveJiraConfiguration()
	logger := builder.resolveLogger()

	projectsRoot, toolDirectoryName, rootError := builder.resolveProjectsRoot(configuration)
	if rootError != nil {
		return rootError
	}

	lister := builder.ProjectLister
	if lister == nil {
		lister = projects.NewLister(toolDirectoryName, configuration.ExcludedProjects...)
	}

	availableProjects, listError := lister.ListProjects(projectsRoot)
	if listError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, listError)
	}

	prompter := builder.resolvePrompter()
	projectName, selectionError := builder.selectProject(prompter, availableProjects, configuration.Project)
	if selectionError != nil {
		return fmt.Errorf(projectSelectionErrorTemplateConstant, selectionError)
	}
	logger.Info(projectSelectedMessageConstant, zap.String(logFieldProjectConstant, projectName), zap.String(logFieldProjectsRootConstant, projectsRoot))

	credentials, configured := jiraConfiguration.ConfiguredCredentials()
	if !configured {
		promptedCredentials, credentialsError := prompter.Credentials()
		if credentialsError != nil {
			return fmt.Errorf(credentialsErrorTemplateConstant, credentialsError)
		}
		credentials = promptedCredentials
	}

	tracker, trackerError := builder.resolveIssueTracker(jiraConfiguration, logger)
	if trackerError != nil {
		return trackerError
	}

	session, loginError := tracker.Login(executionContext, credentials)
	if loginError != nil {
		return loginError
	}

	gitExecutor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:        logger,
		GitExecutor:   gitExecutor,
		IssueResolver: tracker,
		Printer:       builder.resolvePrinter(command),
		Progress:      builder.resolveProgress(),
	})
	if serviceError != nil {
		return serviceError
	}

	_, pruneError := service.Prune(executionContext, PruneOptions{
		ProjectPath:    filepath.Join(projectsRoot, projectName),
		RemoteName:     configuration.RemoteName,
		ClosedStatuses: configuration.ClosedStatuses,
		DryRun:         configuration.DryRun,
		Concurrency:    configuration.Concurrency,
		Session:        session,
		Matcher:        NewIssueKeyMatcher(configuration.MatchKeysWithoutSeparator),
	})
	if pruneError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, pruneError)
	}

	return nil
}

func (builder *CommandBuilder) applyFlagOverrides(command *cobra.Command, configuration CommandConfiguration) CommandConfiguration {
	flagSet := command.Flags()

	if flagSet.Changed(flagProjectNameConstant) {
		projectValue, _ := flagSet.GetString(flagProjectNameConstant)
		configuration.Project = strings.TrimSpace(projectValue)
	}
	if flagSet.Changed(flagProjectsRootNameConstant) {
		projectsRootValue, _ := flagSet.GetString(flagProjectsRootNameConstant)
		configuration.ProjectsRoot = strings.TrimSpace(projectsRootValue)
	}
	if flagSet.Changed(flagRemoteNameConstant) {
		remoteValue, _ := flagSet.GetString(flagRemoteNameConstant)
		if trimmedRemote := strings.TrimSpace(remoteValue); len(trimmedRemote) > 0 {
			configuration.RemoteName = trimmedRemote
		}
	}
	if flagSet.Changed(flagDryRunNameConstant) {
		configuration.DryRun, _ = flagSet.GetBool(flagDryRunNameConstant)
	}
	if flagSet.Changed(flagConcurrencyNameConstant) {
		concurrencyValue, _ := flagSet.GetInt(flagConcurrencyNameConstant)
		if concurrencyValue > 0 {
			configuration.Concurrency = concurrencyValue
		}
	}
	if flagSet.Changed(flagClosedStatusNameConstant) {
		closedStatuses, _ := flagSet.GetStringSlice(flagClosedStatusNameConstant)
		if sanitizedStatuses := sanitizeValues(closedStatuses); len(sanitizedStatuses) > 0 {
			configuration.ClosedStatuses = sanitizedStatuses
		}
	}
	if flagSet.Changed(flagUnseparatedKeysNameConstant) {
		configuration.MatchKeysWithoutSeparator, _ = flagSet.GetBool(flagUnseparatedKeysNameConstant)
	}

	return configuration
}

func (builder *CommandBuilder) selectProject(prompter prompt.Prompter, availableProjects []string, configuredProject string) (string, error) {
	if len(configuredProject) > 0 {
		return projects.ResolveSelection(availableProjects, configuredProject)
	}
	return prompter.SelectProject(availableProjects)
}

func (builder *CommandBuilder) resolveProjectsRoot(configuration CommandConfiguration) (string, string, error) {
	workingDirectory := builder.WorkingDirectory
	if len(workingDirectory) == 0 {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return "", "", fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	defaultRoot, toolDirectoryName, rootError := projects.DefaultRoot(workingDirectory)
	if rootError != nil {
		return "", "", rootError
	}
	if len(configuration.ProjectsRoot) > 0 {
		return configuration.ProjectsRoot, toolDirectoryName, nil
	}
	return defaultRoot, toolDirectoryName, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveJiraConfiguration() jira.Configuration {
	if builder.JiraConfigurationProvider == nil {
		return jira.DefaultConfiguration()
	}
	return builder.JiraConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger) (GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	observers := []execshell.CommandEventObserver{}
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}

	return execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), observers...)
}

func (builder *CommandBuilder) resolveIssueTracker(configuration jira.Configuration, logger *zap.Logger) (IssueTracker, error) {
	if builder.IssueTracker != nil {
		return builder.IssueTracker, nil
	}

	client, clientError := jira.NewClient(configuration.BaseURL, &http.Client{Timeout: configuration.RequestTimeout}, logger)
	if clientError != nil {
		return nil, fmt.Errorf(trackerCreationErrorTemplateConstant, clientError)
	}
	return client, nil
}

func (builder *CommandBuilder) resolvePrompter() prompt.Prompter {
	if builder.Prompter != nil {
		return builder.Prompter
	}
	return prompt.New(os.Stdin, os.Stdout)
}

func (builder *CommandBuilder) resolvePrinter(command *cobra.Command) ReportPrinter {
	if builder.Printer != nil {
		return builder.Printer
	}
	return ui.NewPrinter(command.OutOrStdout(), !color.NoColor)
}

func (builder *CommandBuilder) resolveProgress() ProgressIndicator {
	if builder.Progress != nil {
		return builder.Progress
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return ui.NewSpinnerProgress(os.Stderr)
}
