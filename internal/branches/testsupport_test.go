package branches_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/temirov/cleanmybranch/internal/execshell"
	"github.com/temirov/cleanmybranch/internal/jira"
)

const (
	subtestNameTemplateConstant = "%d_%s"
	testProjectPathConstant     = "/tmp/projects/ProjA"
	testRemoteNameConstant      = "origin"
	gitListArgumentsKeyConstant = "branch"
)

type executedCommandRecord struct {
	arguments        []string
	workingDirectory string
	environment      map[string]string
}

type commandResponse struct {
	result execshell.ExecutionResult
	err    error
}

type fakeGitExecutor struct {
	mutex            sync.Mutex
	responses        map[string]commandResponse
	executedCommands []executedCommandRecord
}

func newFakeGitExecutor() *fakeGitExecutor {
	return &fakeGitExecutor{responses: map[string]commandResponse{}}
}

func (executor *fakeGitExecutor) register(arguments []string, result execshell.ExecutionResult, err error) {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()
	executor.responses[strings.Join(arguments, " ")] = commandResponse{result: result, err: err}
}

func (executor *fakeGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()

	executor.executedCommands = append(executor.executedCommands, executedCommandRecord{
		arguments:        append([]string{}, details.Arguments...),
		workingDirectory: details.WorkingDirectory,
		environment:      details.EnvironmentVariables,
	})

	response, found := executor.responses[strings.Join(details.Arguments, " ")]
	if !found {
		return execshell.ExecutionResult{ExitCode: 0}, nil
	}
	return response.result, response.err
}

func (executor *fakeGitExecutor) commandLines() []string {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()

	lines := make([]string, 0, len(executor.executedCommands))
	for _, record := range executor.executedCommands {
		lines = append(lines, strings.Join(record.arguments, " "))
	}
	return lines
}

type fakeIssueTracker struct {
	mutex          sync.Mutex
	statuses       map[string]string
	lookupErrors   map[string]error
	delays         map[string]time.Duration
	loginError     error
	loginCalls     []jira.Credentials
	lookedUpKeys   []string
	sessions       []jira.Session
	activeLookups  int
	maximumLookups int
}

func (tracker *fakeIssueTracker) Login(_ context.Context, credentials jira.Credentials) (jira.Session, error) {
	tracker.mutex.Lock()
	defer tracker.mutex.Unlock()
	tracker.loginCalls = append(tracker.loginCalls, credentials)
	if tracker.loginError != nil {
		return jira.Session{}, tracker.loginError
	}
	return jira.Session{BaseURL: jira.DefaultBaseURL, Authorization: jira.EncodeBasicAuthorization(credentials)}, nil
}

func (tracker *fakeIssueTracker) IssueStatus(_ context.Context, session jira.Session, issueKey string) (string, error) {
	tracker.mutex.Lock()
	tracker.lookedUpKeys = append(tracker.lookedUpKeys, issueKey)
	tracker.sessions = append(tracker.sessions, session)
	tracker.activeLookups++
	if tracker.activeLookups > tracker.maximumLookups {
		tracker.maximumLookups = tracker.activeLookups
	}
	delay := tracker.delays[issueKey]
	tracker.mutex.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	tracker.mutex.Lock()
	defer tracker.mutex.Unlock()
	tracker.activeLookups--

	if lookupError, found := tracker.lookupErrors[issueKey]; found {
		return "", lookupError
	}
	return tracker.statuses[issueKey], nil
}

func (tracker *fakeIssueTracker) keys() []string {
	tracker.mutex.Lock()
	defer tracker.mutex.Unlock()
	return append([]string{}, tracker.lookedUpKeys...)
}

type recordingPrinter struct {
	lines []string
}

func (printer *recordingPrinter) Section(title string) {
	printer.lines = append(printer.lines, fmt.Sprintf("[ %s ]", title))
}

func (printer *recordingPrinter) Branch(branchName string, issueKey string) {
	printer.lines = append(printer.lines, fmt.Sprintf("branch %s %s", branchName, issueKey))
}

func (printer *recordingPrinter) IssueStatus(issueKey string, statusOrError string) {
	printer.lines = append(printer.lines, fmt.Sprintf("%s => %s", issueKey, statusOrError))
}

func (printer *recordingPrinter) Deletion(branchName string, dryRun bool) {
	if dryRun {
		printer.lines = append(printer.lines, "would delete branch: "+branchName)
		return
	}
	printer.lines = append(printer.lines, "delete branch: "+branchName)
}

func (printer *recordingPrinter) DeletionFailure(branchName string, failure error) {
	printer.lines = append(printer.lines, fmt.Sprintf("failed %s: %v", branchName, failure))
}

type recordingProgress struct {
	started int
	stopped int
}

func (progress *recordingProgress) Start(string) { progress.started++ }

func (progress *recordingProgress) Stop() { progress.stopped++ }

func localDeleteArguments(branchName string) []string {
	return []string{"branch", "--delete", "--force", branchName}
}

func remoteDeleteArguments(remoteName string, branchName string) []string {
	return []string{"push", remoteName, "--delete", branchName}
}
