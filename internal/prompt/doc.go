// Package prompt collects the interactive answers clean-my-branch needs: which project to
// prune and which Jira account to use.
//
// TerminalPrompter renders bubbletea models when attached to a terminal. StreamPrompter
// reads plain lines and is used for pipes and tests.
package prompt
