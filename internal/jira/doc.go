// Package jira talks to the Jira REST endpoints clean-my-branch needs:
// session creation to validate credentials and issue lookup to read an
// issue's status.
package jira
