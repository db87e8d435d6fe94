// Package branches prunes local branches whose Jira issue is closed.
//
// ParseBranchList turns `git branch` output into BranchItem values, Service resolves
// each embedded issue key and deletes the branch locally and on the remote when the
// issue is closed, and CommandBuilder exposes the workflow as the prune command.
package branches
