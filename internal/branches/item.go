package branches

import (
	"regexp"
	"strings"
)

const (
	separatedIssueKeyPatternConstant   = `/([A-Z]+-[0-9]+)`
	unseparatedIssueKeyPatternConstant = `(?:^|[^A-Za-z0-9])([A-Z]+-[0-9]+)`
	currentBranchMarkerConstant        = "*"
	worktreeBranchMarkerConstant       = "+"
	issueKeyGroupIndexConstant         = 1
	detachedHeadPrefixConstant         = "("
)

// BranchItem is one local branch and the issue key embedded in its name, if any.
// Current marks the branch checked out in the project; CheckedOutElsewhere marks one checked out in a linked worktree.
type BranchItem struct {
	BranchName          string
	IssueKey            string
	Current             bool
	CheckedOutElsewhere bool
}

// CheckedOut reports whether git refuses to delete the branch because a worktree uses it.
func (item BranchItem) CheckedOut() bool {
	return item.Current || item.CheckedOutElsewhere
}

// HasIssueKey reports whether the branch references an issue.
func (item BranchItem) HasIssueKey() bool {
	return len(item.IssueKey) > 0
}

// IssueKeyMatcher extracts the first PROJECT-NUMBER key from a branch name.
type IssueKeyMatcher struct {
	pattern *regexp.Regexp
}

// NewIssueKeyMatcher returns a matcher that only accepts keys following a "/".
// With matchWithoutSeparator the key may also start the name or follow any non-alphanumeric character.
func NewIssueKeyMatcher(matchWithoutSeparator bool) *IssueKeyMatcher {
	if matchWithoutSeparator {
		return &IssueKeyMatcher{pattern: regexp.MustCompile(unseparatedIssueKeyPatternConstant)}
	}
	return &IssueKeyMatcher{pattern: regexp.MustCompile(separatedIssueKeyPatternConstant)}
}

// Match returns the first issue key in branchName or an empty string.
func (matcher *IssueKeyMatcher) Match(branchName string) string {
	submatches := matcher.pattern.FindStringSubmatch(branchName)
	if len(submatches) <= issueKeyGroupIndexConstant {
		return ""
	}
	return submatches[issueKeyGroupIndexConstant]
}

// ParseBranchList converts `git branch` output into branch items, skipping blank lines and
// detached HEAD entries. The "*" and "+" checkout markers are stripped from branch names.
func ParseBranchList(output string, matcher *IssueKeyMatcher) []BranchItem {
	if matcher == nil {
		matcher = NewIssueKeyMatcher(false)
	}

	lines := strings.Split(output, "\n")
	items := make([]BranchItem, 0, len(lines))
	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 {
			continue
		}

		current := strings.HasPrefix(trimmedLine, currentBranchMarkerConstant)
		checkedOutElsewhere := strings.HasPrefix(trimmedLine, worktreeBranchMarkerConstant)
		branchName := trimmedLine
		switch {
		case current:
			branchName = strings.TrimSpace(strings.TrimPrefix(trimmedLine, currentBranchMarkerConstant))
		case checkedOutElsewhere:
			branchName = strings.TrimSpace(strings.TrimPrefix(trimmedLine, worktreeBranchMarkerConstant))
		}
		if len(branchName) == 0 || strings.HasPrefix(branchName, detachedHeadPrefixConstant) {
			continue
		}

		items = append(items, BranchItem{
			BranchName:          branchName,
			IssueKey:            matcher.Match(branchName),
			Current:             current,
			CheckedOutElsewhere: checkedOutElsewhere,
		})
	}
	return items
}
