package jira

import (
	"errors"
	"fmt"
)

const (
	authenticationFailedMessageConstant         = "jira login failed"
	authenticationFailedStatusTemplateConstant  = "jira login failed: status %d"
	authenticationFailedCauseTemplateConstant   = "jira login failed: %v"
	issueKeyRequiredMessageConstant             = "issue key must be provided"
	usernameRequiredMessageConstant             = "username must be provided"
	issueLookupStatusTemplateConstant           = "request for %s failed with status code %d"
	issueLookupStatusWithDetailTemplateConstant = "request for %s failed with status code %d: %s"
)

// ErrAuthenticationFailed is matched by every AuthenticationError.
var ErrAuthenticationFailed = errors.New(authenticationFailedMessageConstant)

// ErrIssueKeyRequired indicates an empty issue key.
var ErrIssueKeyRequired = errors.New(issueKeyRequiredMessageConstant)

// ErrUsernameRequired indicates empty credentials.
var ErrUsernameRequired = errors.New(usernameRequiredMessageConstant)

// AuthenticationError reports a rejected or failed session creation.
// StatusCode is zero when the request never produced a response.
type AuthenticationError struct {
	StatusCode int
	Cause      error
}

// Error describes the failed login.
func (authenticationError *AuthenticationError) Error() string {
	if authenticationError.Cause != nil {
		return fmt.Sprintf(authenticationFailedCauseTemplateConstant, authenticationError.Cause)
	}
	if authenticationError.StatusCode != 0 {
		return fmt.Sprintf(authenticationFailedStatusTemplateConstant, authenticationError.StatusCode)
	}
	return authenticationFailedMessageConstant
}

// Is reports whether target is ErrAuthenticationFailed.
func (authenticationError *AuthenticationError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

// Unwrap exposes the transport failure, if any.
func (authenticationError *AuthenticationError) Unwrap() error {
	return authenticationError.Cause
}

// IssueLookupError reports a non-success response for an issue lookup.
type IssueLookupError struct {
	IssueKey   string
	StatusCode int
	Detail     string
}

// Error describes the failed lookup.
func (lookupError *IssueLookupError) Error() string {
	if len(lookupError.Detail) == 0 {
		return fmt.Sprintf(issueLookupStatusTemplateConstant, lookupError.IssueKey, lookupError.StatusCode)
	}
	return fmt.Sprintf(issueLookupStatusWithDetailTemplateConstant, lookupError.IssueKey, lookupError.StatusCode, lookupError.Detail)
}
