package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the tracker used when configuration does not name one.
	DefaultBaseURL = "http://jira.atlassian.com"
	// DefaultRequestTimeout bounds every tracker request.
	DefaultRequestTimeout = 30 * time.Second

	sessionPathConstant                = "rest/auth/1/session"
	issuePathConstant                  = "rest/api/2/issue"
	contentTypeHeaderConstant          = "Content-Type"
	acceptHeaderConstant               = "Accept"
	jsonMediaTypeConstant              = "application/json"
	maximumErrorDetailLengthConstant   = 200
	baseURLRequiredMessageConstant     = "jira base url must be provided"
	baseURLInvalidTemplateConstant     = "invalid jira base url %q: %w"
	baseURLSchemeTemplateConstant      = "jira base url %q must use http or https"
	sessionBaseURLTemplateConstant     = "invalid session base url %q: %w"
	encodeRequestErrorTemplateConstant = "encode session request: %w"
	createRequestErrorTemplateConstant = "create request: %w"
	issueRequestErrorTemplateConstant  = "request for %s failed: %w"
	readResponseErrorTemplateConstant  = "read response for %s: %w"
	decodeIssueErrorTemplateConstant   = "decode issue %s: %w"
	missingStatusTemplateConstant      = "issue %s has no status"
	loginSucceededMessageConstant      = "jira login succeeded"
	loginFailedMessageConstant         = "jira login failed"
	issueResolvedMessageConstant       = "jira issue resolved"
	logFieldBaseURLConstant            = "base_url"
	logFieldUsernameConstant           = "username"
	logFieldStatusCodeConstant         = "status_code"
	logFieldIssueKeyConstant           = "issue_key"
	logFieldIssueStatusConstant        = "issue_status"
)

// ErrBaseURLRequired indicates the client was constructed without a tracker URL.
var ErrBaseURLRequired = errors.New(baseURLRequiredMessageConstant)

// Client performs Jira REST requests.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient validates baseURL and constructs a Client. A nil httpClient gets DefaultRequestTimeout.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	trimmedBaseURL := strings.TrimSpace(baseURL)
	if len(trimmedBaseURL) == 0 {
		return nil, ErrBaseURLRequired
	}

	parsedBaseURL, parseError := url.Parse(trimmedBaseURL)
	if parseError != nil {
		return nil, fmt.Errorf(baseURLInvalidTemplateConstant, trimmedBaseURL, parseError)
	}
	if parsedBaseURL.Scheme != "http" && parsedBaseURL.Scheme != "https" {
		return nil, fmt.Errorf(baseURLSchemeTemplateConstant, trimmedBaseURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultRequestTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{baseURL: parsedBaseURL, httpClient: httpClient, logger: logger}, nil
}

// Login validates credentials by creating a session. Any transport failure or non-2xx response
// yields an *AuthenticationError; the returned Session carries the Basic authorization for lookups.
func (client *Client) Login(executionContext context.Context, credentials Credentials) (Session, error) {
	if len(strings.TrimSpace(credentials.Username)) == 0 {
		return Session{}, &AuthenticationError{Cause: ErrUsernameRequired}
	}

	payload, encodeError := json.Marshal(sessionRequest{Username: credentials.Username, Password: credentials.Password})
	if encodeError != nil {
		return Session{}, &AuthenticationError{Cause: fmt.Errorf(encodeRequestErrorTemplateConstant, encodeError)}
	}

	request, requestError := http.NewRequestWithContext(executionContext, http.MethodPost, joinEndpoint(client.baseURL, sessionPathConstant), bytes.NewReader(payload))
	if requestError != nil {
		return Session{}, &AuthenticationError{Cause: fmt.Errorf(createRequestErrorTemplateConstant, requestError)}
	}
	request.Header.Set(contentTypeHeaderConstant, jsonMediaTypeConstant)
	request.Header.Set(acceptHeaderConstant, jsonMediaTypeConstant)

	response, responseError := client.httpClient.Do(request)
	if responseError != nil {
		client.logger.Warn(loginFailedMessageConstant, zap.String(logFieldBaseURLConstant, client.baseURL.String()), zap.Error(responseError))
		return Session{}, &AuthenticationError{Cause: responseError}
	}
	defer response.Body.Close() // nolint:errcheck
	_, _ = io.Copy(io.Discard, response.Body)

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		client.logger.Warn(loginFailedMessageConstant, zap.String(logFieldBaseURLConstant, client.baseURL.String()), zap.Int(logFieldStatusCodeConstant, response.StatusCode))
		return Session{}, &AuthenticationError{StatusCode: response.StatusCode}
	}

	client.logger.Debug(loginSucceededMessageConstant, zap.String(logFieldBaseURLConstant, client.baseURL.String()), zap.String(logFieldUsernameConstant, credentials.Username))

	return Session{
		BaseURL:       client.baseURL.String(),
		Authorization: EncodeBasicAuthorization(credentials),
	}, nil
}

// IssueStatus returns the status name of the issue identified by issueKey, asking the tracker that issued session.
func (client *Client) IssueStatus(executionContext context.Context, session Session, issueKey string) (string, error) {
	trimmedIssueKey := strings.TrimSpace(issueKey)
	if len(trimmedIssueKey) == 0 {
		return "", ErrIssueKeyRequired
	}

	issueEndpoint, endpointError := client.sessionEndpoint(session, issuePathConstant, trimmedIssueKey)
	if endpointError != nil {
		return "", endpointError
	}

	request, requestError := http.NewRequestWithContext(executionContext, http.MethodGet, issueEndpoint, nil)
	if requestError != nil {
		return "", fmt.Errorf(createRequestErrorTemplateConstant, requestError)
	}
	request.Header.Set(acceptHeaderConstant, jsonMediaTypeConstant)
	session.authorize(request)

	response, responseError := client.httpClient.Do(request)
	if responseError != nil {
		return "", fmt.Errorf(issueRequestErrorTemplateConstant, trimmedIssueKey, responseError)
	}
	defer response.Body.Close() // nolint:errcheck

	responseBody, readError := io.ReadAll(response.Body)
	if readError != nil {
		return "", fmt.Errorf(readResponseErrorTemplateConstant, trimmedIssueKey, readError)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return "", &IssueLookupError{IssueKey: trimmedIssueKey, StatusCode: response.StatusCode, Detail: describeErrorBody(responseBody)}
	}

	var issue Issue
	if decodeError := json.Unmarshal(responseBody, &issue); decodeError != nil {
		return "", fmt.Errorf(decodeIssueErrorTemplateConstant, trimmedIssueKey, decodeError)
	}

	statusName := strings.TrimSpace(issue.Fields.Status.Name)
	if len(statusName) == 0 {
		return "", fmt.Errorf(missingStatusTemplateConstant, trimmedIssueKey)
	}

	client.logger.Debug(issueResolvedMessageConstant, zap.String(logFieldIssueKeyConstant, trimmedIssueKey), zap.String(logFieldIssueStatusConstant, statusName))
	return statusName, nil
}

func (client *Client) sessionEndpoint(session Session, pathElements ...string) (string, error) {
	trimmedSessionBaseURL := strings.TrimSpace(session.BaseURL)
	if len(trimmedSessionBaseURL) == 0 {
		return joinEndpoint(client.baseURL, pathElements...), nil
	}

	sessionBaseURL, parseError := url.Parse(trimmedSessionBaseURL)
	if parseError != nil {
		return "", fmt.Errorf(sessionBaseURLTemplateConstant, trimmedSessionBaseURL, parseError)
	}
	return joinEndpoint(sessionBaseURL, pathElements...), nil
}

func joinEndpoint(baseURL *url.URL, pathElements ...string) string {
	trimmedElements := make([]string, 0, len(pathElements))
	for _, pathElement := range pathElements {
		trimmedElements = append(trimmedElements, strings.Trim(pathElement, "/"))
	}
	return baseURL.JoinPath(trimmedElements...).String()
}

func describeErrorBody(responseBody []byte) string {
	var decoded errorResponse
	if json.Unmarshal(responseBody, &decoded) == nil && len(decoded.ErrorMessages) > 0 {
		return strings.Join(decoded.ErrorMessages, "; ")
	}

	trimmedBody := strings.TrimSpace(string(responseBody))
	if len(trimmedBody) > maximumErrorDetailLengthConstant {
		return trimmedBody[:maximumErrorDetailLengthConstant]
	}
	return trimmedBody
}
