package jira

// Credentials holds the Jira account used for the current run. It is never persisted.
type Credentials struct {
	Username string
	Password string
}

// Session is the authenticated request context shared by all lookups of a run.
// BaseURL names the tracker lookups are sent to; an empty BaseURL falls back to the client's.
// It is read-only once Login returns it.
type Session struct {
	BaseURL       string
	Authorization string
}

type sessionRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Issue is the subset of the issue resource clean-my-branch reads.
type Issue struct {
	Key    string `json:"key"`
	Fields Fields `json:"fields"`
}

// Fields holds issue fields.
type Fields struct {
	Status Status `json:"status"`
}

// Status is the workflow status of an issue.
type Status struct {
	Name string `json:"name"`
}

type errorResponse struct {
	ErrorMessages []string `json:"errorMessages"`
}
