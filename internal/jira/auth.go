package jira

import (
	"encoding/base64"
	"net/http"
)

const (
	authorizationHeaderConstant         = "Authorization"
	basicAuthorizationPrefixConstant    = "Basic "
	basicAuthorizationSeparatorConstant = ":"
)

// EncodeBasicAuthorization returns the Authorization header value for the credentials.
func EncodeBasicAuthorization(credentials Credentials) string {
	token := base64.StdEncoding.EncodeToString([]byte(credentials.Username + basicAuthorizationSeparatorConstant + credentials.Password))
	return basicAuthorizationPrefixConstant + token
}

func (session Session) authorize(request *http.Request) {
	if len(session.Authorization) == 0 {
		return
	}
	request.Header.Set(authorizationHeaderConstant, session.Authorization)
}
