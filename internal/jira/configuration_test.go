package jira_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cleanmybranch/internal/jira"
)

func TestConfigurationSanitize(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		configuration         jira.Configuration
		expectedConfiguration jira.Configuration
	}{
		{
			name:          "restores_defaults",
			configuration: jira.Configuration{BaseURL: "  ", Username: " alice "},
			expectedConfiguration: jira.Configuration{
				BaseURL:        jira.DefaultBaseURL,
				Username:       "alice",
				RequestTimeout: jira.DefaultRequestTimeout,
			},
		},
		{
			name:          "keeps_explicit_values",
			configuration: jira.Configuration{BaseURL: "https://jira.example.com", RequestTimeout: 5 * time.Second},
			expectedConfiguration: jira.Configuration{
				BaseURL:        "https://jira.example.com",
				RequestTimeout: 5 * time.Second,
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			sanitized := testCase.configuration.Sanitize()
			require.Equal(testInstance, testCase.expectedConfiguration.BaseURL, sanitized.BaseURL)
			require.Equal(testInstance, testCase.expectedConfiguration.Username, sanitized.Username)
			require.Equal(testInstance, testCase.expectedConfiguration.RequestTimeout, sanitized.RequestTimeout)
		})
	}
}

func TestConfiguredCredentials(testInstance *testing.T) {
	testCases := []struct {
		name                string
		configuration       jira.Configuration
		expectedCredentials jira.Credentials
		expectConfigured    bool
	}{
		{
			name:                "username_and_password",
			configuration:       jira.Configuration{Username: "alice", Password: "pw"},
			expectedCredentials: jira.Credentials{Username: "alice", Password: "pw"},
			expectConfigured:    true,
		},
		{
			name:          "password_without_username",
			configuration: jira.Configuration{Password: "pw"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			credentials, configured := testCase.configuration.ConfiguredCredentials()
			require.Equal(testInstance, testCase.expectConfigured, configured)
			if testCase.expectConfigured {
				require.Equal(testInstance, testCase.expectedCredentials, credentials)
			}
		})
	}
}

func TestDefaultConfigurationValues(testInstance *testing.T) {
	values := jira.DefaultConfigurationValues("jira")
	require.Equal(testInstance, jira.DefaultBaseURL, values["jira.base_url"])
	require.Equal(testInstance, "30s", values["jira.request_timeout"])
	require.Contains(testInstance, values, "jira.username")
	require.Contains(testInstance, values, "jira.password")
}
