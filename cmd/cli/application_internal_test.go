package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testConfigurationContentConstant  = "common:\n  log_level: error\nprune:\n  remote: upstream\n  project: ProjA\njira:\n  base_url: https://jira.example.com\n"
)

func newIsolatedApplication(testInstance *testing.T) *Application {
	testInstance.Helper()
	testInstance.Setenv(configurationSearchPathEnvironmentName, testInstance.TempDir())
	return NewApplication()
}

func TestApplicationRegistersPruneCommand(testInstance *testing.T) {
	application := newIsolatedApplication(testInstance)

	pruneCommand, _, findError := application.rootCommand.Find([]string{"prune"})
	require.NoError(testInstance, findError)
	require.Equal(testInstance, "prune", pruneCommand.Name())
	require.NotNil(testInstance, pruneCommand.Flags().Lookup("dry-run"))
}

func TestApplicationVersionFlagPrintsVersion(testInstance *testing.T) {
	application := newIsolatedApplication(testInstance)
	application.versionResolver = func(context.Context) string {
		return "v2.0.0"
	}

	outputBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetArgs([]string{"--version"})

	require.NoError(testInstance, application.Execute())
	require.Equal(testInstance, "clean-my-branch version: v2.0.0\n", outputBuffer.String())
}

func TestApplicationRootCommandShowsHelp(testInstance *testing.T) {
	application := newIsolatedApplication(testInstance)

	outputBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetArgs([]string{})

	require.NoError(testInstance, application.Execute())
	require.Contains(testInstance, outputBuffer.String(), "prune")
}

func TestApplicationInitializeConfigurationPrecedence(testInstance *testing.T) {
	testCases := []struct {
		name              string
		writeFile         bool
		environment       map[string]string
		flagValues        map[string]string
		expectedLogLevel  string
		expectedRemote    string
		expectedProject   string
		expectedBaseURL   string
		expectedUsername  string
		expectedLogFormat string
	}{
		{
			name:              "embedded_defaults",
			expectedLogLevel:  "warn",
			expectedLogFormat: "console",
			expectedRemote:    "origin",
			expectedBaseURL:   "http://jira.atlassian.com",
		},
		{
			name:              "file_overrides_defaults",
			writeFile:         true,
			expectedLogLevel:  "error",
			expectedLogFormat: "console",
			expectedRemote:    "upstream",
			expectedProject:   "ProjA",
			expectedBaseURL:   "https://jira.example.com",
		},
		{
			name:      "environment_overrides_file",
			writeFile: true,
			environment: map[string]string{
				"CLEANMYBRANCH_PRUNE_REMOTE":      "fork",
				"CLEANMYBRANCH_JIRA_USERNAME":     "svc-bot",
				"CLEANMYBRANCH_COMMON_LOG_FORMAT": "structured",
			},
			expectedLogLevel:  "error",
			expectedLogFormat: "structured",
			expectedRemote:    "fork",
			expectedProject:   "ProjA",
			expectedBaseURL:   "https://jira.example.com",
			expectedUsername:  "svc-bot",
		},
		{
			name:              "flags_override_environment",
			environment:       map[string]string{"CLEANMYBRANCH_COMMON_LOG_LEVEL": "info"},
			flagValues:        map[string]string{logLevelFlagNameConstant: "debug", logFormatFlagNameConstant: "structured"},
			expectedLogLevel:  "debug",
			expectedLogFormat: "structured",
			expectedRemote:    "origin",
			expectedBaseURL:   "http://jira.atlassian.com",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			configurationDirectory := subTest.TempDir()
			if testCase.writeFile {
				require.NoError(subTest, os.WriteFile(filepath.Join(configurationDirectory, testConfigurationFileNameConstant), []byte(testConfigurationContentConstant), 0o600))
			}
			subTest.Setenv(configurationSearchPathEnvironmentName, configurationDirectory)
			for environmentKey, environmentValue := range testCase.environment {
				subTest.Setenv(environmentKey, environmentValue)
			}

			application := NewApplication()
			for flagName, flagValue := range testCase.flagValues {
				require.NoError(subTest, application.rootCommand.PersistentFlags().Set(flagName, flagValue))
			}

			require.NoError(subTest, application.initializeConfiguration(application.rootCommand))

			configuration := application.configuration
			require.Equal(subTest, testCase.expectedLogLevel, configuration.Common.LogLevel)
			require.Equal(subTest, testCase.expectedLogFormat, configuration.Common.LogFormat)
			require.Equal(subTest, testCase.expectedRemote, configuration.Prune.RemoteName)
			require.Equal(subTest, testCase.expectedProject, configuration.Prune.Project)
			require.Equal(subTest, testCase.expectedBaseURL, configuration.Jira.BaseURL)
			require.Equal(subTest, testCase.expectedUsername, configuration.Jira.Username)
			require.Equal(subTest, testCase.expectedLogFormat == "console", application.humanReadableLoggingEnabled())
		})
	}
}

func TestApplicationRejectsUnsupportedLogLevel(testInstance *testing.T) {
	application := newIsolatedApplication(testInstance)
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, "verbose"))

	initializationError := application.initializeConfiguration(application.rootCommand)
	require.Error(testInstance, initializationError)
	require.Contains(testInstance, initializationError.Error(), "unable to create logger")
}
