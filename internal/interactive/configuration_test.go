package interactive_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/rawdrop/internal/githubauth"
	"github.com/temirov/rawdrop/internal/gitrepo"
	"github.com/temirov/rawdrop/internal/interactive"
)

func TestDefaultConfigurationValues(testInstance *testing.T) {
	values := interactive.DefaultConfigurationValues("session")
	require.Equal(testInstance, "https://api.github.com/", values["session.api_base_url"])
	require.Equal(testInstance, "raw.githubusercontent.com", values["session.raw_host"])
	require.Equal(testInstance, "main", values["session.raw_branch"])
	require.Equal(testInstance, "Repository created automatically", values["session.repository_description"])
	require.Equal(testInstance, 0, values["session.max_authentication_attempts"])
	require.Equal(testInstance, false, values["session.use_environment_token"])
	require.Equal(testInstance, "30s", values["session.request_timeout"])
}

func TestSessionConfigurationMapping(testInstance *testing.T) {
	configuration := interactive.SessionConfiguration{
		APIBaseURL:         "  ",
		RawHost:            "raw.example.com",
		RawBranch:          " trunk ",
		TemporaryDirectory: " /tmp/rawdrop ",
	}

	clientConfiguration := configuration.ClientConfiguration()
	require.Equal(testInstance, "https://api.github.com/", clientConfiguration.BaseURL)
	require.Equal(testInstance, 30*time.Second, clientConfiguration.RequestTimeout)

	serviceConfiguration := configuration.ServiceConfiguration()
	require.Equal(testInstance, "Repository created automatically", serviceConfiguration.RepositoryDescription)
	require.Equal(testInstance, gitrepo.RawContentLocator{Host: "raw.example.com", Branch: "trunk"}, serviceConfiguration.RawContentLocator)
	require.Equal(testInstance, "/tmp/rawdrop", serviceConfiguration.TemporaryDirectoryRoot)
}

func TestResolvePresetTokens(testInstance *testing.T) {
	environmentValues := map[string]string{"RAWDROP_TOKEN": "from-env-source"}
	resolver := githubauth.NewTokenResolver(
		func(key string) (string, bool) {
			value, found := environmentValues[key]
			return value, found
		},
		func(path string) ([]byte, error) {
			if path == "/secrets/token" {
				return []byte("from-file\n"), nil
			}
			return nil, errors.New("missing file")
		},
	)

	testCases := []struct {
		name           string
		configuration  interactive.SessionConfiguration
		environment    map[string]string
		expectedTokens []string
		expectWarning  bool
	}{
		{
			name:           "nothing_configured",
			configuration:  interactive.SessionConfiguration{},
			expectedTokens: []string{},
		},
		{
			name:           "environment_token_source",
			configuration:  interactive.SessionConfiguration{TokenSource: "env:RAWDROP_TOKEN"},
			expectedTokens: []string{"from-env-source"},
		},
		{
			name:           "file_token_source",
			configuration:  interactive.SessionConfiguration{TokenSource: "file:/secrets/token"},
			expectedTokens: []string{"from-file"},
		},
		{
			name:           "unreadable_token_source",
			configuration:  interactive.SessionConfiguration{TokenSource: "file:/secrets/missing"},
			expectedTokens: []string{},
			expectWarning:  true,
		},
		{
			name:           "unsupported_token_source",
			configuration:  interactive.SessionConfiguration{TokenSource: "vault:secret"},
			expectedTokens: []string{},
			expectWarning:  true,
		},
		{
			name:           "environment_variables_after_source",
			configuration:  interactive.SessionConfiguration{TokenSource: "env:RAWDROP_TOKEN", UseEnvironmentToken: true},
			environment:    map[string]string{githubauth.EnvGitHubToken: "from-github-token"},
			expectedTokens: []string{"from-env-source", "from-github-token"},
		},
		{
			name:           "duplicate_environment_token_skipped",
			configuration:  interactive.SessionConfiguration{TokenSource: "env:RAWDROP_TOKEN", UseEnvironmentToken: true},
			environment:    map[string]string{githubauth.EnvGitHubCLIToken: "from-env-source"},
			expectedTokens: []string{"from-env-source"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.WarnLevel)
			tokens := interactive.ResolvePresetTokens(context.Background(), testCase.configuration, resolver, testCase.environment, zap.New(observerCore))
			require.Equal(testInstance, testCase.expectedTokens, tokens)
			require.Equal(testInstance, testCase.expectWarning, observedLogs.Len() > 0)
		})
	}
}
