package githubauth_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/rawdrop/internal/githubauth"
)

const (
	testEnvironmentTokenConstant = "ghp_environment"
	testFileTokenConstant        = "ghp_file"
	testTokenFileNameConstant    = "token"
	testCustomVariableConstant   = "RAWDROP_TEST_TOKEN"
)

func TestResolveTokenPrefersProvidedEnvironment(testInstance *testing.T) {
	testInstance.Setenv(githubauth.EnvGitHubCLIToken, "")
	testInstance.Setenv(githubauth.EnvGitHubToken, "")
	testInstance.Setenv(githubauth.EnvGitHubAPIToken, "")

	token, found := githubauth.ResolveToken(map[string]string{
		githubauth.EnvGitHubToken:    "  " + testEnvironmentTokenConstant + " ",
		githubauth.EnvGitHubAPIToken: "ignored",
	})
	require.True(testInstance, found)
	require.Equal(testInstance, testEnvironmentTokenConstant, token)

	_, found = githubauth.ResolveToken(map[string]string{githubauth.EnvGitHubCLIToken: "   "})
	require.False(testInstance, found)
}

func TestResolveTokenFallsBackToProcessEnvironment(testInstance *testing.T) {
	testInstance.Setenv(githubauth.EnvGitHubCLIToken, "")
	testInstance.Setenv(githubauth.EnvGitHubToken, "")
	testInstance.Setenv(githubauth.EnvGitHubAPIToken, testEnvironmentTokenConstant)

	token, found := githubauth.ResolveToken(nil)
	require.True(testInstance, found)
	require.Equal(testInstance, testEnvironmentTokenConstant, token)
}

func TestAuthorizationHeaderValue(testInstance *testing.T) {
	require.Equal(testInstance, "token abc123", githubauth.AuthorizationHeaderValue(" abc123 "))
}

func TestParseTokenSource(testInstance *testing.T) {
	testCases := []struct {
		name           string
		sourceValue    string
		expectedSource githubauth.TokenSourceConfiguration
		expectError    bool
	}{
		{name: "bare_environment_name", sourceValue: "GITHUB_TOKEN", expectedSource: githubauth.TokenSourceConfiguration{Type: githubauth.TokenSourceTypeEnvironment, Reference: "GITHUB_TOKEN"}},
		{name: "environment_prefix", sourceValue: "ENV: MY_TOKEN", expectedSource: githubauth.TokenSourceConfiguration{Type: githubauth.TokenSourceTypeEnvironment, Reference: "MY_TOKEN"}},
		{name: "file_prefix", sourceValue: "file:~/token", expectedSource: githubauth.TokenSourceConfiguration{Type: githubauth.TokenSourceTypeFile, Reference: "~/token"}},
		{name: "empty", sourceValue: "  ", expectError: true},
		{name: "empty_environment_name", sourceValue: "env:", expectError: true},
		{name: "empty_file_path", sourceValue: "file: ", expectError: true},
		{name: "unsupported_type", sourceValue: "vault:secret", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			source, parseError := githubauth.ParseTokenSource(testCase.sourceValue)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedSource, source)
		})
	}
}

func TestTokenResolverResolveToken(testInstance *testing.T) {
	tokenFilePath := filepath.Join(testInstance.TempDir(), testTokenFileNameConstant)
	require.NoError(testInstance, os.WriteFile(tokenFilePath, []byte(testFileTokenConstant+"\n"), 0o600))
	emptyTokenFilePath := filepath.Join(testInstance.TempDir(), testTokenFileNameConstant)
	require.NoError(testInstance, os.WriteFile(emptyTokenFilePath, []byte("\n"), 0o600))

	environmentLookup := func(key string) (string, bool) {
		if key == testCustomVariableConstant {
			return testEnvironmentTokenConstant, true
		}
		return "", false
	}
	resolver := githubauth.NewTokenResolver(environmentLookup, nil)

	testCases := []struct {
		name          string
		source        githubauth.TokenSourceConfiguration
		expectedToken string
		expectError   bool
	}{
		{name: "environment", source: githubauth.TokenSourceConfiguration{Type: githubauth.TokenSourceTypeEnvironment, Reference: testCustomVariableConstant}, expectedToken: testEnvironmentTokenConstant},
		{name: "missing_environment", source: githubauth.TokenSourceConfiguration{Type: githubauth.TokenSourceTypeEnvironment, Reference: "ABSENT"}, expectError: true},
		{name: "file", source: githubauth.TokenSourceConfiguration{Type: githubauth.TokenSourceTypeFile, Reference: tokenFilePath}, expectedToken: testFileTokenConstant},
		{name: "empty_file", source: githubauth.TokenSourceConfiguration{Type: githubauth.TokenSourceTypeFile, Reference: emptyTokenFilePath}, expectError: true},
		{name: "missing_file", source: githubauth.TokenSourceConfiguration{Type: githubauth.TokenSourceTypeFile, Reference: tokenFilePath + ".absent"}, expectError: true},
		{name: "unsupported", source: githubauth.TokenSourceConfiguration{Type: githubauth.TokenSourceType("vault")}, expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			token, resolveError := resolver.ResolveToken(context.Background(), testCase.source)
			if testCase.expectError {
				require.Error(testInstance, resolveError)
				return
			}
			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testCase.expectedToken, token)
		})
	}
}

func TestTokenResolverWrapsFileReadError(testInstance *testing.T) {
	readFailure := errors.New("permission denied")
	resolver := githubauth.NewTokenResolver(nil, func(path string) ([]byte, error) {
		return nil, readFailure
	})

	_, resolveError := resolver.ResolveToken(context.Background(), githubauth.TokenSourceConfiguration{Type: githubauth.TokenSourceTypeFile, Reference: "/secret"})
	require.ErrorIs(testInstance, resolveError, readFailure)
}
