package interactive

import (
	"strings"
	"time"

	"github.com/temirov/rawdrop/internal/githubapi"
	"github.com/temirov/rawdrop/internal/gitrepo"
	"github.com/temirov/rawdrop/internal/repofiles"
)

const (
	defaultAPIBaseURLConstant            = "https://api.github.com/"
	defaultRepositoryDescriptionConstant = "Repository created automatically"
	defaultRequestTimeoutConstant        = 30 * time.Second
	configurationAPIBaseURLKeyConstant   = "api_base_url"
	configurationRawHostKeyConstant      = "raw_host"
	configurationRawBranchKeyConstant    = "raw_branch"
	configurationDescriptionKeyConstant  = "repository_description"
	configurationMaxAttemptsKeyConstant  = "max_authentication_attempts"
	configurationTokenSourceKeyConstant  = "token_source"
	configurationUseEnvTokenKeyConstant  = "use_environment_token"
	configurationTemporaryDirKeyConstant = "temporary_directory"
	configurationTimeoutKeyConstant      = "request_timeout"
	configurationKeySeparatorConstant    = "."
)

// SessionConfiguration captures persistent settings for interactive sessions.
type SessionConfiguration struct {
	APIBaseURL                string        `mapstructure:"api_base_url"`
	RawHost                   string        `mapstructure:"raw_host"`
	RawBranch                 string        `mapstructure:"raw_branch"`
	RepositoryDescription     string        `mapstructure:"repository_description"`
	MaxAuthenticationAttempts int           `mapstructure:"max_authentication_attempts"`
	TokenSource               string        `mapstructure:"token_source"`
	UseEnvironmentToken       bool          `mapstructure:"use_environment_token"`
	TemporaryDirectory        string        `mapstructure:"temporary_directory"`
	RequestTimeout            time.Duration `mapstructure:"request_timeout"`
}

// DefaultSessionConfiguration returns baseline configuration values.
func DefaultSessionConfiguration() SessionConfiguration {
	return SessionConfiguration{
		APIBaseURL:                defaultAPIBaseURLConstant,
		RawHost:                   gitrepo.DefaultRawContentHost,
		RawBranch:                 gitrepo.DefaultRawContentBranch,
		RepositoryDescription:     defaultRepositoryDescriptionConstant,
		MaxAuthenticationAttempts: 0,
		TokenSource:               "",
		UseEnvironmentToken:       false,
		TemporaryDirectory:        "",
		RequestTimeout:            defaultRequestTimeoutConstant,
	}
}

// DefaultConfigurationValues exposes the defaults as Viper keys under rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultSessionConfiguration()
	prefix := rootKey + configurationKeySeparatorConstant
	return map[string]any{
		prefix + configurationAPIBaseURLKeyConstant:   defaults.APIBaseURL,
		prefix + configurationRawHostKeyConstant:      defaults.RawHost,
		prefix + configurationRawBranchKeyConstant:    defaults.RawBranch,
		prefix + configurationDescriptionKeyConstant:  defaults.RepositoryDescription,
		prefix + configurationMaxAttemptsKeyConstant:  defaults.MaxAuthenticationAttempts,
		prefix + configurationTokenSourceKeyConstant:  defaults.TokenSource,
		prefix + configurationUseEnvTokenKeyConstant:  defaults.UseEnvironmentToken,
		prefix + configurationTemporaryDirKeyConstant: defaults.TemporaryDirectory,
		prefix + configurationTimeoutKeyConstant:      defaults.RequestTimeout.String(),
	}
}

// ClientConfiguration maps the session settings onto the API client.
func (configuration SessionConfiguration) ClientConfiguration() githubapi.ClientConfiguration {
	sanitized := configuration.sanitize()
	return githubapi.ClientConfiguration{
		BaseURL:        sanitized.APIBaseURL,
		RequestTimeout: sanitized.RequestTimeout,
	}
}

// ServiceConfiguration maps the session settings onto the file service.
func (configuration SessionConfiguration) ServiceConfiguration() repofiles.ServiceConfiguration {
	sanitized := configuration.sanitize()
	return repofiles.ServiceConfiguration{
		RepositoryDescription:  sanitized.RepositoryDescription,
		RawContentLocator:      gitrepo.NewRawContentLocator(sanitized.RawHost, sanitized.RawBranch),
		TemporaryDirectoryRoot: sanitized.TemporaryDirectory,
	}
}

func (configuration SessionConfiguration) sanitize() SessionConfiguration {
	defaults := DefaultSessionConfiguration()
	sanitized := configuration

	sanitized.APIBaseURL = strings.TrimSpace(configuration.APIBaseURL)
	if len(sanitized.APIBaseURL) == 0 {
		sanitized.APIBaseURL = defaults.APIBaseURL
	}
	sanitized.RawHost = strings.TrimSpace(configuration.RawHost)
	sanitized.RawBranch = strings.TrimSpace(configuration.RawBranch)
	sanitized.RepositoryDescription = strings.TrimSpace(configuration.RepositoryDescription)
	if len(sanitized.RepositoryDescription) == 0 {
		sanitized.RepositoryDescription = defaults.RepositoryDescription
	}
	if sanitized.MaxAuthenticationAttempts < 0 {
		sanitized.MaxAuthenticationAttempts = 0
	}
	sanitized.TokenSource = strings.TrimSpace(configuration.TokenSource)
	sanitized.TemporaryDirectory = strings.TrimSpace(configuration.TemporaryDirectory)
	if sanitized.RequestTimeout <= 0 {
		sanitized.RequestTimeout = defaults.RequestTimeout
	}

	return sanitized
}
