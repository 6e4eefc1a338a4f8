package interactive

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/rawdrop/internal/githubauth"
	"github.com/temirov/rawdrop/internal/prompt"
	"github.com/temirov/rawdrop/internal/repofiles"
	"github.com/temirov/rawdrop/internal/ui"
	"github.com/temirov/rawdrop/internal/utils"
)

const (
	unexpectedArgumentsMessageConstant    = "rawdrop does not accept positional arguments"
	sessionFailureTemplateConstant        = "session failed: %w"
	sessionStartedMessageConstant         = "interactive session started"
	logFieldAPIBaseURLConstant            = "api_base_url"
	logFieldPresetTokenCountConstant      = "preset_token_count"
	logFieldMaxAuthenticationAttemptsName = "max_authentication_attempts"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the session configuration.
type ConfigurationProvider func() SessionConfiguration

// CommandBuilder wires a Cobra command to an interactive session.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	APIFactory            repofiles.APIFactory
	TokenResolver         githubauth.TokenResolver
	Environment           map[string]string
}

// Run executes a session reading from the command input and writing to its output.
func (builder *CommandBuilder) Run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	logger := builder.resolveLogger(command)
	configuration := builder.resolveConfiguration()

	apiFactory := builder.APIFactory
	if apiFactory == nil {
		apiFactory = repofiles.NewGitHubAPIFactory(logger, configuration.ClientConfiguration())
	}
	service := repofiles.NewService(logger, apiFactory, configuration.ServiceConfiguration())

	reporter := ui.NewConsoleReporter(command.OutOrStdout(), logger)
	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}
	prompter := prompt.NewIOPrompter(command.InOrStdin(), reporter.Writer()).WithContext(executionContext)
	presetTokens := ResolvePresetTokens(executionContext, configuration, builder.TokenResolver, builder.Environment, logger)

	logger.Debug(
		sessionStartedMessageConstant,
		zap.String(logFieldAPIBaseURLConstant, configuration.APIBaseURL),
		zap.Int(logFieldPresetTokenCountConstant, len(presetTokens)),
		zap.Int(logFieldMaxAuthenticationAttemptsName, configuration.MaxAuthenticationAttempts),
	)

	runner := NewRunner(logger, service, prompter, reporter, RunnerOptions{
		MaxAuthenticationAttempts: configuration.MaxAuthenticationAttempts,
		PresetTokens:              presetTokens,
	})
	if runError := runner.Run(executionContext); runError != nil {
		return fmt.Errorf(sessionFailureTemplateConstant, runError)
	}
	return nil
}

func (builder *CommandBuilder) resolveLogger(command *cobra.Command) *zap.Logger {
	if builder.LoggerProvider != nil {
		if logger := builder.LoggerProvider(); logger != nil {
			return logger
		}
	}
	return utils.NewCommandContextAccessor().Logger(command.Context())
}

func (builder *CommandBuilder) resolveConfiguration() SessionConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultSessionConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}
