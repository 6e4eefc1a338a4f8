package utils

import (
	"context"

	"go.uber.org/zap"
)

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	diagnosticLoggerContextKeyConstant      = commandContextKey("diagnosticLogger")
)

type commandContextKey string

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the configuration file path to the provided context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path from the provided context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, configurationFilePathAvailable := executionContext.Value(configurationFilePathContextKeyConstant).(string)
	if !configurationFilePathAvailable {
		return "", false
	}
	return configurationFilePath, true
}

// WithLogger attaches the diagnostic logger to the provided context.
func (accessor CommandContextAccessor) WithLogger(parentContext context.Context, logger *zap.Logger) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, diagnosticLoggerContextKeyConstant, logger)
}

// Logger extracts the diagnostic logger, falling back to a no-op logger.
func (accessor CommandContextAccessor) Logger(executionContext context.Context) *zap.Logger {
	if executionContext == nil {
		return zap.NewNop()
	}
	logger, loggerAvailable := executionContext.Value(diagnosticLoggerContextKeyConstant).(*zap.Logger)
	if !loggerAvailable || logger == nil {
		return zap.NewNop()
	}
	return logger
}
