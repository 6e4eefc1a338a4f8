package repofiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/rawdrop/internal/githubapi"
	pathutils "github.com/temirov/rawdrop/internal/utils/path"
)

const (
	readmeFileNameConstant                = "README.md"
	readmeContentTemplateConstant         = "# %s\n%s."
	repositoryNameFieldNameConstant       = "repository_name"
	apiFactoryNotConfiguredMessage        = "repository api factory not configured"
	authenticateFailureTemplateConstant   = "authenticate: %w"
	listRepositoriesFailureTemplate       = "list repositories: %w"
	logFieldUsernameConstant              = "username"
	logFieldRepositoryConstant            = "repository"
	logFieldPathConstant                  = "path"
	logFieldRepositoryCountConstant       = "repository_count"
	logFieldUpdatedConstant               = "updated"
	authenticatedLogMessageConstant       = "authenticated session"
	repositoryCreatedLogMessageConstant   = "repository created"
	repositoryCreationLogFailureConstant  = "repository creation failed"
	repositoriesListedLogMessageConstant  = "repositories listed"
	fileUploadedLogMessageConstant        = "file uploaded"
	fileDeletedLogMessageConstant         = "file deleted"
	temporaryCleanupFailedMessageConstant = "temporary directory cleanup failed"
)

var errAPIFactoryNotConfigured = errors.New(apiFactoryNotConfiguredMessage)

// Service performs repository and file operations for authenticated sessions.
type Service struct {
	logger        *zap.Logger
	apiFactory    APIFactory
	configuration ServiceConfiguration
	homeExpander  *pathutils.HomeExpander
}

// NewService constructs a Service using the provided dependencies.
func NewService(logger *zap.Logger, apiFactory APIFactory, configuration ServiceConfiguration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger:        logger,
		apiFactory:    apiFactory,
		configuration: configuration.sanitize(),
		homeExpander:  pathutils.NewHomeExpander(),
	}
}

// Authenticate resolves the login owning token. A failed authentication never
// produces a session.
func (service *Service) Authenticate(executionContext context.Context, token string) (Session, error) {
	trimmedToken := strings.TrimSpace(token)
	if len(trimmedToken) == 0 {
		return Session{}, ErrTokenRequired
	}
	if service.apiFactory == nil {
		return Session{}, errAPIFactoryNotConfigured
	}

	api, apiError := service.apiFactory(trimmedToken)
	if apiError != nil {
		return Session{}, fmt.Errorf(authenticateFailureTemplateConstant, apiError)
	}

	username, loginError := api.AuthenticatedLogin(executionContext)
	if loginError != nil {
		return Session{}, fmt.Errorf(authenticateFailureTemplateConstant, loginError)
	}
	if len(strings.TrimSpace(username)) == 0 {
		return Session{}, ErrUsernameUnavailable
	}

	service.logger.Debug(authenticatedLogMessageConstant, zap.String(logFieldUsernameConstant, username))
	return Session{Token: trimmedToken, Username: username, api: api}, nil
}

// ListRepositories returns the names of repositories owned by the session user,
// in API order.
func (service *Service) ListRepositories(executionContext context.Context, session Session) ([]string, error) {
	api, apiError := service.apiFor(session)
	if apiError != nil {
		return nil, apiError
	}

	repositoryNames, listError := api.ListRepositories(executionContext)
	if listError != nil {
		return nil, fmt.Errorf(listRepositoriesFailureTemplate, listError)
	}
	service.logger.Debug(repositoriesListedLogMessageConstant, zap.Int(logFieldRepositoryCountConstant, len(repositoryNames)))
	if len(repositoryNames) == 0 {
		return nil, ErrNoRepositories
	}
	return repositoryNames, nil
}

// CreateRepository creates a public repository and uploads its README. Creation
// failures are reported as RepositoryCreationError. When only the README upload
// fails the bound session is still returned together with a ReadmeUploadError.
func (service *Service) CreateRepository(executionContext context.Context, session Session, repositoryName string) (Session, UploadResult, error) {
	trimmedName := strings.TrimSpace(repositoryName)
	if len(trimmedName) == 0 {
		return session, UploadResult{}, githubapi.InvalidInputError{FieldName: repositoryNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	api, apiError := service.apiFor(session)
	if apiError != nil {
		return session, UploadResult{}, apiError
	}

	creation := githubapi.RepositoryCreation{
		Name:        trimmedName,
		Description: service.configuration.RepositoryDescription,
		Private:     false,
	}
	if creationError := api.CreateRepository(executionContext, creation); creationError != nil {
		service.logger.Warn(repositoryCreationLogFailureConstant, zap.String(logFieldRepositoryConstant, trimmedName), zap.Error(creationError))
		return session, UploadResult{}, RepositoryCreationError{Name: trimmedName, Cause: creationError}
	}
	service.logger.Debug(repositoryCreatedLogMessageConstant, zap.String(logFieldRepositoryConstant, trimmedName))

	boundSession := session.WithRepository(trimmedName)
	readmeContent := fmt.Sprintf(readmeContentTemplateConstant, trimmedName, service.configuration.RepositoryDescription)
	readmeResult, readmeError := service.CreateFile(executionContext, boundSession, readmeFileNameConstant, readmeContent)
	if readmeError != nil {
		return boundSession, UploadResult{}, ReadmeUploadError{Repository: trimmedName, Cause: readmeError}
	}
	return boundSession, readmeResult, nil
}

func (service *Service) apiFor(session Session) (RepositoryAPI, error) {
	if session.api != nil {
		return session.api, nil
	}
	if len(strings.TrimSpace(session.Token)) == 0 {
		return nil, ErrTokenRequired
	}
	if service.apiFactory == nil {
		return nil, errAPIFactoryNotConfigured
	}
	return service.apiFactory(session.Token)
}

func (service *Service) repositoryAPI(session Session) (RepositoryAPI, error) {
	if !session.HasRepository() {
		return nil, ErrRepositoryNotSelected
	}
	return service.apiFor(session)
}
