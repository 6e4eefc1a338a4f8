package repofiles

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/rawdrop/internal/githubapi"
)

// RepositoryAPI exposes the GitHub REST calls used by the service.
type RepositoryAPI interface {
	AuthenticatedLogin(executionContext context.Context) (string, error)
	ListRepositories(executionContext context.Context) ([]string, error)
	CreateRepository(executionContext context.Context, creation githubapi.RepositoryCreation) error
	ListDirectory(executionContext context.Context, owner string, repository string, path string) ([]githubapi.DirectoryEntry, error)
	GetFile(executionContext context.Context, owner string, repository string, path string) (githubapi.FileContent, error)
	PutFile(executionContext context.Context, owner string, repository string, write githubapi.FileWrite) (githubapi.FileWriteResult, error)
	DeleteFile(executionContext context.Context, owner string, repository string, deletion githubapi.FileDeletion) error
}

// APIFactory builds a RepositoryAPI bound to one credential.
type APIFactory func(token string) (RepositoryAPI, error)

// NewGitHubAPIFactory returns a factory producing githubapi clients that share the
// provided configuration and differ only by credential.
func NewGitHubAPIFactory(logger *zap.Logger, configuration githubapi.ClientConfiguration) APIFactory {
	return func(token string) (RepositoryAPI, error) {
		clientConfiguration := configuration
		clientConfiguration.Token = token
		client, clientError := githubapi.NewClient(logger, clientConfiguration)
		if clientError != nil {
			return nil, clientError
		}
		return client, nil
	}
}
