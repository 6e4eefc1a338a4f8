package interactive

import (
	"context"

	"github.com/temirov/rawdrop/internal/githubapi"
	"github.com/temirov/rawdrop/internal/repofiles"
)

// FileService exposes the repository operations used by the session.
type FileService interface {
	Authenticate(executionContext context.Context, token string) (repofiles.Session, error)
	ListRepositories(executionContext context.Context, session repofiles.Session) ([]string, error)
	CreateRepository(executionContext context.Context, session repofiles.Session, repositoryName string) (repofiles.Session, repofiles.UploadResult, error)
	UploadFile(executionContext context.Context, session repofiles.Session, localPath string, destinationPath string, message string) (repofiles.UploadResult, error)
	CreateFile(executionContext context.Context, session repofiles.Session, filename string, content string) (repofiles.UploadResult, error)
	ListFiles(executionContext context.Context, session repofiles.Session) (repofiles.Listing, error)
	ReadFile(executionContext context.Context, session repofiles.Session, path string) (githubapi.FileContent, error)
	EditFile(executionContext context.Context, session repofiles.Session, path string, content string) (repofiles.UploadResult, error)
	DeleteFile(executionContext context.Context, session repofiles.Session, path string) error
}

// Prompter reads answers from the console.
type Prompter interface {
	Ask(question string) (string, error)
	AskRaw(question string) (string, error)
	Confirm(question string) (bool, error)
	Choose(question string, count int) (int, error)
}
