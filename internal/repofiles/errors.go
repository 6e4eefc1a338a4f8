package repofiles

import (
	"errors"
	"fmt"
)

const (
	repositoryCreationErrorTemplateConstant = "create repository %s: %s"
	readmeUploadErrorTemplateConstant       = "upload README to %s: %s"
	localFileErrorTemplateConstant          = "read local file %s: %s"
)

var (
	// ErrTokenRequired indicates an empty credential.
	ErrTokenRequired = errors.New("token required")
	// ErrNoRepositories indicates the authenticated user owns no repositories.
	ErrNoRepositories = errors.New("no repositories found")
	// ErrNoSelectableFiles indicates a repository root without regular files.
	ErrNoSelectableFiles = errors.New("repository has no files")
	// ErrRepositoryNotSelected indicates a file operation on a session without a repository.
	ErrRepositoryNotSelected = errors.New("repository not selected")
	// ErrUsernameUnavailable indicates the API accepted the credential but reported no login.
	ErrUsernameUnavailable = errors.New("authenticated user has no login")
)

// RepositoryCreationError reports a repository that could not be created. The
// session cannot continue after it.
type RepositoryCreationError struct {
	Name  string
	Cause error
}

// Error describes the failure.
func (creationError RepositoryCreationError) Error() string {
	return fmt.Sprintf(repositoryCreationErrorTemplateConstant, creationError.Name, creationError.Cause)
}

// Unwrap exposes the API failure.
func (creationError RepositoryCreationError) Unwrap() error {
	return creationError.Cause
}

// ReadmeUploadError reports a repository that was created without its README.
type ReadmeUploadError struct {
	Repository string
	Cause      error
}

// Error describes the failure.
func (readmeError ReadmeUploadError) Error() string {
	return fmt.Sprintf(readmeUploadErrorTemplateConstant, readmeError.Repository, readmeError.Cause)
}

// Unwrap exposes the upload failure.
func (readmeError ReadmeUploadError) Unwrap() error {
	return readmeError.Cause
}

// LocalFileError reports a local source file that could not be read.
type LocalFileError struct {
	Path  string
	Cause error
}

// Error describes the failure.
func (localFileError LocalFileError) Error() string {
	return fmt.Sprintf(localFileErrorTemplateConstant, localFileError.Path, localFileError.Cause)
}

// Unwrap exposes the filesystem failure.
func (localFileError LocalFileError) Unwrap() error {
	return localFileError.Cause
}
