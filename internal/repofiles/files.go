package repofiles

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/rawdrop/internal/githubapi"
)

const (
	repositoryRootPathConstant          = ""
	pathSeparatorConstant               = "/"
	requiredValueMessageConstant        = "value required"
	destinationFieldNameConstant        = "destination_path"
	localPathFieldNameConstant          = "local_path"
	filenameFieldNameConstant           = "filename"
	createMessageTemplateConstant       = "Add %s"
	updateMessageTemplateConstant       = "Update %s"
	deleteMessageTemplateConstant       = "Delete %s"
	lookupFailureTemplateConstant       = "look up %s: %w"
	uploadFailureTemplateConstant       = "upload %s: %w"
	deleteFailureTemplateConstant       = "delete %s: %w"
	readFailureTemplateConstant         = "read %s: %w"
	listFilesFailureTemplateConstant    = "list files: %w"
	stagingFailureTemplateConstant      = "stage %s: %w"
	temporaryDirectoryPatternConstant   = "rawdrop-*"
	temporaryFilePermissionsConstant    = 0o600
	temporaryDirectoryFieldNameConstant = "temporary_directory"
)

// UploadResult describes a file written to the repository.
type UploadResult struct {
	Path    string
	RawURL  string
	Updated bool
}

// Listing is the repository root: every entry for display and the names of the
// regular files that may be selected.
type Listing struct {
	Entries         []githubapi.DirectoryEntry
	SelectableFiles []string
}

// EntryNames returns the display names of every entry.
func (listing Listing) EntryNames() []string {
	names := make([]string, 0, len(listing.Entries))
	for _, entry := range listing.Entries {
		names = append(names, entry.Name)
	}
	return names
}

// UploadFile uploads a local file to destinationPath. An empty message uses
// "Add <path>" or "Update <path>".
func (service *Service) UploadFile(executionContext context.Context, session Session, localPath string, destinationPath string, message string) (UploadResult, error) {
	trimmedLocalPath := strings.TrimSpace(localPath)
	if len(trimmedLocalPath) == 0 {
		return UploadResult{}, githubapi.InvalidInputError{FieldName: localPathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	expandedLocalPath := service.homeExpander.Expand(trimmedLocalPath)
	content, readError := os.ReadFile(expandedLocalPath)
	if readError != nil {
		return UploadResult{}, LocalFileError{Path: expandedLocalPath, Cause: readError}
	}

	return service.UploadContent(executionContext, session, destinationPath, content, message)
}

// UploadContent writes content to destinationPath with a single PUT. The current
// sha is looked up first: an existing file is updated, a missing one is created.
func (service *Service) UploadContent(executionContext context.Context, session Session, destinationPath string, content []byte, message string) (UploadResult, error) {
	normalizedPath := normalizeRepositoryPath(destinationPath)
	if len(normalizedPath) == 0 {
		return UploadResult{}, githubapi.InvalidInputError{FieldName: destinationFieldNameConstant, Message: requiredValueMessageConstant}
	}

	api, apiError := service.repositoryAPI(session)
	if apiError != nil {
		return UploadResult{}, apiError
	}

	currentSHA := ""
	existingFile, lookupError := api.GetFile(executionContext, session.Username, session.RepositoryName, normalizedPath)
	switch {
	case lookupError == nil:
		currentSHA = existingFile.SHA
	case errors.Is(lookupError, githubapi.ErrResourceNotFound):
	default:
		return UploadResult{}, fmt.Errorf(lookupFailureTemplateConstant, normalizedPath, lookupError)
	}

	updated := len(currentSHA) > 0
	commitMessage := strings.TrimSpace(message)
	if len(commitMessage) == 0 {
		commitMessage = defaultWriteMessage(normalizedPath, updated)
	}

	write := githubapi.FileWrite{
		Path:    normalizedPath,
		Message: commitMessage,
		Content: content,
		SHA:     currentSHA,
	}
	if _, writeError := api.PutFile(executionContext, session.Username, session.RepositoryName, write); writeError != nil {
		return UploadResult{}, fmt.Errorf(uploadFailureTemplateConstant, normalizedPath, writeError)
	}

	service.logger.Debug(
		fileUploadedLogMessageConstant,
		zap.String(logFieldRepositoryConstant, session.Repository().String()),
		zap.String(logFieldPathConstant, normalizedPath),
		zap.Bool(logFieldUpdatedConstant, updated),
	)

	return UploadResult{
		Path:    normalizedPath,
		RawURL:  service.configuration.RawContentLocator.Build(session.Repository(), normalizedPath),
		Updated: updated,
	}, nil
}

// CreateFile stages content in a temporary file named after filename, uploads it
// under filename and removes the staging directory before returning.
func (service *Service) CreateFile(executionContext context.Context, session Session, filename string, content string) (UploadResult, error) {
	normalizedPath := normalizeRepositoryPath(filename)
	if len(normalizedPath) == 0 {
		return UploadResult{}, githubapi.InvalidInputError{FieldName: filenameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	return service.uploadStagedContent(executionContext, session, normalizedPath, content)
}

// EditFile replaces the whole content of an existing file. The replacement is
// staged locally and uploaded to the original path, which turns into an update
// carrying the current sha.
func (service *Service) EditFile(executionContext context.Context, session Session, path string, content string) (UploadResult, error) {
	normalizedPath := normalizeRepositoryPath(path)
	if len(normalizedPath) == 0 {
		return UploadResult{}, githubapi.InvalidInputError{FieldName: destinationFieldNameConstant, Message: requiredValueMessageConstant}
	}
	return service.uploadStagedContent(executionContext, session, normalizedPath, content)
}

// ListFiles fetches the repository root. A failed or empty listing yields no
// selectable files and an error.
func (service *Service) ListFiles(executionContext context.Context, session Session) (Listing, error) {
	api, apiError := service.repositoryAPI(session)
	if apiError != nil {
		return Listing{}, apiError
	}

	entries, listError := api.ListDirectory(executionContext, session.Username, session.RepositoryName, repositoryRootPathConstant)
	if listError != nil {
		return Listing{}, fmt.Errorf(listFilesFailureTemplateConstant, listError)
	}
	if len(entries) == 0 {
		return Listing{}, ErrNoSelectableFiles
	}

	selectableFiles := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsFile() {
			selectableFiles = append(selectableFiles, entry.Name)
		}
	}
	return Listing{Entries: entries, SelectableFiles: selectableFiles}, nil
}

// ReadFile fetches and decodes the current content of path.
func (service *Service) ReadFile(executionContext context.Context, session Session, path string) (githubapi.FileContent, error) {
	normalizedPath := normalizeRepositoryPath(path)
	api, apiError := service.repositoryAPI(session)
	if apiError != nil {
		return githubapi.FileContent{}, apiError
	}

	fileContent, readError := api.GetFile(executionContext, session.Username, session.RepositoryName, normalizedPath)
	if readError != nil {
		return githubapi.FileContent{}, fmt.Errorf(readFailureTemplateConstant, normalizedPath, readError)
	}
	return fileContent, nil
}

// DeleteFile removes path. A missing file is reported without issuing a delete.
func (service *Service) DeleteFile(executionContext context.Context, session Session, path string) error {
	normalizedPath := normalizeRepositoryPath(path)
	api, apiError := service.repositoryAPI(session)
	if apiError != nil {
		return apiError
	}

	existingFile, lookupError := api.GetFile(executionContext, session.Username, session.RepositoryName, normalizedPath)
	if lookupError != nil {
		return fmt.Errorf(lookupFailureTemplateConstant, normalizedPath, lookupError)
	}

	deletion := githubapi.FileDeletion{
		Path:    normalizedPath,
		Message: fmt.Sprintf(deleteMessageTemplateConstant, normalizedPath),
		SHA:     existingFile.SHA,
	}
	if deleteError := api.DeleteFile(executionContext, session.Username, session.RepositoryName, deletion); deleteError != nil {
		return fmt.Errorf(deleteFailureTemplateConstant, normalizedPath, deleteError)
	}

	service.logger.Debug(
		fileDeletedLogMessageConstant,
		zap.String(logFieldRepositoryConstant, session.Repository().String()),
		zap.String(logFieldPathConstant, normalizedPath),
	)
	return nil
}

func (service *Service) uploadStagedContent(executionContext context.Context, session Session, repositoryPath string, content string) (UploadResult, error) {
	if _, apiError := service.repositoryAPI(session); apiError != nil {
		return UploadResult{}, apiError
	}

	stagingDirectory, stagingError := os.MkdirTemp(service.configuration.TemporaryDirectoryRoot, temporaryDirectoryPatternConstant)
	if stagingError != nil {
		return UploadResult{}, fmt.Errorf(stagingFailureTemplateConstant, repositoryPath, stagingError)
	}
	defer service.removeStagingDirectory(stagingDirectory)

	stagedFilePath := filepath.Join(stagingDirectory, filepath.Base(filepath.FromSlash(repositoryPath)))
	if writeError := os.WriteFile(stagedFilePath, []byte(content), temporaryFilePermissionsConstant); writeError != nil {
		return UploadResult{}, fmt.Errorf(stagingFailureTemplateConstant, repositoryPath, writeError)
	}

	return service.UploadFile(executionContext, session, stagedFilePath, repositoryPath, "")
}

func (service *Service) removeStagingDirectory(stagingDirectory string) {
	if removalError := os.RemoveAll(stagingDirectory); removalError != nil {
		service.logger.Warn(
			temporaryCleanupFailedMessageConstant,
			zap.String(temporaryDirectoryFieldNameConstant, stagingDirectory),
			zap.Error(removalError),
		)
	}
}

func defaultWriteMessage(path string, updated bool) string {
	if updated {
		return fmt.Sprintf(updateMessageTemplateConstant, path)
	}
	return fmt.Sprintf(createMessageTemplateConstant, path)
}

func normalizeRepositoryPath(path string) string {
	return strings.Trim(strings.TrimSpace(path), pathSeparatorConstant)
}
