package githubapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	"go.uber.org/zap"
)

const (
	defaultBaseURLConstant                 = "https://api.github.com/"
	defaultRequestTimeoutConstant          = 30 * time.Second
	repositoryPageSizeConstant             = 100
	ownerAffiliationConstant               = "owner"
	urlPathSeparatorConstant               = "/"
	requiredValueMessageConstant           = "value required"
	notAFileMessageConstant                = "path refers to a directory"
	invalidBaseURLTemplateConstant         = "invalid api base url %q: %w"
	ownerFieldNameConstant                 = "owner"
	repositoryFieldNameConstant            = "repository"
	pathFieldNameConstant                  = "path"
	tokenFieldNameConstant                 = "token"
	nameFieldNameConstant                  = "name"
	messageFieldNameConstant               = "message"
	shaFieldNameConstant                   = "sha"
	logFieldOperationConstant              = "operation"
	logFieldOwnerConstant                  = "owner"
	logFieldRepositoryConstant             = "repository"
	logFieldPathConstant                   = "path"
	logFieldStatusCodeConstant             = "status_code"
	logFieldEntryCountConstant             = "entry_count"
	logFieldUpdateConstant                 = "update"
	apiRequestStartedMessageConstant       = "github api request"
	apiRequestFailedMessageConstant        = "github api request failed"
	apiRequestCompletedMessageConstant     = "github api request completed"
	authenticateOperationNameConstant      = OperationName("AuthenticatedUser")
	listRepositoriesOperationNameConstant  = OperationName("ListRepositories")
	createRepositoryOperationNameConstant  = OperationName("CreateRepository")
	listDirectoryOperationNameConstant     = OperationName("ListDirectory")
	getFileOperationNameConstant           = OperationName("GetFile")
	putFileOperationNameConstant           = OperationName("PutFile")
	deleteFileOperationNameConstant        = OperationName("DeleteFile")
	directoryEntryTypeFileConstant         = "file"
	directoryEntryTypeDirectoryConstant    = "dir"
	emptyStringConstant                    = ""
	baseURLFieldNameConstant               = "base_url"
	absoluteURLRequiredMessageConstant     = "absolute url required"
	responseStatusUnavailableValueConstant = 0
)

// OperationName describes a named GitHub API call issued by the client.
type OperationName string

// Directory entry types reported by the contents API.
const (
	EntryTypeFile      = directoryEntryTypeFileConstant
	EntryTypeDirectory = directoryEntryTypeDirectoryConstant
)

// ClientConfiguration describes how to reach the API.
type ClientConfiguration struct {
	BaseURL        string
	Token          string
	RequestTimeout time.Duration
	Transport      http.RoundTripper
}

// RepositoryCreation describes a repository to create for the authenticated user.
type RepositoryCreation struct {
	Name        string
	Description string
	Private     bool
}

// DirectoryEntry is one element of a contents listing.
type DirectoryEntry struct {
	Name string
	Path string
	Type string
}

// IsFile reports whether the entry is a regular file.
func (entry DirectoryEntry) IsFile() bool {
	return entry.Type == EntryTypeFile
}

// FileContent is a single file fetched through the contents API.
type FileContent struct {
	Path    string
	SHA     string
	Content []byte
}

// FileWrite describes a create-or-update request. An empty SHA creates the file.
type FileWrite struct {
	Path    string
	Message string
	Content []byte
	SHA     string
}

// FileDeletion describes a delete request.
type FileDeletion struct {
	Path    string
	Message string
	SHA     string
}

// FileWriteResult reports the blob produced by a write.
type FileWriteResult struct {
	SHA        string
	StatusCode int
}

// Client issues GitHub REST calls with one credential.
type Client struct {
	logger       *zap.Logger
	githubClient *gh.Client
}

// NewClient constructs a Client for the configured base URL and credential.
func NewClient(logger *zap.Logger, configuration ClientConfiguration) (*Client, error) {
	if len(strings.TrimSpace(configuration.Token)) == 0 {
		return nil, InvalidInputError{FieldName: tokenFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL, baseURLError := parseBaseURL(configuration.BaseURL)
	if baseURLError != nil {
		return nil, baseURLError
	}

	requestTimeout := configuration.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeoutConstant
	}

	httpClient := &http.Client{
		Transport: newAuthorizationTransport(configuration.Token, configuration.Transport),
		Timeout:   requestTimeout,
	}

	githubClient := gh.NewClient(httpClient)
	githubClient.BaseURL = baseURL

	return &Client{logger: logger, githubClient: githubClient}, nil
}

// AuthenticatedLogin resolves the login that owns the credential (GET /user).
func (client *Client) AuthenticatedLogin(executionContext context.Context) (string, error) {
	if client == nil {
		return "", ErrClientNotConfigured
	}
	client.logger.Debug(apiRequestStartedMessageConstant, zap.String(logFieldOperationConstant, string(authenticateOperationNameConstant)))

	user, response, requestError := client.githubClient.Users.Get(executionContext, emptyStringConstant)
	if requestError != nil {
		return "", client.failure(authenticateOperationNameConstant, response, requestError)
	}

	return user.GetLogin(), nil
}

// ListRepositories returns the names of every repository owned by the caller, in API order.
func (client *Client) ListRepositories(executionContext context.Context) ([]string, error) {
	if client == nil {
		return nil, ErrClientNotConfigured
	}
	client.logger.Debug(apiRequestStartedMessageConstant, zap.String(logFieldOperationConstant, string(listRepositoriesOperationNameConstant)))

	listOptions := &gh.RepositoryListByAuthenticatedUserOptions{
		Affiliation: ownerAffiliationConstant,
		ListOptions: gh.ListOptions{PerPage: repositoryPageSizeConstant},
	}

	repositoryNames := []string{}
	for {
		repositories, response, requestError := client.githubClient.Repositories.ListByAuthenticatedUser(executionContext, listOptions)
		if requestError != nil {
			return nil, client.failure(listRepositoriesOperationNameConstant, response, requestError)
		}

		for _, repository := range repositories {
			repositoryNames = append(repositoryNames, repository.GetName())
		}

		if response == nil || response.NextPage == 0 {
			break
		}
		listOptions.Page = response.NextPage
	}

	client.logger.Debug(
		apiRequestCompletedMessageConstant,
		zap.String(logFieldOperationConstant, string(listRepositoriesOperationNameConstant)),
		zap.Int(logFieldEntryCountConstant, len(repositoryNames)),
	)
	return repositoryNames, nil
}

// CreateRepository creates a repository for the authenticated user (POST /user/repos).
func (client *Client) CreateRepository(executionContext context.Context, creation RepositoryCreation) error {
	if client == nil {
		return ErrClientNotConfigured
	}
	repositoryName := strings.TrimSpace(creation.Name)
	if len(repositoryName) == 0 {
		return InvalidInputError{FieldName: nameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	client.logger.Debug(
		apiRequestStartedMessageConstant,
		zap.String(logFieldOperationConstant, string(createRepositoryOperationNameConstant)),
		zap.String(logFieldRepositoryConstant, repositoryName),
	)

	repositoryDefinition := &gh.Repository{
		Name:        gh.String(repositoryName),
		Description: gh.String(creation.Description),
		Private:     gh.Bool(creation.Private),
	}

	_, response, requestError := client.githubClient.Repositories.Create(executionContext, emptyStringConstant, repositoryDefinition)
	if requestError != nil {
		return client.failure(createRepositoryOperationNameConstant, response, requestError)
	}
	if response == nil || response.StatusCode != http.StatusCreated {
		return client.failure(createRepositoryOperationNameConstant, response, newUnexpectedStatusError(createRepositoryOperationNameConstant, response))
	}

	return nil
}

// ListDirectory lists the entries at path; an empty path lists the repository root.
func (client *Client) ListDirectory(executionContext context.Context, owner string, repository string, path string) ([]DirectoryEntry, error) {
	if client == nil {
		return nil, ErrClientNotConfigured
	}
	if validationError := validateRepository(owner, repository); validationError != nil {
		return nil, validationError
	}
	client.logRequest(listDirectoryOperationNameConstant, owner, repository, path)

	fileContent, directoryContent, response, requestError := client.githubClient.Repositories.GetContents(executionContext, owner, repository, path, nil)
	if requestError != nil {
		return nil, client.failure(listDirectoryOperationNameConstant, response, requestError)
	}

	if fileContent != nil {
		return []DirectoryEntry{toDirectoryEntry(fileContent)}, nil
	}

	entries := make([]DirectoryEntry, 0, len(directoryContent))
	for _, contentEntry := range directoryContent {
		entries = append(entries, toDirectoryEntry(contentEntry))
	}
	return entries, nil
}

// GetFile fetches a file's sha and decoded content. A missing path yields an
// APIError matching ErrResourceNotFound.
func (client *Client) GetFile(executionContext context.Context, owner string, repository string, path string) (FileContent, error) {
	if client == nil {
		return FileContent{}, ErrClientNotConfigured
	}
	if validationError := validatePath(owner, repository, path); validationError != nil {
		return FileContent{}, validationError
	}
	client.logRequest(getFileOperationNameConstant, owner, repository, path)

	fileContent, _, response, requestError := client.githubClient.Repositories.GetContents(executionContext, owner, repository, path, nil)
	if requestError != nil {
		return FileContent{}, client.failure(getFileOperationNameConstant, response, requestError)
	}
	if fileContent == nil {
		return FileContent{}, InvalidInputError{FieldName: pathFieldNameConstant, Message: notAFileMessageConstant}
	}

	decodedContent, decodingError := fileContent.GetContent()
	if decodingError != nil {
		return FileContent{}, ResponseDecodingError{Operation: getFileOperationNameConstant, Cause: decodingError}
	}

	return FileContent{
		Path:    fileContent.GetPath(),
		SHA:     fileContent.GetSHA(),
		Content: []byte(decodedContent),
	}, nil
}

// PutFile creates or updates a file with a single PUT. The sha is sent only when present.
func (client *Client) PutFile(executionContext context.Context, owner string, repository string, write FileWrite) (FileWriteResult, error) {
	if client == nil {
		return FileWriteResult{}, ErrClientNotConfigured
	}
	if validationError := validatePath(owner, repository, write.Path); validationError != nil {
		return FileWriteResult{}, validationError
	}
	if len(strings.TrimSpace(write.Message)) == 0 {
		return FileWriteResult{}, InvalidInputError{FieldName: messageFieldNameConstant, Message: requiredValueMessageConstant}
	}
	client.logRequest(putFileOperationNameConstant, owner, repository, write.Path, zap.Bool(logFieldUpdateConstant, len(write.SHA) > 0))

	fileOptions := &gh.RepositoryContentFileOptions{
		Message: gh.String(write.Message),
		Content: write.Content,
	}
	if fileOptions.Content == nil {
		fileOptions.Content = []byte{}
	}

	var contentResponse *gh.RepositoryContentResponse
	var response *gh.Response
	var requestError error
	if len(write.SHA) > 0 {
		fileOptions.SHA = gh.String(write.SHA)
		contentResponse, response, requestError = client.githubClient.Repositories.UpdateFile(executionContext, owner, repository, write.Path, fileOptions)
	} else {
		contentResponse, response, requestError = client.githubClient.Repositories.CreateFile(executionContext, owner, repository, write.Path, fileOptions)
	}
	if requestError != nil {
		return FileWriteResult{}, client.failure(putFileOperationNameConstant, response, requestError)
	}
	if response == nil || (response.StatusCode != http.StatusOK && response.StatusCode != http.StatusCreated) {
		return FileWriteResult{}, client.failure(putFileOperationNameConstant, response, newUnexpectedStatusError(putFileOperationNameConstant, response))
	}

	writeResult := FileWriteResult{StatusCode: response.StatusCode}
	if contentResponse != nil && contentResponse.Content != nil {
		writeResult.SHA = contentResponse.Content.GetSHA()
	}
	return writeResult, nil
}

// DeleteFile removes a file; the sha must be the file's current blob sha.
func (client *Client) DeleteFile(executionContext context.Context, owner string, repository string, deletion FileDeletion) error {
	if client == nil {
		return ErrClientNotConfigured
	}
	if validationError := validatePath(owner, repository, deletion.Path); validationError != nil {
		return validationError
	}
	if len(strings.TrimSpace(deletion.SHA)) == 0 {
		return InvalidInputError{FieldName: shaFieldNameConstant, Message: requiredValueMessageConstant}
	}
	client.logRequest(deleteFileOperationNameConstant, owner, repository, deletion.Path)

	fileOptions := &gh.RepositoryContentFileOptions{
		Message: gh.String(deletion.Message),
		SHA:     gh.String(deletion.SHA),
	}

	_, response, requestError := client.githubClient.Repositories.DeleteFile(executionContext, owner, repository, deletion.Path, fileOptions)
	if requestError != nil {
		return client.failure(deleteFileOperationNameConstant, response, requestError)
	}
	if response == nil || response.StatusCode != http.StatusOK {
		return client.failure(deleteFileOperationNameConstant, response, newUnexpectedStatusError(deleteFileOperationNameConstant, response))
	}

	return nil
}

func (client *Client) logRequest(operation OperationName, owner string, repository string, path string, extraFields ...zap.Field) {
	fields := []zap.Field{
		zap.String(logFieldOperationConstant, string(operation)),
		zap.String(logFieldOwnerConstant, owner),
		zap.String(logFieldRepositoryConstant, repository),
		zap.String(logFieldPathConstant, path),
	}
	client.logger.Debug(apiRequestStartedMessageConstant, append(fields, extraFields...)...)
}

func (client *Client) failure(operation OperationName, response *gh.Response, cause error) error {
	var failure error
	if apiError, isAPIError := cause.(APIError); isAPIError {
		failure = apiError
	} else {
		failure = newOperationFailure(operation, response, cause)
	}

	statusCode := responseStatusUnavailableValueConstant
	if response != nil && response.Response != nil {
		statusCode = response.StatusCode
	}
	client.logger.Warn(
		apiRequestFailedMessageConstant,
		zap.String(logFieldOperationConstant, string(operation)),
		zap.Int(logFieldStatusCodeConstant, statusCode),
		zap.Error(failure),
	)
	return failure
}

func toDirectoryEntry(contentEntry *gh.RepositoryContent) DirectoryEntry {
	return DirectoryEntry{
		Name: contentEntry.GetName(),
		Path: contentEntry.GetPath(),
		Type: contentEntry.GetType(),
	}
}

func validateRepository(owner string, repository string) error {
	if len(strings.TrimSpace(owner)) == 0 {
		return InvalidInputError{FieldName: ownerFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(repository)) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	return nil
}

func validatePath(owner string, repository string, path string) error {
	if repositoryError := validateRepository(owner, repository); repositoryError != nil {
		return repositoryError
	}
	if len(strings.TrimSpace(path)) == 0 {
		return InvalidInputError{FieldName: pathFieldNameConstant, Message: requiredValueMessageConstant}
	}
	return nil
}

func parseBaseURL(rawBaseURL string) (*url.URL, error) {
	trimmedBaseURL := strings.TrimSpace(rawBaseURL)
	if len(trimmedBaseURL) == 0 {
		trimmedBaseURL = defaultBaseURLConstant
	}
	if !strings.HasSuffix(trimmedBaseURL, urlPathSeparatorConstant) {
		trimmedBaseURL += urlPathSeparatorConstant
	}

	parsedBaseURL, parseError := url.Parse(trimmedBaseURL)
	if parseError != nil {
		return nil, fmt.Errorf(invalidBaseURLTemplateConstant, rawBaseURL, parseError)
	}
	if len(parsedBaseURL.Scheme) == 0 || len(parsedBaseURL.Host) == 0 {
		return nil, fmt.Errorf(invalidBaseURLTemplateConstant, rawBaseURL, InvalidInputError{FieldName: baseURLFieldNameConstant, Message: absoluteURLRequiredMessageConstant})
	}
	return parsedBaseURL, nil
}
