package repofiles_test

import (
	"context"
	"net/http"
	"sort"

	"github.com/temirov/rawdrop/internal/githubapi"
)

type recordedWrite struct {
	Owner      string
	Repository string
	Write      githubapi.FileWrite
}

type recordedDeletion struct {
	Owner      string
	Repository string
	Deletion   githubapi.FileDeletion
}

type stubRepositoryAPI struct {
	login             string
	loginError        error
	repositoryNames   []string
	listError         error
	creationError     error
	createdRepository []githubapi.RepositoryCreation
	directoryEntries  []githubapi.DirectoryEntry
	directoryError    error
	files             map[string]githubapi.FileContent
	lookupError       error
	lookups           []string
	writeError        error
	writes            []recordedWrite
	deleteError       error
	deletions         []recordedDeletion
}

func newStubRepositoryAPI() *stubRepositoryAPI {
	return &stubRepositoryAPI{login: "alice", files: map[string]githubapi.FileContent{}}
}

func (stub *stubRepositoryAPI) AuthenticatedLogin(context.Context) (string, error) {
	if stub.loginError != nil {
		return "", stub.loginError
	}
	return stub.login, nil
}

func (stub *stubRepositoryAPI) ListRepositories(context.Context) ([]string, error) {
	return stub.repositoryNames, stub.listError
}

func (stub *stubRepositoryAPI) CreateRepository(_ context.Context, creation githubapi.RepositoryCreation) error {
	stub.createdRepository = append(stub.createdRepository, creation)
	return stub.creationError
}

func (stub *stubRepositoryAPI) ListDirectory(context.Context, string, string, string) ([]githubapi.DirectoryEntry, error) {
	return stub.directoryEntries, stub.directoryError
}

func (stub *stubRepositoryAPI) GetFile(_ context.Context, _ string, _ string, path string) (githubapi.FileContent, error) {
	stub.lookups = append(stub.lookups, path)
	if stub.lookupError != nil {
		return githubapi.FileContent{}, stub.lookupError
	}
	fileContent, exists := stub.files[path]
	if !exists {
		return githubapi.FileContent{}, githubapi.APIError{Operation: "GetFile", StatusCode: http.StatusNotFound, Payload: `{"message":"Not Found"}`}
	}
	return fileContent, nil
}

func (stub *stubRepositoryAPI) PutFile(_ context.Context, owner string, repository string, write githubapi.FileWrite) (githubapi.FileWriteResult, error) {
	stub.writes = append(stub.writes, recordedWrite{Owner: owner, Repository: repository, Write: write})
	if stub.writeError != nil {
		return githubapi.FileWriteResult{}, stub.writeError
	}
	return githubapi.FileWriteResult{SHA: "new-sha", StatusCode: http.StatusCreated}, nil
}

func (stub *stubRepositoryAPI) DeleteFile(_ context.Context, owner string, repository string, deletion githubapi.FileDeletion) error {
	stub.deletions = append(stub.deletions, recordedDeletion{Owner: owner, Repository: repository, Deletion: deletion})
	return stub.deleteError
}

func (stub *stubRepositoryAPI) writtenPaths() []string {
	paths := make([]string, 0, len(stub.writes))
	for _, write := range stub.writes {
		paths = append(paths, write.Write.Path)
	}
	sort.Strings(paths)
	return paths
}
