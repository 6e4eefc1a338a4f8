package interactive_test

import (
	"context"
	"errors"

	"github.com/temirov/rawdrop/internal/githubapi"
	"github.com/temirov/rawdrop/internal/repofiles"
)

type uploadCall struct {
	LocalPath       string
	DestinationPath string
	Repository      string
}

type contentCall struct {
	Path    string
	Content string
}

type stubFileService struct {
	validToken            string
	username              string
	authenticationTokens  []string
	repositoryNames       []string
	listRepositoriesError error
	sessionsDuringListing []repofiles.Session
	creationError         error
	createdRepositories   []string
	uploads               []uploadCall
	uploadError           error
	createdFiles          []contentCall
	listing               repofiles.Listing
	listingError          error
	reads                 []string
	fileContents          map[string]string
	edits                 []contentCall
	deletions             []string
	deleteError           error
}

func newStubFileService() *stubFileService {
	return &stubFileService{validToken: "good", username: "alice", fileContents: map[string]string{}}
}

func (stub *stubFileService) Authenticate(_ context.Context, token string) (repofiles.Session, error) {
	stub.authenticationTokens = append(stub.authenticationTokens, token)
	if token != stub.validToken {
		return repofiles.Session{}, githubapi.APIError{Operation: "AuthenticatedUser", StatusCode: 401, Payload: `{"message":"Bad credentials"}`}
	}
	return repofiles.Session{Token: token, Username: stub.username}, nil
}

func (stub *stubFileService) ListRepositories(_ context.Context, session repofiles.Session) ([]string, error) {
	stub.sessionsDuringListing = append(stub.sessionsDuringListing, session)
	if stub.listRepositoriesError != nil {
		return nil, stub.listRepositoriesError
	}
	return stub.repositoryNames, nil
}

func (stub *stubFileService) CreateRepository(_ context.Context, session repofiles.Session, repositoryName string) (repofiles.Session, repofiles.UploadResult, error) {
	stub.createdRepositories = append(stub.createdRepositories, repositoryName)
	if stub.creationError != nil {
		var readmeError repofiles.ReadmeUploadError
		if errors.As(stub.creationError, &readmeError) {
			return session.WithRepository(repositoryName), repofiles.UploadResult{}, stub.creationError
		}
		return session, repofiles.UploadResult{}, stub.creationError
	}
	return session.WithRepository(repositoryName), repofiles.UploadResult{
		Path:   "README.md",
		RawURL: "https://raw.githubusercontent.com/alice/" + repositoryName + "/main/README.md",
	}, nil
}

func (stub *stubFileService) UploadFile(_ context.Context, session repofiles.Session, localPath string, destinationPath string, _ string) (repofiles.UploadResult, error) {
	stub.uploads = append(stub.uploads, uploadCall{LocalPath: localPath, DestinationPath: destinationPath, Repository: session.RepositoryName})
	if stub.uploadError != nil {
		return repofiles.UploadResult{}, stub.uploadError
	}
	return repofiles.UploadResult{Path: destinationPath, RawURL: rawURL(session, destinationPath)}, nil
}

func (stub *stubFileService) CreateFile(_ context.Context, session repofiles.Session, filename string, content string) (repofiles.UploadResult, error) {
	stub.createdFiles = append(stub.createdFiles, contentCall{Path: filename, Content: content})
	return repofiles.UploadResult{Path: filename, RawURL: rawURL(session, filename)}, nil
}

func (stub *stubFileService) ListFiles(context.Context, repofiles.Session) (repofiles.Listing, error) {
	return stub.listing, stub.listingError
}

func (stub *stubFileService) ReadFile(_ context.Context, _ repofiles.Session, path string) (githubapi.FileContent, error) {
	stub.reads = append(stub.reads, path)
	return githubapi.FileContent{Path: path, SHA: "sha-" + path, Content: []byte(stub.fileContents[path])}, nil
}

func (stub *stubFileService) EditFile(_ context.Context, session repofiles.Session, path string, content string) (repofiles.UploadResult, error) {
	stub.edits = append(stub.edits, contentCall{Path: path, Content: content})
	return repofiles.UploadResult{Path: path, RawURL: rawURL(session, path), Updated: true}, nil
}

func (stub *stubFileService) DeleteFile(_ context.Context, _ repofiles.Session, path string) error {
	stub.deletions = append(stub.deletions, path)
	return stub.deleteError
}

func rawURL(session repofiles.Session, path string) string {
	return "https://raw.githubusercontent.com/" + session.Username + "/" + session.RepositoryName + "/main/" + path
}
