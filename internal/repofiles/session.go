package repofiles

import (
	"github.com/temirov/rawdrop/internal/gitrepo"
)

// Session carries the credential, the authenticated owner and the selected
// repository through every operation.
type Session struct {
	Token          string
	Username       string
	RepositoryName string
	api            RepositoryAPI
}

// Repository returns the owner/name reference of the selected repository.
func (session Session) Repository() gitrepo.Repository {
	return gitrepo.Repository{Owner: session.Username, Name: session.RepositoryName}
}

// HasRepository reports whether a repository has been bound to the session.
func (session Session) HasRepository() bool {
	return session.Repository().IsComplete()
}

// WithRepository returns a copy of the session bound to repositoryName.
func (session Session) WithRepository(repositoryName string) Session {
	boundSession := session
	boundSession.RepositoryName = repositoryName
	return boundSession
}
