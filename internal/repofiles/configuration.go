package repofiles

import (
	"strings"

	"github.com/temirov/rawdrop/internal/gitrepo"
)

const defaultRepositoryDescriptionConstant = "Repository created automatically"

// ServiceConfiguration captures settings applied to every session.
type ServiceConfiguration struct {
	RepositoryDescription  string
	RawContentLocator      gitrepo.RawContentLocator
	TemporaryDirectoryRoot string
}

// DefaultServiceConfiguration returns baseline configuration values.
func DefaultServiceConfiguration() ServiceConfiguration {
	return ServiceConfiguration{
		RepositoryDescription: defaultRepositoryDescriptionConstant,
		RawContentLocator:     gitrepo.NewRawContentLocator(gitrepo.DefaultRawContentHost, gitrepo.DefaultRawContentBranch),
	}
}

func (configuration ServiceConfiguration) sanitize() ServiceConfiguration {
	sanitized := configuration
	sanitized.RepositoryDescription = strings.TrimSpace(configuration.RepositoryDescription)
	if len(sanitized.RepositoryDescription) == 0 {
		sanitized.RepositoryDescription = defaultRepositoryDescriptionConstant
	}
	sanitized.RawContentLocator = gitrepo.NewRawContentLocator(configuration.RawContentLocator.Host, configuration.RawContentLocator.Branch)
	sanitized.TemporaryDirectoryRoot = strings.TrimSpace(configuration.TemporaryDirectoryRoot)
	return sanitized
}
