package gitrepo

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultRawContentHost serves repository blobs outside the API.
	DefaultRawContentHost = "raw.githubusercontent.com"
	// DefaultRawContentBranch is the branch assumed for every raw link.
	DefaultRawContentBranch = "main"

	httpsSchemeConstant          = "https"
	pathSeparatorConstant        = "/"
	repositoryIdentifierTemplate = "%s/%s"
	rawURLPathTemplateConstant   = "/%s/%s/%s/%s"
	hostSchemeSeparatorConstant  = "://"
)

// Repository identifies a hosted repository by owner and name.
type Repository struct {
	Owner string
	Name  string
}

// String renders the owner/name identifier.
func (repository Repository) String() string {
	return fmt.Sprintf(repositoryIdentifierTemplate, repository.Owner, repository.Name)
}

// IsComplete reports whether both owner and name are set.
func (repository Repository) IsComplete() bool {
	return len(strings.TrimSpace(repository.Owner)) > 0 && len(strings.TrimSpace(repository.Name)) > 0
}

// RawContentLocator builds direct-download links for repository files.
type RawContentLocator struct {
	Host   string
	Branch string
}

// NewRawContentLocator applies defaults for empty host or branch values.
func NewRawContentLocator(host string, branch string) RawContentLocator {
	trimmedHost := strings.TrimSpace(host)
	trimmedHost = strings.TrimPrefix(trimmedHost, httpsSchemeConstant+hostSchemeSeparatorConstant)
	trimmedHost = strings.TrimSuffix(trimmedHost, pathSeparatorConstant)
	if len(trimmedHost) == 0 {
		trimmedHost = DefaultRawContentHost
	}
	trimmedBranch := strings.TrimSpace(branch)
	if len(trimmedBranch) == 0 {
		trimmedBranch = DefaultRawContentBranch
	}
	return RawContentLocator{Host: trimmedHost, Branch: trimmedBranch}
}

// Build returns https://<host>/<owner>/<repo>/<branch>/<path>. Path segments are
// escaped individually so separators are preserved.
func (locator RawContentLocator) Build(repository Repository, filePath string) string {
	configuredLocator := NewRawContentLocator(locator.Host, locator.Branch)

	rawURL := url.URL{
		Scheme: httpsSchemeConstant,
		Host:   configuredLocator.Host,
		Path: fmt.Sprintf(
			rawURLPathTemplateConstant,
			repository.Owner,
			repository.Name,
			configuredLocator.Branch,
			strings.TrimPrefix(filePath, pathSeparatorConstant),
		),
	}
	return rawURL.String()
}
