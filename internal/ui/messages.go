package ui

import (
	"fmt"
	"strings"
)

const (
	bannerMessageConstant                    = "=== rawdrop: upload files to GitHub and share raw links ==="
	authenticatedMessageTemplateConstant     = "Authenticated as %s"
	authenticationFailedTemplateConstant     = "Invalid token: %s"
	repositoryListingTitleConstant           = "Repositories:"
	fileListingTitleConstant                 = "Files in the repository:"
	selectableListingTitleConstant           = "Files that can be selected:"
	repositorySelectedTemplateConstant       = "Using repository %s"
	repositoryCreatedTemplateConstant        = "Created repository %s"
	fileCreatedTemplateConstant              = "Uploaded %s"
	fileUpdatedTemplateConstant              = "Updated %s"
	rawLinkTemplateConstant                  = "Raw link: %s"
	fileDeletedTemplateConstant              = "Deleted %s"
	fileContentHeaderTemplateConstant        = "Current content of %s:"
	actionFailureTemplateConstant            = "%s failed: %s"
	listingEntryTemplateConstant             = "%d. %s"
	menuTitleConstant                        = "What would you like to do?"
	farewellMessageConstant                  = "Goodbye!"
	unknownFailureMessageConstant            = "unknown error"
	listingLineSeparatorConstant             = "\n"
	fileContentTrailingLineSeparatorConstant = "\n"
	emptyStringConstant                      = ""
)

// MenuOption is a single numbered entry of the main menu.
type MenuOption struct {
	Key   string
	Label string
}

// MessageFormatter builds human-readable messages for session events.
type MessageFormatter struct{}

// Banner returns the greeting shown when a session starts.
func (formatter MessageFormatter) Banner() string {
	return bannerMessageConstant
}

// Authenticated formats a successful authentication.
func (formatter MessageFormatter) Authenticated(username string) string {
	return fmt.Sprintf(authenticatedMessageTemplateConstant, username)
}

// AuthenticationFailed formats a rejected credential.
func (formatter MessageFormatter) AuthenticationFailed(failure error) string {
	return fmt.Sprintf(authenticationFailedTemplateConstant, describeFailure(failure))
}

// RepositoryListing renders repository names as a 1-based list.
func (formatter MessageFormatter) RepositoryListing(repositoryNames []string) string {
	return formatter.numberedListing(repositoryListingTitleConstant, repositoryNames)
}

// FileListing renders entry names as a 1-based list.
func (formatter MessageFormatter) FileListing(entryNames []string) string {
	return formatter.numberedListing(fileListingTitleConstant, entryNames)
}

// SelectableFileListing renders the selectable subset of a file listing.
func (formatter MessageFormatter) SelectableFileListing(fileNames []string) string {
	return formatter.numberedListing(selectableListingTitleConstant, fileNames)
}

// RepositorySelected formats the repository bound to the session.
func (formatter MessageFormatter) RepositorySelected(repositoryName string) string {
	return fmt.Sprintf(repositorySelectedTemplateConstant, repositoryName)
}

// RepositoryCreated formats a newly created repository.
func (formatter MessageFormatter) RepositoryCreated(repositoryName string) string {
	return fmt.Sprintf(repositoryCreatedTemplateConstant, repositoryName)
}

// FileUploaded formats an upload outcome followed by its raw link.
func (formatter MessageFormatter) FileUploaded(path string, rawURL string, updated bool) string {
	template := fileCreatedTemplateConstant
	if updated {
		template = fileUpdatedTemplateConstant
	}
	return fmt.Sprintf(template, path) + listingLineSeparatorConstant + fmt.Sprintf(rawLinkTemplateConstant, rawURL)
}

// FileDeleted formats a removed file.
func (formatter MessageFormatter) FileDeleted(path string) string {
	return fmt.Sprintf(fileDeletedTemplateConstant, path)
}

// FileContent formats a file body preceded by a header line.
func (formatter MessageFormatter) FileContent(path string, content string) string {
	return fmt.Sprintf(fileContentHeaderTemplateConstant, path) + listingLineSeparatorConstant + strings.TrimSuffix(content, fileContentTrailingLineSeparatorConstant)
}

// ActionFailed formats a failed action together with its cause.
func (formatter MessageFormatter) ActionFailed(action string, failure error) string {
	return fmt.Sprintf(actionFailureTemplateConstant, action, describeFailure(failure))
}

// Menu renders the main menu.
func (formatter MessageFormatter) Menu(options []MenuOption) string {
	lines := []string{emptyStringConstant, menuTitleConstant}
	for _, option := range options {
		lines = append(lines, option.Key+". "+option.Label)
	}
	return strings.Join(lines, listingLineSeparatorConstant)
}

// Farewell returns the closing message.
func (formatter MessageFormatter) Farewell() string {
	return farewellMessageConstant
}

func (formatter MessageFormatter) numberedListing(title string, names []string) string {
	lines := []string{emptyStringConstant, title}
	for index, name := range names {
		lines = append(lines, fmt.Sprintf(listingEntryTemplateConstant, index+1, name))
	}
	return strings.Join(lines, listingLineSeparatorConstant)
}

func describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}
