package interactive

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/rawdrop/internal/prompt"
	"github.com/temirov/rawdrop/internal/repofiles"
	"github.com/temirov/rawdrop/internal/ui"
)

const (
	tokenQuestionConstant               = "GitHub personal access token: "
	useExistingQuestionConstant         = "Use an existing repository? (y/n): "
	repositoryNumberQuestionConstant    = "Repository number: "
	repositoryNameQuestionConstant      = "Name of the repository to create: "
	menuChoiceQuestionConstant          = "Choose (1-5): "
	localPathQuestionConstant           = "Path of the file to upload: "
	destinationQuestionTemplateConstant = "Destination path in the repository [%s]: "
	filenameQuestionConstant            = "Name of the file to create (e.g. code.txt): "
	contentQuestionConstant             = "File content: "
	fileNumberQuestionTemplateConstant  = "Number of the file to %s: "
	replacementQuestionConstant         = "New content: "
	menuOptionUploadKeyConstant         = "1"
	menuOptionCreateKeyConstant         = "2"
	menuOptionDeleteKeyConstant         = "3"
	menuOptionEditKeyConstant           = "4"
	menuOptionExitKeyConstant           = "5"
	menuOptionCountConstant             = 5
	actionListRepositoriesConstant      = "Listing repositories"
	actionSelectRepositoryConstant      = "Repository selection"
	actionCreateRepositoryConstant      = "Repository creation"
	actionReadmeUploadConstant          = "README upload"
	actionMenuConstant                  = "Menu selection"
	actionUploadConstant                = "Upload"
	actionCreateFileConstant            = "File creation"
	actionDeleteConstant                = "Deletion"
	actionEditConstant                  = "Edit"
	deleteVerbConstant                  = "delete"
	editVerbConstant                    = "edit"
	stateTransitionMessageConstant      = "session state changed"
	inputClosedMessageConstant          = "input closed; ending session"
	logFieldFromStateConstant           = "from"
	logFieldToStateConstant             = "to"
	logFieldStateConstant               = "state"
	authenticationExhaustedTemplate     = "%w after %d attempts"
)

var (
	// ErrAuthenticationAttemptsExhausted indicates the configured attempt limit was reached.
	ErrAuthenticationAttemptsExhausted = errors.New("authentication attempts exhausted")

	errRepositoryNameRequired = errors.New("repository name required")
	errLocalPathRequired      = errors.New("local file path required")
	errFilenameRequired       = errors.New("file name required")
)

type sessionState string

const (
	stateAuthenticating      sessionState = "authenticating"
	stateResolvingRepository sessionState = "resolving_repository"
	stateMenuIdle            sessionState = "menu_idle"
	stateExit                sessionState = "exit"
)

var menuOptions = []ui.MenuOption{
	{Key: menuOptionUploadKeyConstant, Label: "Upload an existing file"},
	{Key: menuOptionCreateKeyConstant, Label: "Create a new file"},
	{Key: menuOptionDeleteKeyConstant, Label: "Delete a file"},
	{Key: menuOptionEditKeyConstant, Label: "Edit a file"},
	{Key: menuOptionExitKeyConstant, Label: "Exit"},
}

// RunnerOptions tunes authentication behavior.
type RunnerOptions struct {
	MaxAuthenticationAttempts int
	PresetTokens              []string
}

// Runner executes one interactive session.
type Runner struct {
	logger                 *zap.Logger
	service                FileService
	prompter               Prompter
	reporter               *ui.ConsoleReporter
	formatter              ui.MessageFormatter
	options                RunnerOptions
	pendingPresetTokens    []string
	authenticationAttempts int
	session                repofiles.Session
}

// NewRunner constructs a Runner using the provided dependencies.
func NewRunner(logger *zap.Logger, service FileService, prompter Prompter, reporter *ui.ConsoleReporter, options RunnerOptions) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = ui.NewConsoleReporter(nil, logger)
	}
	return &Runner{
		logger:              logger,
		service:             service,
		prompter:            prompter,
		reporter:            reporter,
		formatter:           reporter.Formatter(),
		options:             options,
		pendingPresetTokens: append([]string{}, options.PresetTokens...),
	}
}

// Session returns the current session.
func (runner *Runner) Session() repofiles.Session {
	return runner.session
}

// Run drives the session until exit. End of input ends the session without an
// error; a repository that cannot be created ends it with one.
func (runner *Runner) Run(executionContext context.Context) error {
	runner.reporter.Print(runner.formatter.Banner())

	state := stateAuthenticating
	for state != stateExit {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}

		nextState, stepError := runner.step(executionContext, state)
		if stepError != nil {
			if !errors.Is(stepError, prompt.ErrInputClosed) {
				return stepError
			}
			runner.logger.Debug(inputClosedMessageConstant, zap.String(logFieldStateConstant, string(state)))
			nextState = stateExit
		}

		if nextState != state {
			runner.logger.Debug(
				stateTransitionMessageConstant,
				zap.String(logFieldFromStateConstant, string(state)),
				zap.String(logFieldToStateConstant, string(nextState)),
			)
		}
		state = nextState
	}

	runner.reporter.Print(runner.formatter.Farewell())
	return nil
}

func (runner *Runner) step(executionContext context.Context, state sessionState) (sessionState, error) {
	switch state {
	case stateAuthenticating:
		return runner.authenticate(executionContext)
	case stateResolvingRepository:
		return runner.resolveRepository(executionContext)
	case stateMenuIdle:
		return runner.handleMenu(executionContext)
	default:
		return stateExit, nil
	}
}

func (runner *Runner) authenticate(executionContext context.Context) (sessionState, error) {
	for len(runner.pendingPresetTokens) > 0 {
		presetToken := runner.pendingPresetTokens[0]
		runner.pendingPresetTokens = runner.pendingPresetTokens[1:]
		if runner.tryAuthenticate(executionContext, presetToken) {
			return stateResolvingRepository, nil
		}
	}

	maximumAttempts := runner.options.MaxAuthenticationAttempts
	if maximumAttempts > 0 && runner.authenticationAttempts >= maximumAttempts {
		return stateExit, fmt.Errorf(authenticationExhaustedTemplate, ErrAuthenticationAttemptsExhausted, runner.authenticationAttempts)
	}

	token, askError := runner.prompter.Ask(tokenQuestionConstant)
	if askError != nil {
		return stateAuthenticating, askError
	}
	runner.authenticationAttempts++

	if runner.tryAuthenticate(executionContext, token) {
		return stateResolvingRepository, nil
	}
	return stateAuthenticating, nil
}

func (runner *Runner) tryAuthenticate(executionContext context.Context, token string) bool {
	session, authenticationError := runner.service.Authenticate(executionContext, token)
	if authenticationError != nil {
		runner.reporter.Print(runner.formatter.AuthenticationFailed(authenticationError))
		return false
	}
	runner.session = session
	runner.reporter.Print(runner.formatter.Authenticated(session.Username))
	return true
}

func (runner *Runner) resolveRepository(executionContext context.Context) (sessionState, error) {
	useExisting, confirmError := runner.prompter.Confirm(useExistingQuestionConstant)
	if confirmError != nil {
		return stateResolvingRepository, confirmError
	}
	if useExisting {
		return runner.selectExistingRepository(executionContext)
	}
	return runner.createRepository(executionContext)
}

func (runner *Runner) selectExistingRepository(executionContext context.Context) (sessionState, error) {
	repositoryNames, listError := runner.service.ListRepositories(executionContext, runner.session)
	if listError != nil {
		runner.reporter.Failure(actionListRepositoriesConstant, listError)
		return stateResolvingRepository, nil
	}

	runner.reporter.Print(runner.formatter.RepositoryListing(repositoryNames))
	selectedIndex, selectionError := runner.prompter.Choose(repositoryNumberQuestionConstant, len(repositoryNames))
	if selectionError != nil {
		return stateResolvingRepository, runner.reportSelectionFailure(actionSelectRepositoryConstant, selectionError)
	}

	runner.session = runner.session.WithRepository(repositoryNames[selectedIndex])
	runner.reporter.Print(runner.formatter.RepositorySelected(runner.session.RepositoryName))
	return stateMenuIdle, nil
}

func (runner *Runner) createRepository(executionContext context.Context) (sessionState, error) {
	repositoryName, askError := runner.prompter.Ask(repositoryNameQuestionConstant)
	if askError != nil {
		return stateResolvingRepository, askError
	}
	if len(repositoryName) == 0 {
		runner.reporter.Failure(actionCreateRepositoryConstant, errRepositoryNameRequired)
		return stateResolvingRepository, nil
	}

	boundSession, readmeResult, creationError := runner.service.CreateRepository(executionContext, runner.session, repositoryName)
	var repositoryCreationError repofiles.RepositoryCreationError
	var readmeUploadError repofiles.ReadmeUploadError
	switch {
	case creationError == nil:
	case errors.As(creationError, &repositoryCreationError):
		runner.reporter.Failure(actionCreateRepositoryConstant, creationError)
		return stateExit, creationError
	case errors.As(creationError, &readmeUploadError):
	default:
		runner.reporter.Failure(actionCreateRepositoryConstant, creationError)
		return stateResolvingRepository, nil
	}

	runner.session = boundSession
	runner.reporter.Print(runner.formatter.RepositoryCreated(boundSession.RepositoryName))
	if creationError != nil {
		runner.reporter.Failure(actionReadmeUploadConstant, readmeUploadError.Cause)
	} else {
		runner.reporter.Print(runner.formatter.FileUploaded(readmeResult.Path, readmeResult.RawURL, readmeResult.Updated))
	}
	return stateMenuIdle, nil
}

func (runner *Runner) handleMenu(executionContext context.Context) (sessionState, error) {
	runner.reporter.Print(runner.formatter.Menu(menuOptions))
	choice, askError := runner.prompter.Ask(menuChoiceQuestionConstant)
	if askError != nil {
		return stateMenuIdle, askError
	}

	var actionError error
	switch choice {
	case menuOptionUploadKeyConstant:
		actionError = runner.uploadExistingFile(executionContext)
	case menuOptionCreateKeyConstant:
		actionError = runner.createFile(executionContext)
	case menuOptionDeleteKeyConstant:
		actionError = runner.deleteFile(executionContext)
	case menuOptionEditKeyConstant:
		actionError = runner.editFile(executionContext)
	case menuOptionExitKeyConstant:
		return stateExit, nil
	default:
		runner.reporter.Failure(actionMenuConstant, prompt.InvalidSelectionError{Input: choice, Count: menuOptionCountConstant})
	}
	return stateMenuIdle, actionError
}

func (runner *Runner) uploadExistingFile(executionContext context.Context) error {
	localPath, askError := runner.prompter.Ask(localPathQuestionConstant)
	if askError != nil {
		return askError
	}
	if len(localPath) == 0 {
		runner.reporter.Failure(actionUploadConstant, errLocalPathRequired)
		return nil
	}

	defaultDestination := filepath.Base(localPath)
	destination, askError := runner.prompter.Ask(fmt.Sprintf(destinationQuestionTemplateConstant, defaultDestination))
	if askError != nil {
		return askError
	}
	if len(destination) == 0 {
		destination = defaultDestination
	}

	uploadResult, uploadError := runner.service.UploadFile(executionContext, runner.session, localPath, destination, "")
	if uploadError != nil {
		runner.reporter.Failure(actionUploadConstant, uploadError)
		return nil
	}
	runner.reporter.Print(runner.formatter.FileUploaded(uploadResult.Path, uploadResult.RawURL, uploadResult.Updated))
	return nil
}

func (runner *Runner) createFile(executionContext context.Context) error {
	filename, askError := runner.prompter.Ask(filenameQuestionConstant)
	if askError != nil {
		return askError
	}
	if len(filename) == 0 {
		runner.reporter.Failure(actionCreateFileConstant, errFilenameRequired)
		return nil
	}

	content, askError := runner.prompter.AskRaw(contentQuestionConstant)
	if askError != nil {
		return askError
	}

	uploadResult, creationError := runner.service.CreateFile(executionContext, runner.session, filename, content)
	if creationError != nil {
		runner.reporter.Failure(actionCreateFileConstant, creationError)
		return nil
	}
	runner.reporter.Print(runner.formatter.FileUploaded(uploadResult.Path, uploadResult.RawURL, uploadResult.Updated))
	return nil
}

func (runner *Runner) deleteFile(executionContext context.Context) error {
	selectedPath, selected, selectionError := runner.selectFile(executionContext, actionDeleteConstant, deleteVerbConstant)
	if selectionError != nil || !selected {
		return selectionError
	}

	if deleteError := runner.service.DeleteFile(executionContext, runner.session, selectedPath); deleteError != nil {
		runner.reporter.Failure(actionDeleteConstant, deleteError)
		return nil
	}
	runner.reporter.Print(runner.formatter.FileDeleted(selectedPath))
	return nil
}

func (runner *Runner) editFile(executionContext context.Context) error {
	selectedPath, selected, selectionError := runner.selectFile(executionContext, actionEditConstant, editVerbConstant)
	if selectionError != nil || !selected {
		return selectionError
	}

	currentFile, readError := runner.service.ReadFile(executionContext, runner.session, selectedPath)
	if readError != nil {
		runner.reporter.Failure(actionEditConstant, readError)
		return nil
	}
	runner.reporter.Print(runner.formatter.FileContent(selectedPath, string(currentFile.Content)))

	replacement, askError := runner.prompter.AskRaw(replacementQuestionConstant)
	if askError != nil {
		return askError
	}

	uploadResult, editError := runner.service.EditFile(executionContext, runner.session, selectedPath, replacement)
	if editError != nil {
		runner.reporter.Failure(actionEditConstant, editError)
		return nil
	}
	runner.reporter.Print(runner.formatter.FileUploaded(uploadResult.Path, uploadResult.RawURL, uploadResult.Updated))
	return nil
}

// selectFile lists the repository root and asks for one of its regular files.
// The boolean is false when nothing was selected.
func (runner *Runner) selectFile(executionContext context.Context, action string, verb string) (string, bool, error) {
	listing, listError := runner.service.ListFiles(executionContext, runner.session)
	if listError != nil {
		runner.reporter.Failure(action, listError)
		return "", false, nil
	}

	runner.reporter.Print(runner.formatter.FileListing(listing.EntryNames()))
	if len(listing.SelectableFiles) == 0 {
		runner.reporter.Failure(action, repofiles.ErrNoSelectableFiles)
		return "", false, nil
	}
	if len(listing.SelectableFiles) != len(listing.Entries) {
		runner.reporter.Print(runner.formatter.SelectableFileListing(listing.SelectableFiles))
	}

	selectedIndex, selectionError := runner.prompter.Choose(fmt.Sprintf(fileNumberQuestionTemplateConstant, verb), len(listing.SelectableFiles))
	if selectionError != nil {
		return "", false, runner.reportSelectionFailure(action, selectionError)
	}
	return listing.SelectableFiles[selectedIndex], true, nil
}

// reportSelectionFailure reports rejected selections and passes input failures through.
func (runner *Runner) reportSelectionFailure(action string, selectionError error) error {
	var invalidSelection prompt.InvalidSelectionError
	if errors.As(selectionError, &invalidSelection) {
		runner.reporter.Failure(action, selectionError)
		return nil
	}
	return selectionError
}
