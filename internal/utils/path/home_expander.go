package pathutils

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	homeShortcutConstant            = "~"
	homeShortcutSlashPrefixConstant = homeShortcutConstant + "/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander resolves the "~" and "~/" shortcuts typed for local files.
// Other forms such as "~user" are returned unchanged.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
}

// NewHomeExpander constructs a HomeExpander using the operating system lookup.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand returns candidatePath rooted at the home directory when it starts with a
// home shortcut. Paths are kept as typed when the home directory is unknown.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil {
		return candidatePath
	}
	relativePath, usesShortcut := trimHomeShortcut(candidatePath)
	if !usesShortcut {
		return candidatePath
	}

	homeDirectory, homeError := expander.homeDirectoryProvider()
	if homeError != nil || len(homeDirectory) == 0 {
		return candidatePath
	}
	return filepath.Join(homeDirectory, relativePath)
}

func trimHomeShortcut(candidatePath string) (string, bool) {
	if candidatePath == homeShortcutConstant {
		return "", true
	}
	for _, prefix := range []string{homeShortcutSlashPrefixConstant, homeShortcutConstant + string(os.PathSeparator)} {
		if relativePath, found := strings.CutPrefix(candidatePath, prefix); found {
			return relativePath, true
		}
	}
	return "", false
}
