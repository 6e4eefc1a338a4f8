package githubauth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	pathutils "github.com/temirov/rawdrop/internal/utils/path"
)

const (
	tokenSourceSeparatorConstant               = ":"
	environmentTokenSourceTypeValueConstant    = "env"
	fileTokenSourceTypeValueConstant           = "file"
	tokenSourceMissingErrorMessageConstant     = "token source must be provided"
	environmentNameMissingErrorMessageConstant = "environment variable name must be provided"
	filePathMissingErrorMessageConstant        = "token file path must be provided"
	environmentTokenMissingTemplateConstant    = "environment variable %s is not set"
	fileReadErrorTemplateConstant              = "unable to read token file %s: %w"
	fileTokenEmptyErrorTemplateConstant        = "token file %s is empty"
	unsupportedTokenSourceTemplateConstant     = "unsupported token source type %q"
)

// TokenSourceType enumerates the supported token retrieval mechanisms.
type TokenSourceType string

// Token source type enumerations.
const (
	TokenSourceTypeEnvironment TokenSourceType = TokenSourceType(environmentTokenSourceTypeValueConstant)
	TokenSourceTypeFile        TokenSourceType = TokenSourceType(fileTokenSourceTypeValueConstant)
)

// TokenSourceConfiguration specifies how to locate a credential.
type TokenSourceConfiguration struct {
	Type      TokenSourceType
	Reference string
}

// TokenResolver retrieves credentials from configured sources.
type TokenResolver interface {
	ResolveToken(resolutionContext context.Context, source TokenSourceConfiguration) (string, error)
}

// EnvironmentLookup obtains an environment variable value.
type EnvironmentLookup func(key string) (string, bool)

// FileReader reads the contents of a file path.
type FileReader func(path string) ([]byte, error)

// NewTokenResolver creates a token resolver with optional dependency overrides.
func NewTokenResolver(environmentLookup EnvironmentLookup, fileReader FileReader) TokenResolver {
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}
	if fileReader == nil {
		fileReader = os.ReadFile
	}
	return &tokenResolver{
		environmentLookup: environmentLookup,
		fileReader:        fileReader,
		homeExpander:      pathutils.NewHomeExpander(),
	}
}

// ParseTokenSource interprets declarations such as "env:GITHUB_TOKEN" or
// "file:~/.config/rawdrop/token". A bare value names an environment variable.
func ParseTokenSource(sourceValue string) (TokenSourceConfiguration, error) {
	trimmedValue := strings.TrimSpace(sourceValue)
	if len(trimmedValue) == 0 {
		return TokenSourceConfiguration{}, errors.New(tokenSourceMissingErrorMessageConstant)
	}

	components := strings.SplitN(trimmedValue, tokenSourceSeparatorConstant, 2)
	if len(components) == 1 {
		return TokenSourceConfiguration{Type: TokenSourceTypeEnvironment, Reference: trimmedValue}, nil
	}

	sourceType := strings.ToLower(strings.TrimSpace(components[0]))
	reference := strings.TrimSpace(components[1])

	switch sourceType {
	case environmentTokenSourceTypeValueConstant:
		if len(reference) == 0 {
			return TokenSourceConfiguration{}, errors.New(environmentNameMissingErrorMessageConstant)
		}
		return TokenSourceConfiguration{Type: TokenSourceTypeEnvironment, Reference: reference}, nil
	case fileTokenSourceTypeValueConstant:
		if len(reference) == 0 {
			return TokenSourceConfiguration{}, errors.New(filePathMissingErrorMessageConstant)
		}
		return TokenSourceConfiguration{Type: TokenSourceTypeFile, Reference: reference}, nil
	default:
		return TokenSourceConfiguration{}, fmt.Errorf(unsupportedTokenSourceTemplateConstant, sourceType)
	}
}

type tokenResolver struct {
	environmentLookup EnvironmentLookup
	fileReader        FileReader
	homeExpander      *pathutils.HomeExpander
}

func (resolver *tokenResolver) ResolveToken(resolutionContext context.Context, source TokenSourceConfiguration) (string, error) {
	_ = resolutionContext
	switch source.Type {
	case TokenSourceTypeEnvironment:
		value, found := resolver.environmentLookup(source.Reference)
		trimmedValue := strings.TrimSpace(value)
		if !found || len(trimmedValue) == 0 {
			return "", fmt.Errorf(environmentTokenMissingTemplateConstant, source.Reference)
		}
		return trimmedValue, nil
	case TokenSourceTypeFile:
		tokenFilePath := resolver.homeExpander.Expand(source.Reference)
		contents, readError := resolver.fileReader(tokenFilePath)
		if readError != nil {
			return "", fmt.Errorf(fileReadErrorTemplateConstant, tokenFilePath, readError)
		}
		trimmedValue := strings.TrimSpace(string(contents))
		if len(trimmedValue) == 0 {
			return "", fmt.Errorf(fileTokenEmptyErrorTemplateConstant, tokenFilePath)
		}
		return trimmedValue, nil
	default:
		return "", fmt.Errorf(unsupportedTokenSourceTemplateConstant, source.Type)
	}
}
