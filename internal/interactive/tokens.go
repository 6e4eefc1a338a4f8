package interactive

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/rawdrop/internal/githubauth"
)

const (
	tokenSourceUnavailableMessageConstant = "configured token source unavailable"
	tokenSourceFieldConstant              = "token_source"
)

// ResolvePresetTokens returns the credentials tried before prompting: the
// configured token source first, then the environment when enabled. Sources
// that cannot be resolved are logged and skipped.
func ResolvePresetTokens(resolutionContext context.Context, configuration SessionConfiguration, resolver githubauth.TokenResolver, environment map[string]string, logger *zap.Logger) []string {
	if logger == nil {
		logger = zap.NewNop()
	}
	if resolver == nil {
		resolver = githubauth.NewTokenResolver(nil, nil)
	}
	sanitized := configuration.sanitize()

	presetTokens := []string{}
	if len(sanitized.TokenSource) > 0 {
		tokenSource, parseError := githubauth.ParseTokenSource(sanitized.TokenSource)
		if parseError != nil {
			logger.Warn(tokenSourceUnavailableMessageConstant, zap.String(tokenSourceFieldConstant, sanitized.TokenSource), zap.Error(parseError))
		} else if token, resolveError := resolver.ResolveToken(resolutionContext, tokenSource); resolveError != nil {
			logger.Warn(tokenSourceUnavailableMessageConstant, zap.String(tokenSourceFieldConstant, sanitized.TokenSource), zap.Error(resolveError))
		} else {
			presetTokens = append(presetTokens, token)
		}
	}

	if sanitized.UseEnvironmentToken {
		if token, found := githubauth.ResolveToken(environment); found && !containsToken(presetTokens, token) {
			presetTokens = append(presetTokens, token)
		}
	}

	return presetTokens
}

func containsToken(tokens []string, candidate string) bool {
	for _, token := range tokens {
		if token == candidate {
			return true
		}
	}
	return false
}
