// Package githubauth locates GitHub credentials outside the interactive prompt.
//
// ResolveToken consults GH_TOKEN, GITHUB_TOKEN and GITHUB_API_TOKEN; ParseTokenSource
// and TokenResolver read "env:NAME" and "file:PATH" declarations from configuration.
package githubauth
