// Package gitrepo models hosted repository references and the direct-download
// links derived from them.
//
// RawContentLocator renders raw-content URLs from a fixed host and branch. The
// branch is never looked up from the API: a repository whose default branch is not
// the configured one yields links that do not resolve.
package gitrepo
