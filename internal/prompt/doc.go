// Package prompt reads line-oriented answers from a console.
//
// IOPrompter wraps an io.Reader and io.Writer so scripted input can drive the
// interactive session in tests. ParseSelection validates 1-based numeric choices
// against the length of a displayed listing.
package prompt
