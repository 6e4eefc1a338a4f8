// Package repofiles manages files stored in a GitHub repository owned by the
// authenticated user.
//
// Service authenticates a credential into a Session, resolves the target
// repository, and uploads, creates, lists, reads, edits and deletes files through
// the contents API. Every mutation of an existing file carries the sha fetched
// immediately before it. Content typed by the user is staged in a temporary
// directory that is removed when the action returns.
package repofiles
