// Package githubapi talks to the GitHub REST API on behalf of one credential.
//
// Client wraps go-github with a transport that sends "Authorization: token
// <credential>" and the GitHub JSON media type on every request, exposes the
// handful of user, repository and contents endpoints the session needs, and
// converts failures into typed errors (APIError, OperationError,
// InvalidInputError) that keep the HTTP status and the raw API payload.
package githubapi
