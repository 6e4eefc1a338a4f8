package githubapi

import (
	"net/http"

	"github.com/temirov/rawdrop/internal/githubauth"
)

const (
	authorizationHeaderNameConstant = "Authorization"
	acceptHeaderNameConstant        = "Accept"
	acceptHeaderValueConstant       = "application/vnd.github+json"
)

// authorizationTransport stamps every outbound request with the session credential
// and the GitHub JSON media type.
type authorizationTransport struct {
	token string
	base  http.RoundTripper
}

func newAuthorizationTransport(token string, base http.RoundTripper) *authorizationTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authorizationTransport{token: token, base: base}
}

// RoundTrip implements http.RoundTripper without mutating the caller's request.
func (transport *authorizationTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	authorizedRequest := request.Clone(request.Context())
	authorizedRequest.Header.Set(authorizationHeaderNameConstant, githubauth.AuthorizationHeaderValue(transport.token))
	authorizedRequest.Header.Set(acceptHeaderNameConstant, acceptHeaderValueConstant)
	return transport.base.RoundTrip(authorizedRequest)
}
