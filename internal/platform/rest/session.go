package rest

import "net/http"

// Scheme selects how a session authenticates each request.
type Scheme int

const (
	// SchemeNone is the zero value: the session is not authenticated.
	SchemeNone Scheme = iota
	// SchemeToken sends the login token in the X-Auth-Token header.
	SchemeToken
	// SchemeBasic sends HTTP basic credentials with every request.
	SchemeBasic
)

// TokenHeader is the header carrying the controller token.
const TokenHeader = "X-Auth-Token"

// Credentials holds a username/password pair.
type Credentials struct {
	Username string
	Password string
}

// Session is an immutable credential value threaded through every operation.
// The zero Session is unauthenticated and every call made with it is rejected
// before anything is sent.
type Session struct {
	scheme Scheme
	token  string
	creds  Credentials
}

// TokenSession returns a session that authenticates with a controller token.
// An empty token yields an unauthenticated session.
func TokenSession(token string) Session {
	if token == "" {
		return Session{}
	}
	return Session{scheme: SchemeToken, token: token}
}

// BasicSession returns a session that sends basic credentials on every request.
func BasicSession(creds Credentials) Session {
	if creds.Username == "" {
		return Session{}
	}
	return Session{scheme: SchemeBasic, creds: creds}
}

// Authenticated reports whether the session can be used for requests.
func (s Session) Authenticated() bool {
	return s.scheme != SchemeNone
}

// Scheme returns the authentication scheme of the session.
func (s Session) Scheme() Scheme {
	return s.scheme
}

// apply attaches the session credentials to req.
func (s Session) apply(req *http.Request) {
	switch s.scheme {
	case SchemeToken:
		req.Header.Set(TokenHeader, s.token)
	case SchemeBasic:
		req.SetBasicAuth(s.creds.Username, s.creds.Password)
	}
}
