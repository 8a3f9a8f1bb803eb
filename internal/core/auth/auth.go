// Package auth exposes the session context the client operates in. The
// authentication flow itself lives elsewhere; consumers only need the
// current workspace id and a bearer token.
package auth

// SessionProvider supplies the active workspace and credentials.
type SessionProvider interface {
	// WorkspaceID returns the id of the workspace the user is viewing.
	WorkspaceID() string
	// Token returns the current bearer token for backend calls.
	Token() string
}

// StaticSession is a SessionProvider with fixed values, used when the
// workspace and token come from config or the environment.
type StaticSession struct {
	Workspace   string
	BearerToken string
}

var _ SessionProvider = StaticSession{}

// WorkspaceID implements SessionProvider.
func (s StaticSession) WorkspaceID() string { return s.Workspace }

// Token implements SessionProvider.
func (s StaticSession) Token() string { return s.BearerToken }
