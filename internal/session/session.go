package session

import "context"

// Session is an opaque presence value. The application core never inspects
// credentials; it only reacts to a session existing or not.
type Session struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Collaborator is the authentication boundary the router consumes. The
// zero-value contract: Current answers the one-shot presence query and
// OnChange delivers sign-in (non-nil) and sign-out (nil) events until the
// returned unsubscribe runs.
type Collaborator interface {
	Current(ctx context.Context) (*Session, error)
	OnChange(fn func(*Session)) (unsubscribe func())
}
