// Package auth holds the signed-in user and the "show login" request flag
// shared by the pages.
package auth

import "time"

// User is the signed-in account.
type User struct {
	Email      string    `yaml:"email"`
	SignedInAt time.Time `yaml:"signed_in_at"`
}

// State is a snapshot of the authentication context.
type State struct {
	User      *User // nil when signed out
	Loading   bool  // true until the session has been read
	ShowLogin bool  // a page asked for the login surface
}

// SignedIn reports whether a user is present.
func (s State) SignedIn() bool {
	return s.User != nil
}

// Context is what pages consume: a read-only view of the session plus the
// ability to request the login surface.
type Context interface {
	State() State
	SetShowLogin(show bool)
}
