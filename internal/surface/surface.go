// Package surface abstracts the window that presents the identity provider's
// sign-in page to the user.
//
// The windowing layer is owned by the host application. This package only
// needs two things from it: open a named window pointed at a URL, and close a
// window by that name later. Manager captures exactly that.
package surface

import (
	"errors"
	"net/url"
)

const (
	// SignInLabel is the stable window name shared by open and cleanup.
	SignInLabel = "oauth-popup"

	// SignInTitle is the title of the sign-in window.
	SignInTitle = "Google Sign In"

	// SignInWidth and SignInHeight are the fixed window dimensions.
	SignInWidth  = 500
	SignInHeight = 600
)

// ErrWindowExists is returned when a window with the same label is already open.
var ErrWindowExists = errors.New("window with this label already exists")

// ErrWindowNotFound is returned by Close when no window has the label.
var ErrWindowNotFound = errors.New("window not found")

// WindowSpec describes a window to open.
type WindowSpec struct {
	Label     string
	Title     string
	URL       *url.URL
	Width     int
	Height    int
	Resizable bool
	Centered  bool
}

// SignInWindow returns the spec of the sign-in popup navigated to u.
func SignInWindow(u *url.URL) WindowSpec {
	return WindowSpec{
		Label:     SignInLabel,
		Title:     SignInTitle,
		URL:       u,
		Width:     SignInWidth,
		Height:    SignInHeight,
		Resizable: false,
		Centered:  true,
	}
}

// Manager opens and closes windows. Open must not block on navigation or user
// interaction.
type Manager interface {
	Open(spec WindowSpec) error
	Close(label string) error
}
