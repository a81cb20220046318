package core

import "errors"

// ErrPermissionDenied is returned whenever a principal may not perform an
// operation; the presentation layer turns it into a redirect-to-login, never
// a business-logic failure.
var ErrPermissionDenied = errors.New("permission denied")

// Principal is the authenticated identity performing an operation. It is
// always passed explicitly; no core function reads ambient session state.
// The zero value is the anonymous principal.
type Principal struct {
	ID   int    `json:"id"`
	Role string `json:"role"`
}

var Anonymous Principal

func (p Principal) IsAnonymous() bool { return p.ID == 0 }

// Authorize allows an operation requiring `role`. Pure; no side effects.
func Authorize(p Principal, role string) error {
	if p.IsAnonymous() || p.Role != role {
		return ErrPermissionDenied
	}
	return nil
}
