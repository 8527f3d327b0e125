// Package guard provides ConstructorGuard, a marker embedded in value objects
// and commands so that zero values can be told apart from constructed ones.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil error and the guarded value was not built by its constructor.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing struct went through its
// constructor. Embed it as a field and call Validate from the owner's own
// Validate method:
//
//	var ErrAnnouncementIsNotConstructed = errors.New("Announcement must be created via NewAnnouncement")
//
//	type Announcement struct {
//	    orderID string
//	    guard   guard.ConstructorGuard
//	}
//
//	func (a Announcement) Validate() error {
//	    return a.guard.Validate(ErrAnnouncementIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed values and validationError (or
// ErrDefaultConstructorGuard when validationError is nil) otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
