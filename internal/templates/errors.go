package templates

import "errors"

var (
	// ErrNotFound indicates the template does not exist.
	ErrNotFound = errors.New("template not found")

	// ErrInvalidID indicates an identifier the store cannot parse.
	ErrInvalidID = errors.New("invalid template id")

	// ErrDuplicate indicates a unique-name violation reported by the store.
	ErrDuplicate = errors.New("duplicate template name")

	// ErrConflict indicates a template with the same name already exists.
	ErrConflict = errors.New("template already exists")

	// ErrForbidden indicates the caller is not an admin.
	ErrForbidden = errors.New("not authorized as admin")
)
