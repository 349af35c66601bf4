package resumes

import "errors"

var (
	ErrNotFound         = errors.New("resume not found")
	ErrInvalidID        = errors.New("invalid resume id")
	ErrForbidden        = errors.New("not authorized")
	ErrTemplateNotFound = errors.New("template not found")
)
