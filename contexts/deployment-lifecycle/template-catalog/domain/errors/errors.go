package errors

import "errors"

var (
	ErrTemplateNotFound      = errors.New("template not found")
	ErrTemplateAlreadyExists = errors.New("template with identical content already exists")
	ErrInvalidTemplate       = errors.New("invalid template document")
	ErrTemplateInUse         = errors.New("template is referenced by deployments")
)
