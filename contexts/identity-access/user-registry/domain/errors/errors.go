package errors

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this sub and issuer already exists")
	ErrInvalidUser       = errors.New("invalid user payload")
	ErrKeyIssuance       = errors.New("ssh key pair generation failed")
	ErrSecretStore       = errors.New("secret store operation failed")
)
