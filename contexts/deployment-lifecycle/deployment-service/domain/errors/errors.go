package errors

import "errors"

var (
	ErrDeploymentNotFound = errors.New("deployment not found")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrInvalidDeployment  = errors.New("invalid deployment")
	ErrInvalidResource    = errors.New("invalid resource")
	ErrUnknownTemplate    = errors.New("unknown template")
)
