package domain

import "errors"

var (
	ErrUnavailable  = errors.New("backend unreachable")
	ErrInvalidInput = errors.New("invalid input")
	ErrNoToken      = errors.New("no token returned from server")
	ErrWrongStep    = errors.New("operation not allowed at this step")
)
