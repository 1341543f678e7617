package qart

import "errors"

var (
	ErrNothingToPublish = errors.New("no render outputs found")
	ErrInvalidName      = errors.New("invalid publish name")
)
