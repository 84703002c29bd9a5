package ims

import (
	"errors"
	"fmt"
)

// ErrNotImplemented is returned by a primitive that the backend does not provide.
var ErrNotImplemented = errors.New("not implemented")

// ErrInvalidArgument is the class of caller errors. Use errors.Is to test for it.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	// ErrMissingContextLabel is returned by Set when no name is given and no
	// current context is configured.
	ErrMissingContextLabel = fmt.Errorf("%w: missing context label", ErrInvalidArgument)

	// ErrInvalidContextData is returned by SetCLI for data that is not a mapping.
	ErrInvalidContextData = fmt.Errorf("%w: contextData must be an object", ErrInvalidArgument)

	// ErrInvalidPlugins is returned when the stored plugin list is not a list of strings.
	ErrInvalidPlugins = fmt.Errorf("%w: plugins must be a list of strings", ErrInvalidArgument)
)
