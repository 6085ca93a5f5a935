// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

var (
	// ErrDuplicateArgument is returned when an option is given more than
	// once, under any of its spellings.
	ErrDuplicateArgument = errors.New("duplicate argument")

	// ErrUnknownArgument is returned for keys that name no option.
	ErrUnknownArgument = errors.New("unknown argument")

	// ErrInvalidArgument is returned when a value has the wrong type.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoSource is returned when neither a file nor a data buffer is given.
	ErrNoSource = errors.New("no filename or data buffer given")
)
