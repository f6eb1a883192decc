package toolchain

import "errors"

var (
	ErrUnknownFactsFormat = errors.New("unknown facts file format")
	ErrUnknownModule      = errors.New("unknown module")
	ErrUnknownFormat      = errors.New("unknown export format")
)
