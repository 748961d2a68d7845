package generator

import (
	"errors"
	"fmt"
)

// Sentinel errors for invalid run configurations.
var (
	// ErrNoInput indicates that no source file was given.
	ErrNoInput = errors.New("oocgen: no input files")

	// ErrNoOutput indicates that no output path was given.
	ErrNoOutput = errors.New("oocgen: no output file")
)

// InputError reports a source file that could not be read.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("oocgen: read %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }
