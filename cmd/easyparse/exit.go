package main

import (
	"errors"

	"github.com/dzonerzy/go-easyparse/easyparse"
)

// Process exit codes
const (
	exitSuccess    = 0
	exitGeneral    = 1
	exitMisuse     = 2 // malformed command line, either ours or the scanned one
	exitValidation = 3 // schema decodes but its switches conflict
)

// exitError carries the exit code a command wants for err
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return "exit"
}

func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// exitCode resolves err to a process exit code. Explicit codes win, then
// parse errors map to misuse; anything else is a general failure.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var parseErr *easyparse.ParseError
	if errors.As(err, &parseErr) {
		return exitMisuse
	}
	return exitGeneral
}

// cause strips the exit code wrapper for printing
func cause(err error) error {
	var exitErr *exitError
	if errors.As(err, &exitErr) && exitErr.err != nil {
		return exitErr.err
	}
	return err
}
