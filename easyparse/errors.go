package easyparse

import (
	"errors"
	"strconv"
	"strings"

	"github.com/dzonerzy/go-easyparse/internal/fuzzy"
)

// ErrorType represents error categories for switch registration and parsing.
type ErrorType string

const (
	ErrorTypeEmptyShortSwitch    ErrorType = "empty_short_switch"
	ErrorTypeUnknownSwitch       ErrorType = "unknown_switch"
	ErrorTypeMissingBooleanValue ErrorType = "missing_boolean_value"
	ErrorTypeInvalidBooleanValue ErrorType = "invalid_boolean_value"
	ErrorTypeMissingOptionValue  ErrorType = "missing_option_value"
	ErrorTypeInvalidOptionValue  ErrorType = "invalid_option_value"

	// Registration errors, reported by Err and by Parse before scanning
	ErrorTypeDuplicateSwitch ErrorType = "duplicate_switch"
	ErrorTypeInvalidDefault  ErrorType = "invalid_default"
)

// ParseError is returned for malformed command lines and invalid registrations.
type ParseError struct {
	Type       ErrorType
	Message    string
	Switch     string // folded key or long form the error is about
	Token      string // offending argv token, verbatim
	Position   int    // argv index of Token, 0 when not tied to argv
	Suggestion string // closest registered form, already prefixed with - or --
}

func (e *ParseError) Error() string {
	return e.Message
}

// Detail returns the message followed by the suggestion, if any.
func (e *ParseError) Detail() string {
	if e.Suggestion == "" {
		return e.Message
	}
	return e.Message + "\n  Did you mean '" + e.Suggestion + "'?"
}

// NewParseError creates a new ParseError with the given type and message
func NewParseError(errType ErrorType, message string) *ParseError {
	return &ParseError{
		Type:    errType,
		Message: message,
	}
}

// Is matches any *ParseError of the same type, so errors.Is can find one
// kind of failure inside joined registration errors.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Type == e.Type
}

// IsErrorType reports whether err is, wraps or joins a *ParseError of the given type.
func IsErrorType(err error, errType ErrorType) bool {
	return errors.Is(err, &ParseError{Type: errType})
}

func emptyShortSwitchError(position int) *ParseError {
	return &ParseError{
		Type:     ErrorTypeEmptyShortSwitch,
		Message:  "'-' is not a valid switch",
		Token:    "-",
		Position: position,
	}
}

func unknownSwitchError(token, key string, position int, candidates []string, prefix string) *ParseError {
	err := &ParseError{
		Type:     ErrorTypeUnknownSwitch,
		Message:  "unknown switch: " + token,
		Switch:   key,
		Token:    token,
		Position: position,
	}
	if best := fuzzy.Suggest(key, candidates, fuzzy.DefaultMaxDistance); best != "" {
		err.Suggestion = prefix + best
	}
	return err
}

func missingBooleanValueError(long, token string, position int) *ParseError {
	return &ParseError{
		Type:     ErrorTypeMissingBooleanValue,
		Message:  "boolean switch --" + long + " requires a value: one of " + strings.Join(booleanWords, ", "),
		Switch:   long,
		Token:    token,
		Position: position,
	}
}

func invalidBooleanValueError(long, token string, position int) *ParseError {
	return &ParseError{
		Type:     ErrorTypeInvalidBooleanValue,
		Message:  "invalid value \"" + token + "\" for boolean switch --" + long + ", valid values: " + strings.Join(booleanWords, ", "),
		Switch:   long,
		Token:    token,
		Position: position,
	}
}

func missingOptionValueError(long, token string, options []string, position int) *ParseError {
	return &ParseError{
		Type:     ErrorTypeMissingOptionValue,
		Message:  "option switch --" + long + " requires a value: one of " + strings.Join(options, ", "),
		Switch:   long,
		Token:    token,
		Position: position,
	}
}

func invalidOptionValueError(long, token, key string, options []string, position int) *ParseError {
	err := &ParseError{
		Type:     ErrorTypeInvalidOptionValue,
		Message:  "invalid value \"" + token + "\" for option switch --" + long + ", valid values: " + strings.Join(options, ", "),
		Switch:   long,
		Token:    token,
		Position: position,
	}
	if best := fuzzy.Suggest(key, options, fuzzy.DefaultMaxDistance); best != "" {
		err.Suggestion = "--" + long + " " + best
	}
	return err
}

func duplicateSwitchError(form, claimant, owner string) *ParseError {
	return &ParseError{
		Type:    ErrorTypeDuplicateSwitch,
		Message: claimant + ": switch form " + form + " is already registered by " + owner,
		Switch:  form,
	}
}

func invalidDefaultError(long string, selected, count int) *ParseError {
	return &ParseError{
		Type: ErrorTypeInvalidDefault,
		Message: "option switch --" + long + ": default index " + strconv.Itoa(selected) +
			" out of range for " + strconv.Itoa(count) + " options",
		Switch: long,
	}
}
