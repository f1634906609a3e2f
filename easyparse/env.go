package easyparse

import (
	"fmt"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/dzonerzy/go-easyparse/internal/fold"
)

// LookupFunc resolves an environment variable, like os.LookupEnv
type LookupFunc func(name string) (string, bool)

// EnvName returns the environment variable that feeds the switch with the
// given long form: PREFIX_LONG, upper-cased, every other character as '_'.
func EnvName(prefix, long string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, long)
	if prefix == "" {
		return name
	}
	return strings.TrimSuffix(prefix, "_") + "_" + name
}

// ApplyEnv replaces switch defaults with values from the environment.
//
// Only switches with a long form are considered. Environment values sit
// between registration defaults and the command line: they do not set
// Overridden, and a later Parse still replaces them. lookup defaults to
// os.LookupEnv.
//
// Boolean values use the same on/off vocabulary as the command line,
// argument values are split into words with shell quoting rules, option
// values must name one of the entries.
func (r *Registry) ApplyEnv(prefix string, lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	for i := range r.booleans {
		sw := &r.booleans[i]
		name, raw, ok := lookupSwitch(prefix, sw.Long, lookup)
		if !ok {
			continue
		}
		value := fold.Fold(raw)
		switch {
		case lo.Contains(booleanOnWords, value):
			sw.Value = true
		case lo.Contains(booleanOffWords, value):
			sw.Value = false
		default:
			err := invalidBooleanValueError(sw.Long, raw, 0)
			err.Message = name + ": " + err.Message
			return err
		}
	}

	for i := range r.arguments {
		sw := &r.arguments[i]
		name, raw, ok := lookupSwitch(prefix, sw.Long, lookup)
		if !ok {
			continue
		}
		words, err := shellquote.Split(raw)
		if err != nil {
			return fmt.Errorf("%s: split %q: %w", name, raw, err)
		}
		sw.Value = words
	}

	for i := range r.options {
		sw := &r.options[i]
		name, raw, ok := lookupSwitch(prefix, sw.Long, lookup)
		if !ok {
			continue
		}
		value := fold.Fold(raw)
		j := lo.IndexOf(sw.Options, value)
		if j < 0 {
			err := invalidOptionValueError(sw.Long, raw, value, sw.Options, 0)
			err.Message = name + ": " + err.Message
			return err
		}
		sw.Selected = j
	}

	return nil
}

func lookupSwitch(prefix, long string, lookup LookupFunc) (string, string, bool) {
	if long == "" {
		return "", "", false
	}
	name := EnvName(prefix, long)
	raw, ok := lookup(name)
	return name, raw, ok
}
