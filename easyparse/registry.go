// Package easyparse classifies a command line into configured switch values
// and leftover positional arguments.
//
// A Registry holds three kinds of switches (boolean, argument and option)
// registered through chained calls:
//
//	reg := easyparse.New().
//		BoolSwitch("verbose", "v", false).
//		ArgSwitch("out", "o", []string{"a.out"}, []string{"out.exe"}).
//		OptSwitch("mode", []string{"hs", "bs", "b"}, 0)
//	if err := reg.Parse(os.Args); err != nil { ... }
//
// Matching priority is fixed by kind (boolean, then argument, then option)
// and by registration order within a kind.
package easyparse

import (
	"errors"
	"iter"
	"slices"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/dzonerzy/go-easyparse/internal/fold"
)

// Registry holds switch configuration and the results of the last Parse.
// A Registry is not safe for concurrent use.
type Registry struct {
	booleans    []BooleanSwitch
	arguments   []ArgumentSwitch
	options     []OptionSwitch
	positionals []Positional

	// argv of the last Parse, kept for Arg0
	argv []string

	strictLong bool
	logger     *zap.Logger

	// form -> description of the switch that owns it
	longOwners  map[string]string
	shortOwners map[string]string
	errs        []error
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		logger:      zap.NewNop(),
		longOwners:  make(map[string]string),
		shortOwners: make(map[string]string),
	}
}

// BoolSwitch registers a boolean switch with its default value.
// An empty short form means the switch has none.
func (r *Registry) BoolSwitch(long, short string, value bool) *Registry {
	sw := BooleanSwitch{
		Long:  fold.Fold(long),
		Short: fold.Fold(short),
		Value: value,
	}
	owner := describe(KindBoolean, sw.Long, sw.Short)
	r.claimLong(sw.Long, owner)
	r.claimShort(sw.Short, owner)

	r.booleans = append(r.booleans, sw)
	return r
}

// ArgSwitch registers an argument switch. shortValue is assigned when the
// short form fires; value is the default.
func (r *Registry) ArgSwitch(long, short string, shortValue, value []string) *Registry {
	sw := ArgumentSwitch{
		Long:       fold.Fold(long),
		Short:      fold.Fold(short),
		ShortValue: slices.Clone(shortValue),
		Value:      slices.Clone(value),
	}
	owner := describe(KindArgument, sw.Long, sw.Short)
	r.claimLong(sw.Long, owner)
	r.claimShort(sw.Short, owner)

	r.arguments = append(r.arguments, sw)
	return r
}

// OptSwitch registers an option switch. selected is the index of the
// default entry and must satisfy 0 <= selected < len(options); a violation
// is reported as an ErrorTypeInvalidDefault registration error.
func (r *Registry) OptSwitch(long string, options []string, selected int) *Registry {
	sw := OptionSwitch{
		Long:     fold.Fold(long),
		Options:  fold.Strings(options),
		Selected: selected,
	}
	owner := describe(KindOption, sw.Long, "")
	r.claimLong(sw.Long, owner)
	for _, opt := range sw.Options {
		r.claimShort(opt, owner)
	}
	if selected < 0 || selected >= len(sw.Options) {
		r.errs = append(r.errs, invalidDefaultError(sw.Long, selected, len(sw.Options)))
	}

	r.options = append(r.options, sw)
	return r
}

// Reserve pre-allocates room for the given number of switches of each kind
func (r *Registry) Reserve(booleans, arguments, options int) *Registry {
	r.booleans = slices.Grow(r.booleans, booleans)
	r.arguments = slices.Grow(r.arguments, arguments)
	r.options = slices.Grow(r.options, options)
	return r
}

// StrictLong makes Parse fail with ErrorTypeUnknownSwitch on an unknown
// long switch. By default an unknown long switch is dropped silently.
func (r *Registry) StrictLong(enabled bool) *Registry {
	r.strictLong = enabled
	return r
}

// WithLogger sets the logger used to trace token matching at debug level
func (r *Registry) WithLogger(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r.logger = logger
	return r
}

// Err returns the registration errors collected so far, joined, or nil.
func (r *Registry) Err() error {
	return errors.Join(r.errs...)
}

func (r *Registry) claimLong(form, owner string) {
	if form == "" {
		return
	}
	if prev, taken := r.longOwners[form]; taken {
		r.errs = append(r.errs, duplicateSwitchError("--"+form, owner, prev))
		return
	}
	r.longOwners[form] = owner
}

func (r *Registry) claimShort(form, owner string) {
	if form == "" {
		return
	}
	if prev, taken := r.shortOwners[form]; taken {
		r.errs = append(r.errs, duplicateSwitchError("-"+form, owner, prev))
		return
	}
	r.shortOwners[form] = owner
}

func describe(kind SwitchKind, long, short string) string {
	switch {
	case long != "":
		return string(kind) + " switch --" + long
	case short != "":
		return string(kind) + " switch -" + short
	default:
		return "unnamed " + string(kind) + " switch"
	}
}

// Booleans iterates over boolean switches in registration order
func (r *Registry) Booleans() iter.Seq[BooleanSwitch] {
	return slices.Values(r.booleans)
}

// Arguments iterates over argument switches in registration order.
// Yielded values share slices with the registry and must not be modified.
func (r *Registry) Arguments() iter.Seq[ArgumentSwitch] {
	return slices.Values(r.arguments)
}

// Options iterates over option switches in registration order
func (r *Registry) Options() iter.Seq[OptionSwitch] {
	return slices.Values(r.options)
}

// Positionals iterates over positional arguments of the last Parse in argv order
func (r *Registry) Positionals() iter.Seq[Positional] {
	return slices.Values(r.positionals)
}

// PositionalCount returns the number of positional arguments
func (r *Registry) PositionalCount() int {
	return len(r.positionals)
}

// PositionalAt returns the index-th positional argument
func (r *Registry) PositionalAt(index int) (Positional, bool) {
	if index < 0 || index >= len(r.positionals) {
		return Positional{}, false
	}
	return r.positionals[index], true
}

// Arg0 returns the invoking command (argv[0]) of the last Parse
func (r *Registry) Arg0() string {
	if len(r.argv) == 0 {
		return ""
	}
	return r.argv[0]
}

// LongBool finds a boolean switch by long form
func (r *Registry) LongBool(long string) (BooleanSwitch, bool) {
	i := r.findLongBool(fold.Fold(long))
	if i < 0 {
		return BooleanSwitch{}, false
	}
	return r.booleans[i], true
}

// ShortBool finds a boolean switch by short form
func (r *Registry) ShortBool(short string) (BooleanSwitch, bool) {
	i := r.findShortBool(fold.Fold(short))
	if i < 0 {
		return BooleanSwitch{}, false
	}
	return r.booleans[i], true
}

// LongArg finds an argument switch by long form
func (r *Registry) LongArg(long string) (ArgumentSwitch, bool) {
	i := r.findLongArg(fold.Fold(long))
	if i < 0 {
		return ArgumentSwitch{}, false
	}
	return r.arguments[i], true
}

// ShortArg finds an argument switch by short form
func (r *Registry) ShortArg(short string) (ArgumentSwitch, bool) {
	i := r.findShortArg(fold.Fold(short))
	if i < 0 {
		return ArgumentSwitch{}, false
	}
	return r.arguments[i], true
}

// LongOpt finds an option switch by long form
func (r *Registry) LongOpt(long string) (OptionSwitch, bool) {
	i := r.findLongOpt(fold.Fold(long))
	if i < 0 {
		return OptionSwitch{}, false
	}
	return r.options[i], true
}

// ShortOpt finds the option switch that has short as one of its entries
func (r *Registry) ShortOpt(short string) (OptionSwitch, bool) {
	i, _ := r.findShortOpt(fold.Fold(short))
	if i < 0 {
		return OptionSwitch{}, false
	}
	return r.options[i], true
}

// Clone returns a deep copy of the registry, switch state and positionals
// included. Parse into a clone when a failed parse must leave the original
// untouched.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		booleans:    slices.Clone(r.booleans),
		arguments:   lo.Map(r.arguments, func(a ArgumentSwitch, _ int) ArgumentSwitch { return a.clone() }),
		options:     lo.Map(r.options, func(o OptionSwitch, _ int) OptionSwitch { return o.clone() }),
		positionals: slices.Clone(r.positionals),
		argv:        slices.Clone(r.argv),
		strictLong:  r.strictLong,
		logger:      r.logger,
		longOwners:  make(map[string]string, len(r.longOwners)),
		shortOwners: make(map[string]string, len(r.shortOwners)),
		errs:        slices.Clone(r.errs),
	}
	for k, v := range r.longOwners {
		c.longOwners[k] = v
	}
	for k, v := range r.shortOwners {
		c.shortOwners[k] = v
	}
	return c
}

// Lookups below take folded keys and return slice indexes, -1 when absent.
// Empty stored forms never match.

func (r *Registry) findLongBool(key string) int {
	return slices.IndexFunc(r.booleans, func(sw BooleanSwitch) bool {
		return sw.Long != "" && sw.Long == key
	})
}

func (r *Registry) findShortBool(key string) int {
	return slices.IndexFunc(r.booleans, func(sw BooleanSwitch) bool {
		return sw.Short != "" && sw.Short == key
	})
}

func (r *Registry) findLongArg(key string) int {
	return slices.IndexFunc(r.arguments, func(sw ArgumentSwitch) bool {
		return sw.Long != "" && sw.Long == key
	})
}

func (r *Registry) findShortArg(key string) int {
	return slices.IndexFunc(r.arguments, func(sw ArgumentSwitch) bool {
		return sw.Short != "" && sw.Short == key
	})
}

func (r *Registry) findLongOpt(key string) int {
	return slices.IndexFunc(r.options, func(sw OptionSwitch) bool {
		return sw.Long != "" && sw.Long == key
	})
}

// findShortOpt returns the first option switch having key as an entry and
// the entry's index.
func (r *Registry) findShortOpt(key string) (int, int) {
	if key == "" {
		return -1, -1
	}
	for i, sw := range r.options {
		if j := lo.IndexOf(sw.Options, key); j >= 0 {
			return i, j
		}
	}
	return -1, -1
}

// shortForms lists every short form and option entry, used for suggestions
func (r *Registry) shortForms() []string {
	forms := make([]string, 0, len(r.shortOwners))
	for _, sw := range r.booleans {
		forms = append(forms, sw.Short)
	}
	for _, sw := range r.arguments {
		forms = append(forms, sw.Short)
	}
	for _, sw := range r.options {
		forms = append(forms, sw.Options...)
	}
	return lo.Compact(forms)
}

// longForms lists every long form, used for suggestions
func (r *Registry) longForms() []string {
	forms := make([]string, 0, len(r.longOwners))
	for _, sw := range r.booleans {
		forms = append(forms, sw.Long)
	}
	for _, sw := range r.arguments {
		forms = append(forms, sw.Long)
	}
	for _, sw := range r.options {
		forms = append(forms, sw.Long)
	}
	return lo.Compact(forms)
}
