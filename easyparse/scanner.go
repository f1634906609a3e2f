package easyparse

import (
	"slices"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/dzonerzy/go-easyparse/internal/fold"
)

// Accepted values for the long form of a boolean switch, compared after folding
var (
	booleanOnWords  = []string{"on", "y", "yes"}
	booleanOffWords = []string{"off", "n", "no"}
	booleanWords    = slices.Concat(booleanOnWords, booleanOffWords)
)

// tokenKind is the classification of a single argv token
type tokenKind int

const (
	tokenPositional tokenKind = iota
	tokenShort
	tokenLong
)

func (k tokenKind) String() string {
	switch k {
	case tokenPositional:
		return "positional"
	case tokenShort:
		return "short"
	case tokenLong:
		return "long"
	default:
		return "unknown"
	}
}

// scanner walks argv once, left to right, mutating the registry in place
type scanner struct {
	reg      *Registry
	argv     []string
	position int
	logger   *zap.Logger
}

// Parse scans argv against the registered switches. argv[0] is the invoked
// command and is not scanned.
//
// Matched switches get their value replaced and Overridden set; every other
// non-switch token is appended to the positionals, which are reset at the
// start of each call. Parse stops at the first malformed token and returns
// a *ParseError; changes made before that token are kept. Registration
// errors (see Err) are returned before anything is scanned.
func (r *Registry) Parse(argv []string) error {
	if err := r.Err(); err != nil {
		return err
	}

	r.argv = argv
	r.positionals = r.positionals[:0]

	s := &scanner{
		reg:      r,
		argv:     argv,
		position: 1,
		logger:   r.logger,
	}
	return s.run()
}

func (s *scanner) run() error {
	for s.position < len(s.argv) {
		token := s.argv[s.position]

		kind, err := s.classify(s.position)
		if err != nil {
			return err
		}

		s.logger.Debug("scan token",
			zap.Int("position", s.position),
			zap.String("token", token),
			zap.Stringer("kind", kind))

		switch kind {
		case tokenLong:
			err = s.scanLong(token)
		case tokenShort:
			err = s.scanShort(token)
		case tokenPositional:
			s.reg.positionals = append(s.reg.positionals, Positional{Value: token, Position: s.position})
		}
		if err != nil {
			return err
		}

		s.position++
	}
	return nil
}

// classify returns the kind of the token at position. A lone "-" is an error
// wherever it appears, including inside an argument switch's value list.
func (s *scanner) classify(position int) (tokenKind, error) {
	token := s.argv[position]
	switch {
	case len(token) == 0 || token[0] != '-':
		return tokenPositional, nil
	case len(token) == 1:
		return tokenPositional, emptyShortSwitchError(position)
	case token[1] == '-':
		return tokenLong, nil
	default:
		return tokenShort, nil
	}
}

// scanShort resolves -key: boolean, then argument, then option entries.
func (s *scanner) scanShort(token string) error {
	key := fold.Fold(token[1:])
	reg := s.reg

	if i := reg.findShortBool(key); i >= 0 {
		sw := &reg.booleans[i]
		sw.Value = true
		sw.Overridden = true
		s.matched(KindBoolean, key)
		return nil
	}

	if i := reg.findShortArg(key); i >= 0 {
		sw := &reg.arguments[i]
		sw.Value = slices.Clone(sw.ShortValue)
		sw.Overridden = true
		s.matched(KindArgument, key)
		return nil
	}

	if i, j := reg.findShortOpt(key); i >= 0 {
		sw := &reg.options[i]
		sw.Selected = j
		sw.Overridden = true
		s.matched(KindOption, key)
		return nil
	}

	return unknownSwitchError(token, key, s.position, reg.shortForms(), "-")
}

// scanLong resolves --key: boolean, then argument, then option long forms.
// The first kind that owns the key decides how many tokens are consumed.
func (s *scanner) scanLong(token string) error {
	key := fold.Fold(token[2:])
	reg := s.reg

	if i := reg.findLongBool(key); i >= 0 {
		return s.scanBooleanValue(&reg.booleans[i], token)
	}

	if i := reg.findLongArg(key); i >= 0 {
		return s.scanArgumentValues(&reg.arguments[i])
	}

	if i := reg.findLongOpt(key); i >= 0 {
		return s.scanOptionValue(&reg.options[i], token)
	}

	if reg.strictLong {
		return unknownSwitchError(token, key, s.position, reg.longForms(), "--")
	}

	s.logger.Debug("dropping unknown long switch",
		zap.Int("position", s.position),
		zap.String("token", token))
	return nil
}

// scanBooleanValue consumes exactly one value token from the on/off vocabulary
func (s *scanner) scanBooleanValue(sw *BooleanSwitch, token string) error {
	if s.position+1 >= len(s.argv) {
		return missingBooleanValueError(sw.Long, token, s.position)
	}

	s.position++
	raw := s.argv[s.position]
	value := fold.Fold(raw)

	switch {
	case lo.Contains(booleanOnWords, value):
		sw.Value = true
	case lo.Contains(booleanOffWords, value):
		sw.Value = false
	default:
		return invalidBooleanValueError(sw.Long, raw, s.position)
	}

	sw.Overridden = true
	s.matched(KindBoolean, sw.Long)
	return nil
}

// scanArgumentValues replaces the value list with every following
// positional token, stopping before the next switch or at the end of argv.
// Zero values is legal.
func (s *scanner) scanArgumentValues(sw *ArgumentSwitch) error {
	sw.Value = []string{}
	sw.Overridden = true

	for s.position+1 < len(s.argv) {
		kind, err := s.classify(s.position + 1)
		if err != nil {
			return err
		}
		if kind != tokenPositional {
			break
		}
		s.position++
		sw.Value = append(sw.Value, s.argv[s.position])
	}

	s.matched(KindArgument, sw.Long)
	return nil
}

// scanOptionValue consumes exactly one value token that must name an entry
func (s *scanner) scanOptionValue(sw *OptionSwitch, token string) error {
	if s.position+1 >= len(s.argv) {
		return missingOptionValueError(sw.Long, token, sw.Options, s.position)
	}

	s.position++
	raw := s.argv[s.position]
	value := fold.Fold(raw)

	j := lo.IndexOf(sw.Options, value)
	if j < 0 {
		return invalidOptionValueError(sw.Long, raw, value, sw.Options, s.position)
	}

	sw.Selected = j
	sw.Overridden = true
	s.matched(KindOption, sw.Long)
	return nil
}

func (s *scanner) matched(kind SwitchKind, form string) {
	s.logger.Debug("switch matched",
		zap.Int("position", s.position),
		zap.String("kind", string(kind)),
		zap.String("form", form))
}
