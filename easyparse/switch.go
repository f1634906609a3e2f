package easyparse

import "slices"

// SwitchKind identifies one of the three switch families
type SwitchKind string

const (
	KindBoolean  SwitchKind = "boolean"
	KindArgument SwitchKind = "argument"
	KindOption   SwitchKind = "option"
)

// BooleanSwitch is an on/off switch.
//
// The long form takes one value from the on/off vocabulary (--verbose yes);
// the short form alone turns the switch on (-v).
type BooleanSwitch struct {
	Long       string
	Short      string // empty: no short form
	Value      bool
	Overridden bool // true once matched on the command line
}

// ArgumentSwitch carries a list of free-form values.
//
// The long form replaces Value with every positional-looking token that
// follows it (--out a.exe b.exe); the short form replaces Value with a
// copy of ShortValue (-o).
type ArgumentSwitch struct {
	Long       string
	Short      string
	ShortValue []string
	Value      []string
	Overridden bool
}

// OptionSwitch selects one entry out of a fixed list.
//
// The long form takes the entry as its value (--mode bs); each entry is
// also a short form of its own (-bs).
type OptionSwitch struct {
	Long       string
	Options    []string
	Selected   int // index into Options
	Overridden bool
}

// Value returns the selected option, or "" when Selected is out of range.
func (o OptionSwitch) Value() string {
	if o.Selected < 0 || o.Selected >= len(o.Options) {
		return ""
	}
	return o.Options[o.Selected]
}

// Positional is an argv token that is neither a switch nor a switch value.
type Positional struct {
	Value    string
	Position int // index in argv; argv[0] is the command, so Position >= 1
}

func (a ArgumentSwitch) clone() ArgumentSwitch {
	a.ShortValue = slices.Clone(a.ShortValue)
	a.Value = slices.Clone(a.Value)
	return a
}

func (o OptionSwitch) clone() OptionSwitch {
	o.Options = slices.Clone(o.Options)
	return o
}
