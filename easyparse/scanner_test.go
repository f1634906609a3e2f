package easyparse

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newExampleRegistry mirrors the switch set used throughout these tests
func newExampleRegistry() *Registry {
	return New().
		BoolSwitch("boolSwitch1", "bs", false).
		BoolSwitch("anotherboolean", "bs2", false).
		OptSwitch("custom1", []string{"cf1", "cs1", "ct1"}, 1).
		OptSwitch("custom2", []string{"cf2", "cs2", "ct2"}, 1).
		ArgSwitch("argtype", "arg", []string{"def2"}, []string{"default"}).
		BoolSwitch("boolean3", "bs3", false)
}

func mustBool(t *testing.T, reg *Registry, long string) BooleanSwitch {
	t.Helper()
	sw, ok := reg.LongBool(long)
	if !ok {
		t.Fatalf("boolean switch --%s not registered", long)
	}
	return sw
}

func mustArg(t *testing.T, reg *Registry, long string) ArgumentSwitch {
	t.Helper()
	sw, ok := reg.LongArg(long)
	if !ok {
		t.Fatalf("argument switch --%s not registered", long)
	}
	return sw
}

func mustOpt(t *testing.T, reg *Registry, long string) OptionSwitch {
	t.Helper()
	sw, ok := reg.LongOpt(long)
	if !ok {
		t.Fatalf("option switch --%s not registered", long)
	}
	return sw
}

func expectParseError(t *testing.T, err error, want ErrorType) *ParseError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if parseErr.Type != want {
		t.Fatalf("expected error type %s, got %s (%v)", want, parseErr.Type, parseErr)
	}
	return parseErr
}

// TestParseMixedCommandLine exercises every switch kind in one argv
func TestParseMixedCommandLine(t *testing.T) {
	reg := newExampleRegistry()
	argv := []string{
		"prgrm", "-bs", "--anotherBoolean", "ON", "-cf1", "--custom2", "cf2",
		"--argType", "args", "args2", "-bs3", "helloPositional",
	}

	if err := reg.Parse(argv); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if sw := mustBool(t, reg, "boolSwitch1"); !sw.Value || !sw.Overridden {
		t.Errorf("boolSwitch1 = %+v, want value and overridden", sw)
	}
	if sw := mustBool(t, reg, "anotherboolean"); !sw.Value || !sw.Overridden {
		t.Errorf("anotherboolean = %+v, want value and overridden", sw)
	}
	if sw := mustBool(t, reg, "boolean3"); !sw.Value || !sw.Overridden {
		t.Errorf("boolean3 = %+v, want value and overridden", sw)
	}

	if sw := mustOpt(t, reg, "custom1"); sw.Value() != "cf1" || !sw.Overridden {
		t.Errorf("custom1 = %q (overridden=%v), want cf1", sw.Value(), sw.Overridden)
	}
	if sw := mustOpt(t, reg, "custom2"); sw.Selected != 0 || !sw.Overridden {
		t.Errorf("custom2 selected %d (overridden=%v), want 0", sw.Selected, sw.Overridden)
	}

	arg := mustArg(t, reg, "argtype")
	if diff := cmp.Diff([]string{"args", "args2"}, arg.Value); diff != "" {
		t.Errorf("argtype value mismatch (-want +got):\n%s", diff)
	}
	if !arg.Overridden {
		t.Error("argtype should be overridden")
	}

	want := []Positional{{Value: "helloPositional", Position: 11}}
	if diff := cmp.Diff(want, slices.Collect(reg.Positionals())); diff != "" {
		t.Errorf("positionals mismatch (-want +got):\n%s", diff)
	}
	if reg.Arg0() != "prgrm" {
		t.Errorf("Arg0() = %q, want prgrm", reg.Arg0())
	}
}

func TestParseLongBoolean(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"on", true},
		{"y", true},
		{"yes", true},
		{"YES", true},
		{"off", false},
		{"n", false},
		{"No", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			reg := New().BoolSwitch("verbose", "v", !tt.want)
			if err := reg.Parse([]string{"cmd", "--verbose", tt.value}); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			sw := mustBool(t, reg, "verbose")
			if sw.Value != tt.want || !sw.Overridden {
				t.Errorf("--verbose %s = %+v, want value=%v overridden", tt.value, sw, tt.want)
			}
			if reg.PositionalCount() != 0 {
				t.Errorf("value token leaked into positionals: %d", reg.PositionalCount())
			}
		})
	}
}

func TestParseShortBoolean(t *testing.T) {
	reg := New().
		BoolSwitch("verbose", "v", false).
		BoolSwitch("color", "c", true)

	if err := reg.Parse([]string{"cmd", "-v"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if sw := mustBool(t, reg, "verbose"); !sw.Value || !sw.Overridden {
		t.Errorf("verbose = %+v, want value and overridden", sw)
	}
	if sw := mustBool(t, reg, "color"); !sw.Value || sw.Overridden {
		t.Errorf("color = %+v, want untouched default", sw)
	}
}

func TestParseShortArgumentUsesShortValue(t *testing.T) {
	reg := New().ArgSwitch("out", "o", []string{"a.out"}, []string{"out.exe"})

	if err := reg.Parse([]string{"cmd", "-O", "file.c"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	sw := mustArg(t, reg, "out")
	if diff := cmp.Diff([]string{"a.out"}, sw.Value); diff != "" {
		t.Errorf("out value mismatch (-want +got):\n%s", diff)
	}
	if !sw.Overridden {
		t.Error("out should be overridden")
	}
	if p, ok := reg.PositionalAt(0); !ok || p.Value != "file.c" || p.Position != 2 {
		t.Errorf("PositionalAt(0) = %+v, %v; want file.c at 2", p, ok)
	}

	// The value must be a copy of ShortValue, not an alias
	sw.Value[0] = "changed"
	if again := mustArg(t, reg, "out"); again.ShortValue[0] != "a.out" {
		t.Errorf("ShortValue aliased by Value: %v", again.ShortValue)
	}
}

func TestParseArgumentReplacesValues(t *testing.T) {
	reg := newExampleRegistry()

	if err := reg.Parse([]string{"cmd", "--argtype", "one", "two"}); err != nil {
		t.Fatalf("first Parse failed: %v", err)
	}
	if err := reg.Parse([]string{"cmd", "--argtype", "onlyOne"}); err != nil {
		t.Fatalf("second Parse failed: %v", err)
	}

	if diff := cmp.Diff([]string{"onlyOne"}, mustArg(t, reg, "argtype").Value); diff != "" {
		t.Errorf("second parse appended instead of replacing (-want +got):\n%s", diff)
	}
}

func TestParseIdempotentForBooleanAndOption(t *testing.T) {
	argv := []string{"cmd", "--boolswitch1", "no", "-bs3", "--custom1", "ct1", "-cs2"}
	reg := newExampleRegistry()

	if err := reg.Parse(argv); err != nil {
		t.Fatalf("first Parse failed: %v", err)
	}
	first := snapshot(reg)

	if err := reg.Parse(argv); err != nil {
		t.Fatalf("second Parse failed: %v", err)
	}
	if diff := cmp.Diff(first, snapshot(reg)); diff != "" {
		t.Errorf("second parse changed state (-first +second):\n%s", diff)
	}
}

type registrySnapshot struct {
	Booleans []BooleanSwitch
	Options  []OptionSwitch
}

func snapshot(reg *Registry) registrySnapshot {
	return registrySnapshot{
		Booleans: slices.Collect(reg.Booleans()),
		Options:  slices.Collect(reg.Options()),
	}
}

func TestParseArgumentWithoutValues(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"at end of argv", []string{"cmd", "--argtype"}},
		{"followed by short switch", []string{"cmd", "--argtype", "-bs"}},
		{"followed by long switch", []string{"cmd", "--argtype", "--custom1", "cs1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := newExampleRegistry()
			if err := reg.Parse(tt.argv); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			sw := mustArg(t, reg, "argtype")
			if len(sw.Value) != 0 {
				t.Errorf("argtype value = %v, want empty", sw.Value)
			}
			if !sw.Overridden {
				t.Error("argtype should be overridden even without values")
			}
		})
	}
}

func TestParseArgumentStopsBeforeNextSwitch(t *testing.T) {
	reg := newExampleRegistry()

	err := reg.Parse([]string{"cmd", "--argtype", "a", "b", "-bs", "c"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b"}, mustArg(t, reg, "argtype").Value); diff != "" {
		t.Errorf("argtype value mismatch (-want +got):\n%s", diff)
	}
	if !mustBool(t, reg, "boolSwitch1").Value {
		t.Error("-bs after argument values was not applied")
	}
	want := []Positional{{Value: "c", Position: 5}}
	if diff := cmp.Diff(want, slices.Collect(reg.Positionals())); diff != "" {
		t.Errorf("positionals mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePositionalOrder(t *testing.T) {
	reg := newExampleRegistry()

	if err := reg.Parse([]string{"cmd", "a", "-bs", "b"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []Positional{{Value: "a", Position: 1}, {Value: "b", Position: 3}}
	if diff := cmp.Diff(want, slices.Collect(reg.Positionals())); diff != "" {
		t.Errorf("positionals mismatch (-want +got):\n%s", diff)
	}
	if n := reg.PositionalCount(); n != 2 {
		t.Errorf("PositionalCount() = %d, want 2", n)
	}
	if _, ok := reg.PositionalAt(2); ok {
		t.Error("PositionalAt(2) should be out of range")
	}
	if _, ok := reg.PositionalAt(-1); ok {
		t.Error("PositionalAt(-1) should be out of range")
	}
}

func TestParsePositionalsResetEachCall(t *testing.T) {
	reg := newExampleRegistry()

	if err := reg.Parse([]string{"cmd", "a", "b"}); err != nil {
		t.Fatalf("first Parse failed: %v", err)
	}
	if err := reg.Parse([]string{"cmd2", "c"}); err != nil {
		t.Fatalf("second Parse failed: %v", err)
	}

	want := []Positional{{Value: "c", Position: 1}}
	if diff := cmp.Diff(want, slices.Collect(reg.Positionals())); diff != "" {
		t.Errorf("positionals mismatch (-want +got):\n%s", diff)
	}
	if reg.Arg0() != "cmd2" {
		t.Errorf("Arg0() = %q, want cmd2", reg.Arg0())
	}
}

func TestParseEmptyTokenIsPositional(t *testing.T) {
	reg := newExampleRegistry()

	if err := reg.Parse([]string{"cmd", ""}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p, ok := reg.PositionalAt(0); !ok || p.Value != "" || p.Position != 1 {
		t.Errorf("PositionalAt(0) = %+v, %v; want empty token at 1", p, ok)
	}
}

func TestParseEmptyArgv(t *testing.T) {
	reg := newExampleRegistry()

	if err := reg.Parse(nil); err != nil {
		t.Fatalf("Parse(nil) failed: %v", err)
	}
	if reg.Arg0() != "" {
		t.Errorf("Arg0() = %q, want empty", reg.Arg0())
	}
	if err := reg.Parse([]string{"cmd"}); err != nil {
		t.Fatalf("Parse(cmd) failed: %v", err)
	}
	if reg.PositionalCount() != 0 {
		t.Errorf("argv[0] must not be collected as positional")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		want     ErrorType
		token    string
		sw       string
		position int
	}{
		{"bare dash", []string{"cmd", "-"}, ErrorTypeEmptyShortSwitch, "-", "", 1},
		{"unknown short", []string{"cmd", "-zzz"}, ErrorTypeUnknownSwitch, "-zzz", "zzz", 1},
		{"unknown short folded", []string{"cmd", "x", "-ZZZ"}, ErrorTypeUnknownSwitch, "-ZZZ", "zzz", 2},
		{"missing boolean value", []string{"cmd", "--boolSwitch1"}, ErrorTypeMissingBooleanValue, "--boolSwitch1", "boolswitch1", 1},
		{"invalid boolean value", []string{"cmd", "--boolSwitch1", "maybe"}, ErrorTypeInvalidBooleanValue, "maybe", "boolswitch1", 2},
		{"missing option value", []string{"cmd", "--custom1"}, ErrorTypeMissingOptionValue, "--custom1", "custom1", 1},
		{"invalid option value", []string{"cmd", "--custom1", "cf2"}, ErrorTypeInvalidOptionValue, "cf2", "custom1", 2},
		{"bare dash inside argument values", []string{"cmd", "--argtype", "a", "-"}, ErrorTypeEmptyShortSwitch, "-", "", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newExampleRegistry().Parse(tt.argv)
			parseErr := expectParseError(t, err, tt.want)
			if parseErr.Token != tt.token {
				t.Errorf("Token = %q, want %q", parseErr.Token, tt.token)
			}
			if parseErr.Switch != tt.sw {
				t.Errorf("Switch = %q, want %q", parseErr.Switch, tt.sw)
			}
			if parseErr.Position != tt.position {
				t.Errorf("Position = %d, want %d", parseErr.Position, tt.position)
			}
			if !IsErrorType(err, tt.want) {
				t.Errorf("IsErrorType(%v, %s) = false", err, tt.want)
			}
		})
	}
}

func TestParseKeepsChangesBeforeError(t *testing.T) {
	reg := newExampleRegistry()

	err := reg.Parse([]string{"cmd", "-bs", "first", "-nope", "-bs3"})
	expectParseError(t, err, ErrorTypeUnknownSwitch)

	if !mustBool(t, reg, "boolSwitch1").Value {
		t.Error("change before the failing token was rolled back")
	}
	if mustBool(t, reg, "boolean3").Value {
		t.Error("token after the failing token was applied")
	}
	if reg.PositionalCount() != 1 {
		t.Errorf("PositionalCount() = %d, want 1", reg.PositionalCount())
	}
}

func TestParseUnknownLong(t *testing.T) {
	t.Run("dropped by default", func(t *testing.T) {
		reg := newExampleRegistry()
		if err := reg.Parse([]string{"cmd", "--nope", "x"}); err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		want := []Positional{{Value: "x", Position: 2}}
		if diff := cmp.Diff(want, slices.Collect(reg.Positionals())); diff != "" {
			t.Errorf("positionals mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("double dash alone", func(t *testing.T) {
		reg := newExampleRegistry()
		if err := reg.Parse([]string{"cmd", "--", "-bs"}); err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if !mustBool(t, reg, "boolSwitch1").Value {
			t.Error("-bs after -- should still be scanned")
		}
	})

	t.Run("strict", func(t *testing.T) {
		reg := newExampleRegistry().StrictLong(true)
		err := reg.Parse([]string{"cmd", "--argtyp", "x"})
		parseErr := expectParseError(t, err, ErrorTypeUnknownSwitch)
		if parseErr.Switch != "argtyp" {
			t.Errorf("Switch = %q, want argtyp", parseErr.Switch)
		}
		if parseErr.Suggestion != "--argtype" {
			t.Errorf("Suggestion = %q, want --argtype", parseErr.Suggestion)
		}
	})
}

func TestParseSuggestions(t *testing.T) {
	reg := newExampleRegistry()

	err := reg.Parse([]string{"cmd", "-bx"})
	parseErr := expectParseError(t, err, ErrorTypeUnknownSwitch)
	if parseErr.Suggestion != "-bs" {
		t.Errorf("Suggestion = %q, want -bs", parseErr.Suggestion)
	}
	if want := "unknown switch: -bx\n  Did you mean '-bs'?"; parseErr.Detail() != want {
		t.Errorf("Detail() = %q, want %q", parseErr.Detail(), want)
	}

	err = newExampleRegistry().Parse([]string{"cmd", "--custom1", "cf4"})
	parseErr = expectParseError(t, err, ErrorTypeInvalidOptionValue)
	if parseErr.Suggestion != "--custom1 cf1" {
		t.Errorf("Suggestion = %q, want --custom1 cf1", parseErr.Suggestion)
	}

	err = newExampleRegistry().Parse([]string{"cmd", "-qqqqq"})
	parseErr = expectParseError(t, err, ErrorTypeUnknownSwitch)
	if parseErr.Suggestion != "" || parseErr.Detail() != parseErr.Message {
		t.Errorf("unexpected suggestion %q", parseErr.Suggestion)
	}
}

func TestParseCaseInsensitiveForms(t *testing.T) {
	reg := New().
		BoolSwitch("anotherBoolean", "AB", false).
		OptSwitch("Mode", []string{"HS", "bs"}, 1)

	err := reg.Parse([]string{"cmd", "--ANOTHERBOOLEAN", "Yes", "--mode", "hs"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !mustBool(t, reg, "anotherboolean").Value {
		t.Error("--ANOTHERBOOLEAN did not match a form registered in mixed case")
	}
	if got := mustOpt(t, reg, "mode").Value(); got != "hs" {
		t.Errorf("mode = %q, want hs", got)
	}

	if err := reg.Parse([]string{"cmd", "-ab", "-BS"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := mustOpt(t, reg, "mode").Value(); got != "bs" {
		t.Errorf("mode = %q, want bs", got)
	}
}

func TestParseSwitchWithoutShortForm(t *testing.T) {
	reg := New().
		BoolSwitch("quiet", "", false).
		ArgSwitch("include", "", nil, nil)

	err := reg.Parse([]string{"cmd", "-"})
	expectParseError(t, err, ErrorTypeEmptyShortSwitch)

	if err := reg.Parse([]string{"cmd", "--quiet", "y", "--include", "a"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !mustBool(t, reg, "quiet").Value {
		t.Error("quiet not set through long form")
	}
}

func TestParseDoesNotFoldValues(t *testing.T) {
	reg := newExampleRegistry()

	if err := reg.Parse([]string{"cmd", "--argtype", "MixedCase", "Path/To", "Positional"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if diff := cmp.Diff([]string{"MixedCase", "Path/To", "Positional"}, mustArg(t, reg, "argtype").Value); diff != "" {
		t.Errorf("argument values were altered (-want +got):\n%s", diff)
	}
}

func TestParseRegistrationErrorStopsScan(t *testing.T) {
	reg := newExampleRegistry().BoolSwitch("other", "cf1", false)

	err := reg.Parse([]string{"cmd", "-bs"})
	expectParseError(t, err, ErrorTypeDuplicateSwitch)

	if mustBool(t, reg, "boolSwitch1").Value {
		t.Error("Parse scanned argv despite a registration error")
	}
}
