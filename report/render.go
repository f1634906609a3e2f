// Package report renders the outcome of an easyparse scan and prints
// status lines for the easyparse command.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/kballard/go-shellquote"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/samber/lo"

	"github.com/dzonerzy/go-easyparse/easyparse"
)

// Format is an output format for Render
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (use text, json or yaml)", name)
	}
}

// Result is a serializable snapshot of a registry after Parse
type Result struct {
	Command     string             `json:"command" yaml:"command"`
	Booleans    []BooleanResult    `json:"booleans" yaml:"booleans"`
	Arguments   []ArgumentResult   `json:"arguments" yaml:"arguments"`
	Options     []OptionResult     `json:"options" yaml:"options"`
	Positionals []PositionalResult `json:"positionals" yaml:"positionals"`
}

type BooleanResult struct {
	Long       string `json:"long,omitempty" yaml:"long,omitempty"`
	Short      string `json:"short,omitempty" yaml:"short,omitempty"`
	Value      bool   `json:"value" yaml:"value"`
	Overridden bool   `json:"overridden" yaml:"overridden"`
}

type ArgumentResult struct {
	Long       string   `json:"long,omitempty" yaml:"long,omitempty"`
	Short      string   `json:"short,omitempty" yaml:"short,omitempty"`
	Value      []string `json:"value" yaml:"value"`
	Overridden bool     `json:"overridden" yaml:"overridden"`
}

type OptionResult struct {
	Long       string   `json:"long,omitempty" yaml:"long,omitempty"`
	Options    []string `json:"options" yaml:"options"`
	Value      string   `json:"value" yaml:"value"`
	Overridden bool     `json:"overridden" yaml:"overridden"`
}

type PositionalResult struct {
	Value    string `json:"value" yaml:"value"`
	Position int    `json:"position" yaml:"position"`
}

// Collect snapshots the registry. Slices are never nil so that encoders
// print empty lists rather than null.
func Collect(reg *easyparse.Registry) Result {
	return Result{
		Command: reg.Arg0(),
		Booleans: lo.Map(slices.Collect(reg.Booleans()), func(sw easyparse.BooleanSwitch, _ int) BooleanResult {
			return BooleanResult{Long: sw.Long, Short: sw.Short, Value: sw.Value, Overridden: sw.Overridden}
		}),
		Arguments: lo.Map(slices.Collect(reg.Arguments()), func(sw easyparse.ArgumentSwitch, _ int) ArgumentResult {
			return ArgumentResult{
				Long:       sw.Long,
				Short:      sw.Short,
				Value:      append([]string{}, sw.Value...),
				Overridden: sw.Overridden,
			}
		}),
		Options: lo.Map(slices.Collect(reg.Options()), func(sw easyparse.OptionSwitch, _ int) OptionResult {
			return OptionResult{
				Long:       sw.Long,
				Options:    append([]string{}, sw.Options...),
				Value:      sw.Value(),
				Overridden: sw.Overridden,
			}
		}),
		Positionals: lo.Map(slices.Collect(reg.Positionals()), func(p easyparse.Positional, _ int) PositionalResult {
			return PositionalResult{Value: p.Value, Position: p.Position}
		}),
	}
}

// Render writes the registry state in the given format
func Render(w io.Writer, reg *easyparse.Registry, format Format) error {
	result := Collect(reg)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatYAML:
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatText, "":
		return renderText(w, result)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(w io.Writer, result Result) error {
	if _, err := fmt.Fprintf(w, "command: %s\n", result.Command); err != nil {
		return err
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(
			renderer.NewBlueprint(tw.Rendition{Symbols: tw.NewSymbols(tw.StyleASCII)})),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithTrimSpace(tw.Off),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	).Configure(func(config *tablewriter.Config) {
		config.Row.Formatting.AutoWrap = tw.WrapNone
	})
	table.Header([]string{"KIND", "SWITCH", "VALUE", "SET"})

	rows := make([][]string, 0, len(result.Booleans)+len(result.Arguments)+len(result.Options)+len(result.Positionals))
	for _, b := range result.Booleans {
		rows = append(rows, []string{"boolean", forms(b.Long, b.Short), strconv.FormatBool(b.Value), mark(b.Overridden)})
	}
	for _, a := range result.Arguments {
		rows = append(rows, []string{"argument", forms(a.Long, a.Short), shellquote.Join(a.Value...), mark(a.Overridden)})
	}
	for _, o := range result.Options {
		rows = append(rows, []string{"option", forms(o.Long, ""), o.Value + " (" + strings.Join(o.Options, "|") + ")", mark(o.Overridden)})
	}
	for _, p := range result.Positionals {
		rows = append(rows, []string{"positional", "#" + strconv.Itoa(p.Position), p.Value, ""})
	}

	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

func forms(long, short string) string {
	var out []string
	if long != "" {
		out = append(out, "--"+long)
	}
	if short != "" {
		out = append(out, "-"+short)
	}
	return strings.Join(out, ", ")
}

func mark(overridden bool) string {
	if overridden {
		return "yes"
	}
	return ""
}
