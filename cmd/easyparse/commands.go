package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dzonerzy/go-easyparse/easyparse"
	"github.com/dzonerzy/go-easyparse/report"
)

type app struct {
	stdout  io.Writer
	stderr  io.Writer
	noColor bool
	log     *report.Logger
}

type parseOptions struct {
	schema    string
	format    string
	envPrefix string
	strict    bool
	trace     bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

// logger is built on first use so that --no-color has been parsed
func (a *app) logger() *report.Logger {
	if a.log == nil {
		a.log = report.NewLogger(a.stdout, a.stderr)
		if a.noColor {
			a.log.WithColor(false)
		}
	}
	return a.log
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "easyparse",
		Short:         "Scan command lines against a switch schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored status output")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withCode(exitMisuse, err)
	})

	root.AddCommand(a.parseCommand(), a.checkCommand())
	return root
}

func (a *app) parseCommand() *cobra.Command {
	opts := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse --schema FILE [flags] -- PROGRAM [ARGS...]",
		Short: "Parse a command line and print switch values and positionals",
		Long: "Parse loads the switch schema, applies environment defaults when\n" +
			"--env-prefix is set, scans PROGRAM ARGS and renders the result.\n" +
			"Put -- before PROGRAM so that its switches are not read as ours.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runParse(opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.schema, "schema", "s", "", "Schema file (.yaml, .yml, .json or .toml)")
	flags.StringVarP(&opts.format, "format", "f", string(report.FormatText), "Output format: text, json or yaml")
	flags.StringVar(&opts.envPrefix, "env-prefix", "", "Read switch defaults from PREFIX_<LONG> variables")
	flags.BoolVar(&opts.strict, "strict", false, "Fail on unknown long switches instead of dropping them")
	flags.BoolVar(&opts.trace, "trace", false, "Trace token matching on stderr")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func (a *app) runParse(opts *parseOptions, argv []string) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return withCode(exitMisuse, err)
	}

	reg, err := a.loadRegistry(opts.schema)
	if err != nil {
		return err
	}
	if opts.strict {
		reg.StrictLong(true)
	}
	if opts.trace {
		logger := a.traceLogger()
		defer func() { _ = logger.Sync() }()
		reg.WithLogger(logger)
	}

	if opts.envPrefix != "" {
		if err := reg.ApplyEnv(opts.envPrefix, nil); err != nil {
			return withCode(exitMisuse, err)
		}
	}

	if err := reg.Parse(argv); err != nil {
		return withCode(exitMisuse, err)
	}

	return report.Render(a.stdout, reg, format)
}

func (a *app) checkCommand() *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "check --schema FILE",
		Short: "Validate a schema file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			reg, err := a.loadRegistry(schemaPath)
			if err != nil {
				return err
			}
			a.logger().Success("%s: %s", schemaPath, summary(reg))
			return nil
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "Schema file (.yaml, .yml, .json or .toml)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

// loadRegistry decodes the schema and rejects conflicting registrations
func (a *app) loadRegistry(path string) (*easyparse.Registry, error) {
	schema, err := easyparse.LoadSchema(path)
	if err != nil {
		return nil, err
	}
	reg := schema.Registry()
	if err := reg.Err(); err != nil {
		return nil, withCode(exitValidation, err)
	}
	return reg, nil
}

// traceLogger writes zap's development console format to stderr
func (a *app) traceLogger() *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(a.stderr), zapcore.DebugLevel)
	return zap.New(core, zap.Development())
}

func summary(reg *easyparse.Registry) string {
	count := func(n int, noun string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s", noun)
		}
		return fmt.Sprintf("%d %ss", n, noun)
	}
	var booleans, arguments, options int
	for range reg.Booleans() {
		booleans++
	}
	for range reg.Arguments() {
		arguments++
	}
	for range reg.Options() {
		options++
	}
	return count(booleans, "boolean") + ", " + count(arguments, "argument") + ", " + count(options, "option")
}
