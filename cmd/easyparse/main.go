// Command easyparse scans a command line against a switch schema and prints
// how every token was classified.
//
//	easyparse parse --schema cli.yaml --format json -- prog -v --out a b file.c
//	easyparse check --schema cli.toml
package main

import (
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	root := app.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil {
		app.logger().Failure(cause(err))
	}
	return exitCode(err)
}
