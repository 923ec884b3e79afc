package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/tally/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "config file path")
	backend := flag.String("backend", "", "store backend: json, sqlite or memory")
	theme := flag.String("theme", "", "color theme: classic, neon or mono")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	flag.Usage = func() { cli.PrintHelp(flag.CommandLine.Output()) }
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	code := cli.Run(flag.Args(), cli.Options{
		ConfigPath: *configPath,
		Backend:    *backend,
		Theme:      *theme,
		LogLevel:   *logLevel,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
