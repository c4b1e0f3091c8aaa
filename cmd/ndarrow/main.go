package main

import (
	"os"

	flags "github.com/jessevdk/go-flags"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	parser := flags.NewParser(&app.globalOptions, flags.Default)
	if err := app.register(parser); err != nil {
		app.logger.Error("failed to register commands", "error", err)
		os.Exit(1)
	}

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		app.logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
