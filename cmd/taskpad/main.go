// Package main is the entry point for the taskpad CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/runoshun/taskpad/internal/app"
	"github.com/runoshun/taskpad/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	return cli.Run(app.New, version, args, stdout, stderr)
}
