package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/detox-ci/artifacts/commands"
)

func main() {
	app := cli.NewApp()
	app.Name = "detox-artifacts"
	app.Usage = "Uploads end-to-end test artifacts to object storage"
	app.Version = "0.1"
	app.DefaultCommand = "upload"
	app.Flags = commands.Flags()
	app.Commands = commands.Commands()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
