package commands

import "github.com/urfave/cli/v2"

func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "upload",
			Usage:  "Uploads end-to-end test artifacts and prints the report link",
			Action: Upload,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "output", Usage: "Writes the upload report as JSON to this file"},
			},
		},
		{
			Name:   "list",
			Usage:  "Lists artifacts that would be uploaded",
			Action: List,
		},
	}
}
