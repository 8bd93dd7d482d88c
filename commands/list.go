package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/detox-ci/artifacts/artifacts"
)

// List prints every artifact that Upload would send, along with its remote
// key and content type.
func List(ctx *cli.Context) error {
	files, err := artifacts.Discover(ctx.String("artifacts-dir"), runFromContext(ctx))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tSIZE\tCONTENT TYPE")
	for _, f := range files {
		fmt.Fprintf(w, "%s\t%d\t%s\n", f.Key, f.Size, f.ContentType)
	}
	return w.Flush()
}
