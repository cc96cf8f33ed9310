package formats

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/handicap-calculator-go/pkg/handicap"
)

func NewFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "lists the supported match formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			listFormats(cmd.OutOrStdout())
		},
	}
}

func listFormats(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "KEY\tPLAYERS\tDESCRIPTION")
	for _, f := range handicap.Formats() {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", f.Key(), f.Players(), f.Label())
	}
}
