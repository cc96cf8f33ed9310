package bundle

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/handicap-calculator-go/log"
	"github.com/mpapenbr/handicap-calculator-go/pkg/cmd/common"
	"github.com/mpapenbr/handicap-calculator-go/pkg/handicap"
	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage"
)

const timeLayout = "2006-01-02 15:04"

func NewBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "manages saved calculation inputs",
		Long: `Bundles are created with 'hcc calc --save-as <name>' or the shell 'save' command
and reused with 'hcc calc --bundle <name>'.`,
	}
	cmd.AddCommand(newListCmd(), newShowCmd(), newDeleteCmd())
	return cmd
}

func withStore(cmd *cobra.Command, fn func(ctx context.Context, s storage.Store) error) error {
	ctx := cmd.Context()
	s, err := common.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s)
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "lists the saved bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, s storage.Store) error {
				return listBundles(ctx, s.Bundles(), cmd.OutOrStdout())
			})
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show name",
		Short: "shows the content of a saved bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, s storage.Store) error {
				b, err := s.Bundles().Load(ctx, args[0])
				if err != nil {
					return fmt.Errorf("bundle %q: %w", args[0], err)
				}
				showBundle(cmd.OutOrStdout(), b)
				return nil
			})
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete name...",
		Short: "deletes saved bundles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, s storage.Store) error {
				for _, name := range args {
					n, err := s.Bundles().Delete(ctx, name)
					if err != nil {
						return err
					}
					if n == 0 {
						return fmt.Errorf("bundle %q: %w", name, storage.ErrNotFound)
					}
					log.Info("bundle deleted", log.String("name", name))
				}
				return nil
			})
		},
	}
}

func formatLabel(key string) string {
	if f, err := handicap.ParseFormat(key); err == nil {
		return f.Label()
	}
	return key
}

func listBundles(ctx context.Context, repo storage.Repository[model.Bundle], w io.Writer) error {
	items, err := repo.List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "NAME\tCLUB\tFORMAT\tHOLES\tPLAYERS\tSAVED")
	for _, b := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			b.Name, b.Club, b.Format, b.Holes, len(b.Players),
			b.SavedAt.Local().Format(timeLayout))
	}
	return nil
}

func showBundle(w io.Writer, b *model.Bundle) {
	fmt.Fprintf(w, "Name:   %s\n", b.Name)
	fmt.Fprintf(w, "Club:   %s\n", b.Club)
	fmt.Fprintf(w, "Format: %s\n", formatLabel(b.Format))
	fmt.Fprintf(w, "Holes:  %s\n", b.Holes.Label())
	fmt.Fprintf(w, "Saved:  %s\n", b.SavedAt.Local().Format(timeLayout))
	for i, p := range b.Players {
		fmt.Fprintf(w, "  %d: %s\n", i+1, common.FormatPlayer(p))
	}
}
