package golfer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/handicap-calculator-go/log"
	"github.com/mpapenbr/handicap-calculator-go/pkg/cmd/common"
	"github.com/mpapenbr/handicap-calculator-go/pkg/course"
	"github.com/mpapenbr/handicap-calculator-go/pkg/handicap"
	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage"
)

const timeLayout = "2006-01-02 15:04"

func NewGolferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "golfer",
		Short: "manages saved golfers",
		Long: `Saved golfers can be added as players to a calculation
with 'hcc calc --golfer <name>'.`,
	}
	cmd.AddCommand(newSaveCmd(), newListCmd(), newShowCmd(), newDeleteCmd())
	return cmd
}

// withStore runs fn with the configured store and closes it afterwards.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, s storage.Store) error) error {
	ctx := cmd.Context()
	s, err := common.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s)
}

func newSaveCmd() *cobra.Command {
	var sex, hi, tee string
	cmd := &cobra.Command{
		Use:     "save name",
		Short:   "saves a golfer (replaces an existing one with the same name)",
		Example: `  hcc golfer save "Ann Smith" --sex ladies --hi 12.4 --tee silver`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := common.LoadCatalog()
			if err != nil {
				return err
			}
			limits, err := common.Limits()
			if err != nil {
				return err
			}
			g, err := newGolfer(catalog, limits, args[0], sex, hi, tee)
			if err != nil {
				return err
			}
			g.SavedAt = time.Now()
			return withStore(cmd, func(ctx context.Context, s storage.Store) error {
				if err := s.Golfers().Save(ctx, g); err != nil {
					return err
				}
				log.Info("golfer saved", log.String("name", g.Name))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&sex, "sex", "men", "sex (men, ladies)")
	cmd.Flags().StringVar(&hi, "hi", "", "handicap index")
	cmd.Flags().StringVar(&tee, "tee", "", "preferred tee (default tee of the club if empty)")
	_ = cmd.MarkFlagRequired("hi")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "lists the saved golfers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, s storage.Store) error {
				return listGolfers(ctx, s.Golfers(), cmd.OutOrStdout())
			})
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show name",
		Short: "shows a saved golfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, s storage.Store) error {
				g, err := s.Golfers().Load(ctx, args[0])
				if err != nil {
					return fmt.Errorf("golfer %q: %w", args[0], err)
				}
				showGolfer(cmd.OutOrStdout(), g)
				return nil
			})
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete name...",
		Short: "deletes saved golfers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, s storage.Store) error {
				return deleteGolfers(ctx, s.Golfers(), args)
			})
		},
	}
}

// newGolfer validates the input. The tee must exist at one of the clubs.
//
//nolint:whitespace // editor/linter issue
func newGolfer(
	catalog *course.Catalog,
	limits handicap.Limits,
	name, sex, hi, tee string,
) (*model.Golfer, error) {
	name, err := storage.CheckName(strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	g := &model.Golfer{Name: name, Tee: tee}
	if g.Sex, err = model.ParseSex(sex); err != nil {
		return nil, err
	}
	idx, err := handicap.ParseIndex(hi, limits)
	if err != nil {
		return nil, err
	}
	g.HandicapIndex = idx.String()
	if tee != "" && !lo.ContainsBy(catalog.Clubs(), func(c *model.Club) bool {
		_, ok := c.Tee(tee)
		return ok
	}) {
		return nil, &handicap.Error{Kind: handicap.ErrUnknownTee, Tee: tee}
	}
	return g, nil
}

func listGolfers(ctx context.Context, repo storage.Repository[model.Golfer], w io.Writer) error {
	items, err := repo.List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "NAME\tSEX\tHI\tTEE\tSAVED")
	for _, g := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			g.Name, g.Sex, g.HandicapIndex, lo.Ternary(g.Tee == "", "-", g.Tee),
			g.SavedAt.Local().Format(timeLayout))
	}
	return nil
}

func showGolfer(w io.Writer, g *model.Golfer) {
	fmt.Fprintf(w, "Name:  %s\n", g.Name)
	fmt.Fprintf(w, "Sex:   %s\n", g.Sex.Label())
	fmt.Fprintf(w, "HI:    %s\n", g.HandicapIndex)
	fmt.Fprintf(w, "Tee:   %s\n", lo.Ternary(g.Tee == "", "(club default)", g.Tee))
	fmt.Fprintf(w, "Saved: %s\n", g.SavedAt.Local().Format(timeLayout))
}

func deleteGolfers(ctx context.Context, repo storage.Repository[model.Golfer], names []string) error {
	for _, name := range names {
		n, err := repo.Delete(ctx, name)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("golfer %q: %w", name, storage.ErrNotFound)
		}
		log.Info("golfer deleted", log.String("name", name))
	}
	return nil
}
