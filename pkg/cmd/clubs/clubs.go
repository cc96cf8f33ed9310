package clubs

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/handicap-calculator-go/pkg/cmd/common"
	"github.com/mpapenbr/handicap-calculator-go/pkg/course"
	"github.com/mpapenbr/handicap-calculator-go/pkg/handicap"
	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
)

type showOptions struct {
	index *decimal.Decimal
	sex   model.Sex
}

func NewClubsCmd() *cobra.Command {
	var index, sex string
	cmd := &cobra.Command{
		Use:   "clubs [club]",
		Short: "lists the clubs or shows the tees and ratings of a club",
		Example: `  hcc clubs
  hcc clubs hindhead --index 12.4 --sex ladies`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := common.LoadCatalog()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				listClubs(cmd.OutOrStdout(), catalog)
				return nil
			}
			club, err := catalog.Club(args[0])
			if err != nil {
				return err
			}
			opts := showOptions{}
			if opts.sex, err = model.ParseSex(sex); err != nil {
				return err
			}
			if index != "" {
				limits, err := common.Limits()
				if err != nil {
					return err
				}
				hi, err := handicap.ParseIndex(index, limits)
				if err != nil {
					return err
				}
				opts.index = &hi
			}
			showClub(cmd.OutOrStdout(), club, opts)
			return nil
		},
	}
	cmd.Flags().StringVar(&index, "index", "", "show course handicaps for this handicap index")
	cmd.Flags().StringVar(&sex, "sex", "men", "sex used for --index (men, ladies)")
	return cmd
}

func listClubs(w io.Writer, catalog *course.Catalog) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "ID\tNAME\tDEFAULT TEE\tTEES")
	def := catalog.DefaultClub()
	for _, c := range catalog.Clubs() {
		id := c.ID
		if c == def {
			id += " *"
		}
		tees := lo.Map(c.Tees, func(t *model.Tee, _ int) string { return t.ID })
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", id, c.Name, c.DefaultTee, strings.Join(tees, ","))
	}
}

func showClub(w io.Writer, club *model.Club, opts showOptions) {
	fmt.Fprintf(w, "%s (%s)\n", club.Name, club.ID)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	header := "TEE\tNAME\tSEX\tHOLES\tSLOPE\tCR\tPAR"
	if opts.index != nil {
		header += "\tCH\tUNROUNDED"
	}
	fmt.Fprintln(tw, header)
	for _, tee := range club.Tees {
		for _, sex := range model.Sexes {
			if opts.index != nil && sex != opts.sex {
				continue
			}
			if _, ok := tee.Rating(sex, model.Holes18); !ok {
				continue
			}
			for _, holes := range model.HoleSelectors {
				fmt.Fprintln(tw, row(tee, sex, holes, opts))
			}
		}
	}
}

func row(tee *model.Tee, sex model.Sex, holes model.HoleSelector, opts showOptions) string {
	cols := []string{tee.ID, tee.Name, string(sex), string(holes)}
	if r, ok := tee.Rating(sex, holes); ok {
		cols = append(cols,
			fmt.Sprint(r.Slope), fmt.Sprintf("%.1f", r.CourseRating), fmt.Sprint(r.Par))
	} else {
		cols = append(cols, "-", "-", "-")
	}
	if opts.index != nil {
		cols = append(cols, courseHandicap(tee, sex, holes, opts))
	}
	return strings.Join(cols, "\t")
}

//nolint:whitespace // editor/linter issue
func courseHandicap(
	tee *model.Tee,
	sex model.Sex,
	holes model.HoleSelector,
	opts showOptions,
) string {
	v, err := handicap.CourseHandicap(tee, sex, *opts.index, holes)
	if err != nil {
		return "-\t-"
	}
	mark := ""
	if v.Derived {
		mark = "*"
	}
	return fmt.Sprintf("%d%s\t%s", v.Rounded(), mark, v.Raw.StringFixed(1))
}
