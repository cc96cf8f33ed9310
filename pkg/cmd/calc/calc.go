package calc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/handicap-calculator-go/log"
	"github.com/mpapenbr/handicap-calculator-go/pkg/cmd/common"
	"github.com/mpapenbr/handicap-calculator-go/pkg/config"
	"github.com/mpapenbr/handicap-calculator-go/pkg/course"
	"github.com/mpapenbr/handicap-calculator-go/pkg/handicap"
	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage"
)

type options struct {
	club      string
	format    string
	holes     string
	players   []string
	golfers   []string
	bundle    string
	saveAs    string
	output    string
	clubSet   bool
	formatSet bool
	holesSet  bool
	limits    handicap.Limits
	catalog   *course.Catalog
	openStore func(ctx context.Context) (storage.Store, error)
	now       func() time.Time
}

func NewCalcCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "calculates playing handicaps for a match",
		Example: `  hcc calc --format fourball -p hi=10 -p hi=15 -p hi=20 -p hi=5
  hcc calc --format matchplay -p "name=Ann,sex=ladies,hi=12.4,tee=silver" --golfer Bob
  hcc calc --bundle sunday --format pyms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if opts.catalog, err = common.LoadCatalog(); err != nil {
				return err
			}
			if opts.limits, err = common.Limits(); err != nil {
				return err
			}
			opts.club = config.Club
			opts.clubSet = cmd.Flags().Changed("club")
			opts.formatSet = cmd.Flags().Changed("format")
			opts.holesSet = cmd.Flags().Changed("holes")
			opts.openStore = common.OpenStore
			opts.now = time.Now
			return opts.run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "fourball",
		"match format (see 'hcc formats')")
	cmd.Flags().StringVar(&opts.holes, "holes", "18", "holes to play (18, 9f, 9b)")
	cmd.Flags().StringArrayVarP(&opts.players, "player", "p", nil,
		"player as \"name=..,sex=men|ladies,hi=..,tee=..\" (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.golfers, "golfer", "g", nil,
		"saved golfer to add as player (repeatable, added before --player)")
	cmd.Flags().StringVarP(&opts.bundle, "bundle", "b", "",
		"load club, format, holes and players from a saved bundle")
	cmd.Flags().StringVar(&opts.saveAs, "save-as", "",
		"save the input as bundle with this name")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format (text, json)")
	return cmd
}

//nolint:funlen,cyclop // sequential steps
func (o *options) run(ctx context.Context, out io.Writer) error {
	var store storage.Store
	if o.bundle != "" || len(o.golfers) > 0 || o.saveAs != "" {
		var err error
		if store, err = o.openStore(ctx); err != nil {
			return err
		}
		defer store.Close()
	}

	input := model.Bundle{Club: o.club, Format: o.format, Holes: model.HoleSelector(o.holes)}
	if o.bundle != "" {
		b, err := store.Bundles().Load(ctx, o.bundle)
		if err != nil {
			return fmt.Errorf("bundle %q: %w", o.bundle, err)
		}
		if !o.clubSet {
			input.Club = b.Club
		}
		if !o.formatSet {
			input.Format = b.Format
		}
		if !o.holesSet {
			input.Holes = b.Holes
		}
		input.Players = b.Players
	}

	players, err := o.collectPlayers(ctx, store)
	if err != nil {
		return err
	}
	if len(players) > 0 {
		input.Players = players
	}

	club, err := o.catalog.Club(input.Club)
	if err != nil {
		return err
	}
	f, err := handicap.ParseFormat(input.Format)
	if err != nil {
		return err
	}
	holes, err := model.ParseHoleSelector(string(input.Holes))
	if err != nil {
		return err
	}
	input.Players = common.ApplyDefaultTee(club, input.Players)

	e := handicap.New(o.catalog, handicap.WithLimits(o.limits))
	res, err := e.Calculate(&handicap.Request{
		Club: club.ID, Format: f, Holes: holes, Players: input.Players,
	})
	if err != nil {
		return err
	}

	if o.saveAs != "" {
		input.Name = o.saveAs
		input.Club = club.ID
		input.Format = f.Key()
		input.Holes = holes
		input.SavedAt = o.now()
		if err := store.Bundles().Save(ctx, &input); err != nil {
			return err
		}
		log.Info("bundle saved", log.String("name", o.saveAs))
	}

	switch o.output {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	default:
		common.WriteResult(out, club, f, res)
	}
	return nil
}

func (o *options) collectPlayers(ctx context.Context, store storage.Store) (
	[]model.PlayerEntry, error,
) {
	ret := make([]model.PlayerEntry, 0, len(o.golfers)+len(o.players))
	for _, name := range o.golfers {
		g, err := store.Golfers().Load(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("golfer %q: %w", name, err)
		}
		ret = append(ret, g.Entry())
	}
	parsed, err := parsePlayers(o.players)
	if err != nil {
		return nil, err
	}
	return append(ret, parsed...), nil
}

func parsePlayers(specs []string) ([]model.PlayerEntry, error) {
	ret := make([]model.PlayerEntry, 0, len(specs))
	for _, spec := range specs {
		p, err := common.ParsePlayer(spec)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", spec, err)
		}
		ret = append(ret, p)
	}
	return ret, nil
}
