package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/handicap-calculator-go/log"
	"github.com/mpapenbr/handicap-calculator-go/pkg/cmd/common"
	"github.com/mpapenbr/handicap-calculator-go/pkg/config"
	"github.com/mpapenbr/handicap-calculator-go/pkg/course"
	"github.com/mpapenbr/handicap-calculator-go/pkg/handicap"
	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage"
	"github.com/mpapenbr/handicap-calculator-go/pkg/utils/cache/loadercache"
)

var errQuit = errors.New("quit")

const helpText = `commands:
  show                      show the current input
  club [id]                 list clubs or select a club
  format [key]              list formats or select a format
  holes 18|9f|9b            select the holes to play
  player [n] spec           add a player or replace player n
                            spec: "name=Ann,sex=ladies,hi=12.4,tee=navy" or just the index
  golfer name               add a saved golfer as player
  remove n                  remove player n
  clear                     remove all players
  calc                      calculate the playing handicaps
  save name                 save the input as bundle
  load name                 load a saved bundle
  bundles                   list the saved bundles
  reload                    reload the course data
  help                      show this help
  quit                      leave the shell`

type session struct {
	out       io.Writer
	prompt    string
	catalogs  loadercache.Cache[string, course.Catalog]
	source    string
	limits    handicap.Limits
	openStore func(ctx context.Context) (storage.Store, error)
	now       func() time.Time
	log       *log.Logger

	store         storage.Store
	reloadPending atomic.Bool

	club    string
	format  handicap.Format
	holes   model.HoleSelector
	players []model.PlayerEntry
}

func NewShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "starts an interactive calculator",
		Long: `Starts an interactive calculator. Format, holes, club and players are kept
between commands, 'calc' shows the playing handicaps for the current input.
A course file given by --courses is reloaded when it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			limits, err := common.Limits()
			if err != nil {
				return err
			}
			s := &session{
				out:       cmd.OutOrStdout(),
				prompt:    "hcc> ",
				catalogs:  course.NewCatalogCache(0),
				source:    config.CoursesFile,
				limits:    limits,
				openStore: common.OpenStore,
				now:       time.Now,
				log:       log.Default().Named("shell"),
				club:      config.Club,
				format:    handicap.Fourball{},
				holes:     model.Holes18,
			}
			if _, err := s.catalog(ctx); err != nil {
				return err
			}
			if s.source != course.DefaultSource {
				if err := course.Watch(ctx, s.source, func() {
					s.reloadPending.Store(true)
				}); err != nil {
					s.log.Warn("course file is not watched", log.ErrorField(err))
				}
			}
			defer s.close()
			fmt.Fprintln(s.out, "type 'help' for the list of commands")
			return s.run(ctx, cmd.InOrStdin())
		},
	}
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, s.prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		err := s.exec(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *session) close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.log.Warn("closing store", log.ErrorField(err))
		}
	}
}

//nolint:cyclop // command dispatch
func (s *session) exec(ctx context.Context, line string) error {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	if s.reloadPending.Swap(false) {
		s.catalogs.Invalidate(ctx, s.source)
		fmt.Fprintln(s.out, "course data changed, reloading")
	}
	switch strings.ToLower(cmd) {
	case "":
		return nil
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
		return nil
	case "quit", "exit":
		return errQuit
	case "show":
		return s.show(ctx)
	case "club", "clubs":
		return s.selectClub(ctx, arg)
	case "format", "formats":
		return s.selectFormat(arg)
	case "holes":
		h, err := model.ParseHoleSelector(arg)
		if err != nil {
			return err
		}
		s.holes = h
		return nil
	case "player":
		return s.setPlayer(arg)
	case "golfer":
		return s.addGolfer(ctx, arg)
	case "remove":
		return s.removePlayer(arg)
	case "clear":
		s.players = nil
		return nil
	case "calc":
		return s.calc(ctx)
	case "save":
		return s.save(ctx, arg)
	case "load":
		return s.load(ctx, arg)
	case "bundles":
		return s.listBundles(ctx)
	case "reload":
		s.catalogs.Invalidate(ctx, s.source)
		_, err := s.catalog(ctx)
		return err
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func (s *session) catalog(ctx context.Context) (*course.Catalog, error) {
	return s.catalogs.Get(ctx, s.source)
}

func (s *session) currentClub(ctx context.Context) (*model.Club, error) {
	c, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.Club(s.club)
}

func (s *session) getStore(ctx context.Context) (storage.Store, error) {
	if s.store == nil {
		st, err := s.openStore(ctx)
		if err != nil {
			return nil, err
		}
		s.store = st
	}
	return s.store, nil
}

func (s *session) show(ctx context.Context) error {
	club, err := s.currentClub(ctx)
	if err != nil {
		return err
	}
	need := s.format.Players()
	fmt.Fprintf(s.out, "Club:   %s (%s)\n", club.Name, club.ID)
	fmt.Fprintf(s.out, "Format: %s, %d players\n", s.format.Label(), need)
	fmt.Fprintf(s.out, "Holes:  %s\n", s.holes.Label())
	for i := range max(need, len(s.players)) {
		switch {
		case i >= len(s.players):
			fmt.Fprintf(s.out, "  %d: -\n", i+1)
		case i >= need:
			fmt.Fprintf(s.out, "  %d: %s (inactive)\n", i+1, common.FormatPlayer(s.players[i]))
		default:
			fmt.Fprintf(s.out, "  %d: %s\n", i+1, common.FormatPlayer(s.players[i]))
		}
	}
	return nil
}

func (s *session) selectClub(ctx context.Context, id string) error {
	c, err := s.catalog(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		current, _ := c.Club(s.club)
		for _, club := range c.Clubs() {
			mark := lo.Ternary(club == current, "*", " ")
			fmt.Fprintf(s.out, "%s %s - %s\n", mark, club.ID, club.Name)
		}
		return nil
	}
	club, err := c.Club(id)
	if err != nil {
		return err
	}
	s.club = club.ID
	// tees of the previous club are replaced by the default tee on calc
	s.players = lo.Map(s.players, func(p model.PlayerEntry, _ int) model.PlayerEntry {
		if _, ok := club.Tee(p.Tee); !ok {
			p.Tee = ""
		}
		return p
	})
	return nil
}

func (s *session) selectFormat(key string) error {
	if key == "" {
		for _, f := range handicap.Formats() {
			mark := lo.Ternary(f == s.format, "*", " ")
			fmt.Fprintf(s.out, "%s %s - %s\n", mark, f.Key(), f.Label())
		}
		return nil
	}
	f, err := handicap.ParseFormat(key)
	if err != nil {
		return err
	}
	s.format = f
	return nil
}

// position parses a 1-based player position.
func position(arg string, upper int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > upper {
		return 0, fmt.Errorf("invalid player position %q", arg)
	}
	return n - 1, nil
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func (s *session) setPlayer(arg string) error {
	if arg == "" {
		return errors.New("player spec missing")
	}
	pos := len(s.players)
	spec := arg
	// a leading number followed by a spec selects the position
	if first, rest, ok := strings.Cut(arg, " "); ok && isNumber(first) {
		p, err := position(first, len(s.players)+1)
		if err != nil {
			return err
		}
		pos, spec = p, strings.TrimSpace(rest)
	}
	p, err := common.ParsePlayer(spec)
	if err != nil {
		return err
	}
	if pos == len(s.players) {
		s.players = append(s.players, p)
	} else {
		s.players[pos] = p
	}
	return nil
}

func (s *session) removePlayer(arg string) error {
	pos, err := position(arg, len(s.players))
	if err != nil {
		return err
	}
	s.players = append(s.players[:pos], s.players[pos+1:]...)
	return nil
}

func (s *session) addGolfer(ctx context.Context, name string) error {
	st, err := s.getStore(ctx)
	if err != nil {
		return err
	}
	g, err := st.Golfers().Load(ctx, name)
	if err != nil {
		return fmt.Errorf("golfer %q: %w", name, err)
	}
	s.players = append(s.players, g.Entry())
	return nil
}

func (s *session) calc(ctx context.Context) error {
	c, err := s.catalog(ctx)
	if err != nil {
		return err
	}
	club, err := c.Club(s.club)
	if err != nil {
		return err
	}
	e := handicap.New(c, handicap.WithLimits(s.limits))
	res, err := e.Calculate(&handicap.Request{
		Club:    club.ID,
		Format:  s.format,
		Holes:   s.holes,
		Players: common.ApplyDefaultTee(club, s.players),
	})
	if err != nil {
		return err
	}
	common.WriteResult(s.out, club, s.format, res)
	return nil
}

func (s *session) save(ctx context.Context, name string) error {
	name, err := storage.CheckName(name)
	if err != nil {
		return err
	}
	club, err := s.currentClub(ctx)
	if err != nil {
		return err
	}
	st, err := s.getStore(ctx)
	if err != nil {
		return err
	}
	players := make([]model.PlayerEntry, len(s.players))
	copy(players, s.players)
	return st.Bundles().Save(ctx, &model.Bundle{
		Name:    name,
		Club:    club.ID,
		Format:  s.format.Key(),
		Holes:   s.holes,
		Players: players,
		SavedAt: s.now(),
	})
}

func (s *session) load(ctx context.Context, name string) error {
	st, err := s.getStore(ctx)
	if err != nil {
		return err
	}
	b, err := st.Bundles().Load(ctx, name)
	if err != nil {
		return fmt.Errorf("bundle %q: %w", name, err)
	}
	f, err := handicap.ParseFormat(b.Format)
	if err != nil {
		return err
	}
	holes, err := model.ParseHoleSelector(string(b.Holes))
	if err != nil {
		return err
	}
	s.club, s.format, s.holes = b.Club, f, holes
	s.players = b.Players
	return s.show(ctx)
}

func (s *session) listBundles(ctx context.Context) error {
	st, err := s.getStore(ctx)
	if err != nil {
		return err
	}
	items, err := st.Bundles().List(ctx)
	if err != nil {
		return err
	}
	for _, b := range items {
		fmt.Fprintf(s.out, "%s (%s, %d players)\n", b.Name, b.Format, len(b.Players))
	}
	return nil
}
