package handicap

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mpapenbr/handicap-calculator-go/log"
	"github.com/mpapenbr/handicap-calculator-go/pkg/course"
	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
)

type (
	Option func(*Engine)
	// Engine computes handicap allowances. It holds read-only data only
	// and may be used from multiple goroutines.
	Engine struct {
		catalog *course.Catalog
		limits  Limits
		log     *log.Logger
	}
	Request struct {
		Club    string // empty selects the default club
		Format  Format
		Holes   model.HoleSelector // empty means 18 holes
		Players []model.PlayerEntry
	}
	// resolved carries the validated players with their course handicaps.
	resolved struct {
		club    *model.Club
		holes   model.HoleSelector
		players []model.Player
		tees    []*model.Tee
		values  []CourseValue
		ch      []int
	}
)

func New(catalog *course.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		limits:  DefaultLimits,
		log:     log.Default().Named("handicap"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithLimits(l Limits) Option {
	return func(e *Engine) {
		e.limits = l
	}
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

func (e *Engine) Limits() Limits {
	return e.limits
}

func (e *Engine) Catalog() *course.Catalog {
	return e.catalog
}

// CourseHandicap resolves the tee within the club and computes the unrounded
// course handicap.
//
//nolint:whitespace // editor/linter issue
func (e *Engine) CourseHandicap(
	clubID string,
	index decimal.Decimal,
	sex model.Sex,
	teeID string,
	holes model.HoleSelector,
) (CourseValue, error) {
	club, err := e.club(clubID)
	if err != nil {
		return CourseValue{}, err
	}
	tee, ok := club.Tee(teeID)
	if !ok {
		return CourseValue{}, &Error{Kind: ErrUnknownTee, Club: club.Name, Tee: teeID}
	}
	return CourseHandicap(tee, sex, index, holes)
}

// Calculate validates the request and applies the format rule.
// Nothing is returned but the first error if any step fails.
func (e *Engine) Calculate(req *Request) (*Result, error) {
	if req.Format == nil {
		return nil, &Error{Kind: ErrUnknownFormat}
	}
	holes := req.Holes
	if holes == "" {
		holes = model.Holes18
	}
	if _, err := model.ParseHoleSelector(string(holes)); err != nil {
		return nil, err
	}
	need := req.Format.Players()
	if len(req.Players) < need {
		return nil, &Error{Kind: ErrPlayerCount, Need: need, Got: len(req.Players)}
	}
	club, err := e.club(req.Club)
	if err != nil {
		return nil, err
	}
	players, err := Validate(req.Players[:need], e.limits)
	if err != nil {
		return nil, err
	}
	r, err := resolve(club, holes, players)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Club:            club.ID,
		Format:          req.Format.Key(),
		Holes:           holes,
		CourseHandicaps: r.courseEntries(),
	}
	switch f := req.Format.(type) {
	case Fourball:
		res.PlayingHandicaps = r.playing(fourballAllowance)
		res.Strokes = strokes(res.PlayingHandicaps)
	case Matchplay:
		res.PlayingHandicaps = r.playing(matchplayAllowance)
		res.Strokes = strokes(res.PlayingHandicaps)
	case Foursomes:
		if res.Teams, err = r.combinedTeams(r.players); err != nil {
			return nil, err
		}
		res.Strokes = strokes(res.Teams)
	case Pyms:
		capped := r.pymsIndices()
		res.Adjusted = capped.entries
		if res.Teams, err = r.combinedTeams(capped.players); err != nil {
			return nil, err
		}
		res.Strokes = strokes(res.Teams)
	case Greensomes:
		res.Teams = r.greensomesTeams()
		res.Strokes = strokes(res.Teams)
	case BestBall:
		allowance := f.Allowance()
		if allowance.IsZero() {
			return nil, &Error{Kind: ErrUnknownFormat}
		}
		res.PlayingHandicaps = r.playing(allowance)
	}
	named := lo.SomeBy(r.players, func(p model.Player) bool { return p.DisplayName() != "" })
	res.Lines = renderLines(req.Format, res, named)

	e.log.Debug("calculated",
		log.String("club", res.Club),
		log.String("format", res.Format),
		log.String("holes", string(res.Holes)),
		log.Ints("courseHandicaps", r.ch))
	return res, nil
}

func (e *Engine) club(id string) (*model.Club, error) {
	club, err := e.catalog.Club(id)
	if err != nil {
		return nil, &Error{Kind: ErrUnknownClub, Club: id}
	}
	return club, nil
}

func resolve(club *model.Club, holes model.HoleSelector, players []model.Player) (
	*resolved, error,
) {
	r := &resolved{
		club:    club,
		holes:   holes,
		players: players,
		tees:    make([]*model.Tee, len(players)),
		values:  make([]CourseValue, len(players)),
		ch:      make([]int, len(players)),
	}
	for i, p := range players {
		tee, ok := club.Tee(p.Tee)
		if !ok {
			return nil, &Error{
				Kind: ErrUnknownTee, Player: i + 1, Name: p.DisplayName(),
				Club: club.Name, Tee: p.Tee,
			}
		}
		v, err := CourseHandicap(tee, p.Sex, p.HandicapIndex, holes)
		if err != nil {
			return nil, atPlayer(err, i, p.DisplayName())
		}
		r.tees[i] = tee
		r.values[i] = v
		r.ch[i] = v.Rounded()
	}
	return r, nil
}

func (r *resolved) courseEntries() []Entry {
	return lo.Map(r.players, func(p model.Player, i int) Entry {
		return Entry{Label: p.Label(i), Value: r.ch[i], Derived: r.values[i].Derived}
	})
}

// playing applies allowance to the rounded course handicaps.
func (r *resolved) playing(allowance decimal.Decimal) []Entry {
	return lo.Map(r.players, func(p model.Player, i int) Entry {
		return Entry{
			Label: p.Label(i),
			Value: roundInt(decimal.NewFromInt(int64(r.ch[i])).Mul(allowance)),
		}
	})
}

// combinedTeams sums the unrounded course handicaps of both team members
// and rounds half of the sum once.
func (r *resolved) combinedTeams(players []model.Player) ([]Entry, error) {
	raw := make([]decimal.Decimal, len(players))
	for i, p := range players {
		v, err := CourseHandicap(r.tees[i], p.Sex, p.HandicapIndex, r.holes)
		if err != nil {
			return nil, atPlayer(err, i, p.DisplayName())
		}
		raw[i] = v.Raw
	}
	return []Entry{
		{Label: teamA, Value: roundInt(raw[0].Add(raw[1]).Mul(foursomesAllowance))},
		{Label: teamB, Value: roundInt(raw[2].Add(raw[3]).Mul(foursomesAllowance))},
	}, nil
}

type cappedIndices struct {
	players []model.Player
	entries []IndexEntry
}

// pymsIndices scales both indices of a team by 40/sum when the combined index
// exceeds 40. A sum of exactly 40 is not capped.
func (r *resolved) pymsIndices() cappedIndices {
	ret := cappedIndices{
		players: make([]model.Player, len(r.players)),
		entries: make([]IndexEntry, len(r.players)),
	}
	copy(ret.players, r.players)
	for t := 0; t+1 < len(r.players); t += 2 {
		sum := r.players[t].HandicapIndex.Add(r.players[t+1].HandicapIndex)
		capped := sum.GreaterThan(pymsMaxCombined)
		for i := t; i <= t+1; i++ {
			if capped {
				ret.players[i].HandicapIndex = r.players[i].HandicapIndex.
					Mul(pymsMaxCombined).Div(sum)
			}
			ret.entries[i] = IndexEntry{
				Label:  r.players[i].Label(i),
				Index:  ret.players[i].HandicapIndex,
				Capped: capped,
			}
		}
	}
	return ret
}

// greensomesTeams weights the rounded individual course handicaps 60/40.
func (r *resolved) greensomesTeams() []Entry {
	team := func(a, b int) int {
		return roundInt(decimal.NewFromInt(int64(a)).Mul(greensomesFirst).
			Add(decimal.NewFromInt(int64(b)).Mul(greensomesSecond)))
	}
	return []Entry{
		{Label: teamA, Value: team(r.ch[0], r.ch[1])},
		{Label: teamB, Value: team(r.ch[2], r.ch[3])},
	}
}

// strokes returns the difference of each value to the lowest one.
func strokes(items []Entry) []Entry {
	low := lo.Min(lo.Map(items, func(e Entry, _ int) int { return e.Value }))
	return lo.Map(items, func(e Entry, _ int) Entry {
		return Entry{Label: e.Label, Value: e.Value - low}
	})
}
