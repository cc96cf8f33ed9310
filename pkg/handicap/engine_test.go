//nolint:whitespace,lll,funlen,dupl // readability
package handicap

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/testsupport/basedata"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func calc(t *testing.T, f Format, holes model.HoleSelector, entries ...model.PlayerEntry) *Result {
	t.Helper()
	res, err := New(basedata.TestCatalog()).Calculate(&Request{
		Format: f, Holes: holes, Players: entries,
	})
	require.NoError(t, err)
	return res
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		format      Format
		hi          []string
		wantCourse  []int
		wantPlaying []int
		wantTeams   []int
		wantStrokes []int
	}{
		{
			name:        "fourball",
			format:      Fourball{},
			hi:          []string{"10", "15", "20", "5"},
			wantCourse:  []int{10, 15, 20, 5},
			wantPlaying: []int{9, 14, 18, 5},
			wantStrokes: []int{4, 9, 13, 0},
		},
		{
			name:        "fourball with plus handicap",
			format:      Fourball{},
			hi:          []string{"-5", "10", "0", "3"},
			wantCourse:  []int{-5, 10, 0, 3},
			wantPlaying: []int{-5, 9, 0, 3},
			wantStrokes: []int{0, 14, 5, 8},
		},
		{
			name:        "matchplay",
			format:      Matchplay{},
			hi:          []string{"8", "14"},
			wantCourse:  []int{8, 14},
			wantPlaying: []int{8, 14},
			wantStrokes: []int{0, 6},
		},
		{
			name:        "matchplay tie",
			format:      Matchplay{},
			hi:          []string{"12", "12"},
			wantCourse:  []int{12, 12},
			wantPlaying: []int{12, 12},
			wantStrokes: []int{0, 0},
		},
		{
			name:        "matchplay negative",
			format:      Matchplay{},
			hi:          []string{"-2.4", "5"},
			wantCourse:  []int{-2, 5},
			wantPlaying: []int{-2, 5},
			wantStrokes: []int{0, 7},
		},
		{
			name:        "foursomes",
			format:      Foursomes{},
			hi:          []string{"10", "13", "20", "5"},
			wantCourse:  []int{10, 13, 20, 5},
			wantTeams:   []int{12, 13},
			wantStrokes: []int{0, 1},
		},
		{
			// rounded values would give (11+10)/2 = 10.5 -> 11 for team A
			name:        "foursomes uses unrounded values",
			format:      Foursomes{},
			hi:          []string{"10.5", "10.4", "10.6", "10.6"},
			wantCourse:  []int{11, 10, 11, 11},
			wantTeams:   []int{10, 11},
			wantStrokes: []int{0, 1},
		},
		{
			name:        "greensomes",
			format:      Greensomes{},
			hi:          []string{"10", "20", "5", "15"},
			wantCourse:  []int{10, 20, 5, 15},
			wantTeams:   []int{14, 9},
			wantStrokes: []int{5, 0},
		},
		{
			name:        "pyms capped",
			format:      Pyms{},
			hi:          []string{"25", "20", "10", "10"},
			wantCourse:  []int{25, 20, 10, 10},
			wantTeams:   []int{20, 10},
			wantStrokes: []int{10, 0},
		},
		{
			name:        "pyms exactly 40",
			format:      Pyms{},
			hi:          []string{"25", "15", "3", "4"},
			wantCourse:  []int{25, 15, 3, 4},
			wantTeams:   []int{20, 4},
			wantStrokes: []int{16, 0},
		},
		{
			name:        "best 2 from 4",
			format:      BestBall{N: 2, M: 4},
			hi:          []string{"10", "15", "20", "5"},
			wantCourse:  []int{10, 15, 20, 5},
			wantPlaying: []int{9, 13, 17, 4},
		},
		{
			name:        "best 1 from 3",
			format:      BestBall{N: 1, M: 3},
			hi:          []string{"10", "15", "20"},
			wantCourse:  []int{10, 15, 20},
			wantPlaying: []int{7, 11, 14},
		},
		{
			name:        "best 3 from 3",
			format:      BestBall{N: 3, M: 3},
			hi:          []string{"10", "15.4", "20"},
			wantCourse:  []int{10, 15, 20},
			wantPlaying: []int{10, 15, 20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := calc(t, tt.format, "", basedata.Men(tt.hi...)...)
			assert.Equal(t, tt.format.Key(), res.Format)
			assert.Equal(t, model.Holes18, res.Holes)
			assert.Equal(t, basedata.ClubID, res.Club)
			assert.Equal(t, tt.wantCourse, values(res.CourseHandicaps))
			assert.Equal(t, tt.wantPlaying, nilIfEmpty(values(res.PlayingHandicaps)))
			assert.Equal(t, tt.wantTeams, nilIfEmpty(values(res.Teams)))
			assert.Equal(t, tt.wantStrokes, nilIfEmpty(values(res.Strokes)))
		})
	}
}

func nilIfEmpty(v []int) []int {
	if len(v) == 0 {
		return nil
	}
	return v
}

func TestCalculatePymsIndices(t *testing.T) {
	res := calc(t, Pyms{}, "", basedata.Men("25", "20", "10", "10")...)
	require.Len(t, res.Adjusted, 4)
	assert.True(t, res.Adjusted[0].Capped)
	assert.True(t, res.Adjusted[1].Capped)
	assert.False(t, res.Adjusted[2].Capped)
	assert.False(t, res.Adjusted[3].Capped)
	assert.Equal(t, "22.2", res.Adjusted[0].Index.StringFixed(1))
	assert.Equal(t, "17.8", res.Adjusted[1].Index.StringFixed(1))
	sum := res.Adjusted[0].Index.Add(res.Adjusted[1].Index)
	assert.InDelta(t, 40.0, sum.InexactFloat64(), 1e-9)
	assert.True(t, res.Adjusted[2].Index.Equal(decimal.NewFromInt(10)))

	res = calc(t, Pyms{}, "", basedata.Men("20", "20", "10", "10")...)
	for _, a := range res.Adjusted {
		assert.False(t, a.Capped)
	}
}

func TestCalculatePymsCappedIndexFeedsCourseHandicap(t *testing.T) {
	// 30 + 20 is scaled to 24 + 16 before the course handicap is computed
	entries := []model.PlayerEntry{
		basedata.NamedEntry("A", model.SexMen, "30", basedata.TeeRated),
		basedata.NamedEntry("B", model.SexLadies, "20", basedata.TeeRated),
		basedata.NamedEntry("C", model.SexMen, "1", basedata.TeePlain),
		basedata.NamedEntry("D", model.SexMen, "1", basedata.TeePlain),
	}
	res := calc(t, Pyms{}, model.Holes18, entries...)

	tee := testTee(t, basedata.TeeRated)
	a, err := CourseHandicap(tee, model.SexMen, decimal.NewFromInt(24), model.Holes18)
	require.NoError(t, err)
	b, err := CourseHandicap(tee, model.SexLadies, decimal.NewFromInt(16), model.Holes18)
	require.NoError(t, err)
	want := a.Raw.Add(b.Raw).Mul(decimal.RequireFromString("0.5")).Round(0).IntPart()
	assert.Equal(t, int(want), res.Teams[0].Value)
	assert.Equal(t, 1, res.Teams[1].Value)
}

func TestCalculateNineHoles(t *testing.T) {
	res := calc(t, Fourball{}, model.HolesFront, basedata.Men("10", "15", "20", "5")...)
	assert.Equal(t, []int{5, 8, 10, 3}, values(res.CourseHandicaps))
	for _, e := range res.CourseHandicaps {
		assert.True(t, e.Derived)
	}
	assert.Equal(t, []int{5, 7, 9, 3}, values(res.PlayingHandicaps))

	res = calc(t, Matchplay{}, model.HolesBack,
		model.PlayerEntry{Sex: model.SexMen, HandicapIndex: "10", Tee: basedata.TeeRated},
		model.PlayerEntry{Sex: model.SexLadies, HandicapIndex: "20", Tee: basedata.TeeRated},
	)
	assert.False(t, res.CourseHandicaps[0].Derived)
	assert.False(t, res.CourseHandicaps[1].Derived)
	// 20*139/113 + 2.6
	assert.Equal(t, []int{12, 27}, values(res.CourseHandicaps))
}

func TestCalculateIgnoresExtraPlayers(t *testing.T) {
	res := calc(t, Matchplay{}, "", basedata.Men("8", "14", "abc", "")...)
	assert.Len(t, res.CourseHandicaps, 2)
	assert.Equal(t, []int{0, 6}, values(res.Strokes))
}

func TestCalculateIdempotent(t *testing.T) {
	e := New(basedata.TestCatalog())
	req := &Request{Format: Pyms{}, Players: basedata.Men("25", "20", "10", "10")}
	first, err := e.Calculate(req)
	require.NoError(t, err)
	second, err := e.Calculate(req)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second, decimalComparer); diff != "" {
		t.Errorf("Calculate() mismatch (-first +second):\n%s", diff)
	}
	assert.Equal(t, basedata.Men("25", "20", "10", "10"), req.Players)
}

func TestCalculateErrors(t *testing.T) {
	tests := []struct {
		name   string
		req    *Request
		limits *Limits
		kind   error
		player int
		msg    string
	}{
		{
			name: "no format",
			req:  &Request{Players: basedata.Men("1", "2")},
			kind: ErrUnknownFormat,
			msg:  "unknown format",
		},
		{
			name: "unsupported best ball",
			req:  &Request{Format: BestBall{N: 4, M: 4}, Players: basedata.Men("1", "2", "3", "4")},
			kind: ErrUnknownFormat,
		},
		{
			name: "player count",
			req:  &Request{Format: Fourball{}, Players: basedata.Men("1", "2", "3")},
			kind: ErrPlayerCount,
			msg:  "4 players required, got 3",
		},
		{
			name: "unknown club",
			req:  &Request{Club: "nowhere", Format: Matchplay{}, Players: basedata.Men("1", "2")},
			kind: ErrUnknownClub,
			msg:  `unknown club "nowhere"`,
		},
		{
			name:   "out of range",
			req:    &Request{Format: Matchplay{}, Players: basedata.Men("10", "60")},
			kind:   ErrHandicapOutOfRange,
			player: 2,
			msg:    "Player 2: handicap index 60 is outside the allowed range [-10, 54]",
		},
		{
			name: "custom limits",
			req:  &Request{Format: Matchplay{}, Players: basedata.Men("-1", "6")},
			limits: func() *Limits {
				l, _ := NewLimits(0, 54)
				return &l
			}(),
			kind:   ErrHandicapOutOfRange,
			player: 1,
			msg:    "Player 1: handicap index -1 is outside the allowed range [0, 54]",
		},
		{
			name: "unknown tee",
			req: &Request{Format: Matchplay{}, Players: []model.PlayerEntry{
				basedata.Entry(model.SexMen, "10"),
				{Sex: model.SexMen, HandicapIndex: "12", Tee: "gold"},
			}},
			kind:   ErrUnknownTee,
			player: 2,
			msg:    `Player 2: unknown tee "gold" at Test Golf Club`,
		},
		{
			name: "missing rating data",
			req: &Request{Format: Matchplay{}, Players: []model.PlayerEntry{
				basedata.NamedEntry("Dana", model.SexLadies, "18", basedata.TeeMenOnly),
				basedata.Entry(model.SexMen, "12"),
			}},
			kind:   ErrMissingRatingData,
			player: 1,
			msg:    `Player 1 (Dana): tee "menonly" has no 18 Holes rating for Ladies`,
		},
		{
			name: "unknown holes",
			req:  &Request{Format: Matchplay{}, Holes: "27", Players: basedata.Men("1", "2")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.limits != nil {
				opts = append(opts, WithLimits(*tt.limits))
			}
			res, err := New(basedata.TestCatalog(), opts...).Calculate(tt.req)
			require.Error(t, err)
			assert.Nil(t, res)
			if tt.kind != nil {
				assert.ErrorIs(t, err, tt.kind)
			}
			var he *Error
			if errors.As(err, &he) {
				assert.Equal(t, tt.player, he.Player)
			}
			if tt.msg != "" {
				assert.Equal(t, tt.msg, err.Error())
			}
		})
	}
}
