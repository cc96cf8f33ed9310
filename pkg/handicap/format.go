package handicap

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Format is a match format. The set of formats is closed, values are
// created by ParseFormat or by using one of the concrete types below.
type Format interface {
	Key() string
	Label() string
	// Players returns the number of active players the format needs.
	Players() int
	isFormat()
}

type (
	// Fourball: each player plays off 90% of the course handicap.
	Fourball struct{}
	// Matchplay is singles matchplay off full course handicap.
	Matchplay struct{}
	// Foursomes: half of the combined unrounded team course handicap.
	Foursomes struct{}
	// Pyms is foursomes with the combined team handicap index capped at 40.
	Pyms struct{}
	// Greensomes: 60% of the first and 40% of the second player of a team.
	Greensomes struct{}
	// BestBall counts the best N scores of M players (stroke play).
	BestBall struct {
		N int
		M int
	}
)

var (
	fourballAllowance  = decimal.RequireFromString("0.90")
	matchplayAllowance = decimal.NewFromInt(1)
	foursomesAllowance = decimal.RequireFromString("0.50")
	greensomesFirst    = decimal.RequireFromString("0.60")
	greensomesSecond   = decimal.RequireFromString("0.40")
	pymsMaxCombined    = decimal.NewFromInt(40)

	bestBallAllowances = map[BestBall]decimal.Decimal{
		{N: 1, M: 4}: decimal.RequireFromString("0.75"),
		{N: 2, M: 4}: decimal.RequireFromString("0.85"),
		{N: 3, M: 4}: decimal.RequireFromString("1.00"),
		{N: 1, M: 3}: decimal.RequireFromString("0.70"),
		{N: 2, M: 3}: decimal.RequireFromString("0.85"),
		{N: 3, M: 3}: decimal.RequireFromString("1.00"),
	}
)

// Formats lists all formats in display order.
func Formats() []Format {
	return []Format{
		Fourball{},
		Foursomes{},
		Greensomes{},
		Pyms{},
		Matchplay{},
		BestBall{N: 1, M: 4},
		BestBall{N: 2, M: 4},
		BestBall{N: 3, M: 4},
		BestBall{N: 1, M: 3},
		BestBall{N: 2, M: 3},
		BestBall{N: 3, M: 3},
	}
}

// ParseFormat resolves a format key like "fourball" or "best_2_from_4".
func ParseFormat(key string) (Format, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, f := range Formats() {
		if f.Key() == key {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, key)
}

// NewBestBall returns the best N from M format if it is supported.
func NewBestBall(n, m int) (BestBall, error) {
	f := BestBall{N: n, M: m}
	if _, ok := bestBallAllowances[f]; !ok {
		return BestBall{}, fmt.Errorf("%w: best %d from %d", ErrUnknownFormat, n, m)
	}
	return f, nil
}

func (Fourball) Key() string   { return "fourball" }
func (Fourball) Label() string { return "Fourball (90%)" }
func (Fourball) Players() int  { return 4 }
func (Fourball) isFormat()     {}

func (Matchplay) Key() string   { return "matchplay" }
func (Matchplay) Label() string { return "Singles Matchplay (100%)" }
func (Matchplay) Players() int  { return 2 }
func (Matchplay) isFormat()     {}

func (Foursomes) Key() string   { return "foursomes" }
func (Foursomes) Label() string { return "Foursomes (50%) combined" }
func (Foursomes) Players() int  { return 4 }
func (Foursomes) isFormat()     {}

func (Pyms) Key() string   { return "pyms" }
func (Pyms) Label() string { return "Pyms (50%, Max Combined Index 40)" }
func (Pyms) Players() int  { return 4 }
func (Pyms) isFormat()     {}

func (Greensomes) Key() string   { return "greensomes" }
func (Greensomes) Label() string { return "Greensomes (60/40 split)" }
func (Greensomes) Players() int  { return 4 }
func (Greensomes) isFormat()     {}

func (b BestBall) Key() string { return fmt.Sprintf("best_%d_from_%d", b.N, b.M) }
func (b BestBall) Label() string {
	return fmt.Sprintf("Best %d from %d (%s)", b.N, b.M, percent(b.Allowance()))
}
func (b BestBall) Players() int { return b.M }
func (BestBall) isFormat()      {}

// Allowance returns the playing handicap factor. Unsupported combinations yield zero.
func (b BestBall) Allowance() decimal.Decimal {
	return bestBallAllowances[b]
}

func percent(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).String() + "%"
}
