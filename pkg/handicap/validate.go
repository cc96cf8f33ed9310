package handicap

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
)

// Limits is the inclusive range of accepted handicap indices.
// The range differs between deployments, [0, 54] and [-10, 54] are both in use.
type Limits struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// DefaultLimits accepts plus handicaps down to +10.
var DefaultLimits = Limits{Min: decimal.NewFromInt(-10), Max: decimal.NewFromInt(54)}

func NewLimits(lower, upper float64) (Limits, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) ||
		math.IsInf(lower, 0) || math.IsInf(upper, 0) || lower > upper {
		return Limits{}, fmt.Errorf("invalid handicap range [%v, %v]", lower, upper)
	}
	return Limits{Min: decimal.NewFromFloat(lower), Max: decimal.NewFromFloat(upper)}, nil
}

func (l Limits) Contains(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(l.Min) && v.LessThanOrEqual(l.Max)
}

func (l Limits) String() string {
	return fmt.Sprintf("[%s, %s]", l.Min, l.Max)
}

// ParseIndex parses and checks a single handicap index input.
// The returned error is an *Error without player position.
func ParseIndex(input string, limits Limits) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return decimal.Zero, &Error{Kind: ErrMissingHandicap}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &Error{Kind: ErrInvalidHandicap, Input: input}
	}
	v := decimal.NewFromFloat(f)
	if !limits.Contains(v) {
		return decimal.Zero, &Error{Kind: ErrHandicapOutOfRange, Input: s, Limits: limits}
	}
	return v, nil
}

// Validate checks all entries in order and stops at the first invalid one.
func Validate(entries []model.PlayerEntry, limits Limits) ([]model.Player, error) {
	ret := make([]model.Player, len(entries))
	for i, e := range entries {
		idx, err := ParseIndex(e.HandicapIndex, limits)
		if err != nil {
			return nil, atPlayer(err, i, e.DisplayName())
		}
		ret[i] = model.Player{
			Name:          e.Name,
			Sex:           e.Sex,
			HandicapIndex: idx,
			Tee:           e.Tee,
		}
	}
	return ret, nil
}
