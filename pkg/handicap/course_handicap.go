package handicap

import (
	"github.com/shopspring/decimal"

	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
)

var (
	standardSlope = decimal.NewFromInt(113)
	// a 9 hole value derived from the 18 hole rating covers 9 of 18 holes
	nineOfEighteen = decimal.New(5, -1)
)

// CourseValue is an unrounded course handicap.
type CourseValue struct {
	Raw decimal.Decimal
	// Derived is set for 9 hole values computed from the 18 hole rating
	// because the tee has no rating for that half.
	Derived bool
}

// Rounded rounds half away from zero.
func (v CourseValue) Rounded() int {
	return roundInt(v.Raw)
}

// CourseHandicap computes index * slope/113 + (CR - par) for the tee.
// For 9 holes the rating of that half is used. Without such a rating the
// 18 hole value is halved, which only approximates a true 9 hole figure.
//
//nolint:whitespace // editor/linter issue
func CourseHandicap(
	tee *model.Tee,
	sex model.Sex,
	index decimal.Decimal,
	holes model.HoleSelector,
) (CourseValue, error) {
	if tee == nil {
		return CourseValue{}, &Error{Kind: ErrUnknownTee, Sex: sex, Holes: holes}
	}
	r18, ok := tee.Rating(sex, model.Holes18)
	if !ok {
		return CourseValue{}, &Error{
			Kind: ErrMissingRatingData, Tee: tee.ID, Sex: sex, Holes: model.Holes18,
		}
	}
	switch holes {
	case model.Holes18:
		return CourseValue{Raw: formula(index, r18)}, nil
	case model.HolesFront, model.HolesBack:
		if r9, ok := tee.Rating(sex, holes); ok {
			return CourseValue{Raw: formula(index, r9)}, nil
		}
		return CourseValue{Raw: formula(index, r18).Mul(nineOfEighteen), Derived: true}, nil
	default:
		return CourseValue{}, &Error{
			Kind: ErrMissingRatingData, Tee: tee.ID, Sex: sex, Holes: holes,
		}
	}
}

func formula(index decimal.Decimal, r model.Rating) decimal.Decimal {
	return index.Mul(decimal.NewFromInt(int64(r.Slope))).Div(standardSlope).
		Add(decimal.NewFromFloat(r.CourseRating).Sub(decimal.NewFromInt(int64(r.Par))))
}

func roundInt(d decimal.Decimal) int {
	return int(d.Round(0).IntPart())
}
