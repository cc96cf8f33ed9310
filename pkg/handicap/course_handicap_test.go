//nolint:whitespace,lll,funlen // readability
package handicap

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/testsupport/basedata"
)

func testTee(t *testing.T, id string) *model.Tee {
	t.Helper()
	tee, ok := basedata.TestClub().Tee(id)
	require.True(t, ok, "tee %s", id)
	return tee
}

func TestCourseHandicap(t *testing.T) {
	tests := []struct {
		name        string
		tee         string
		sex         model.Sex
		index       string
		holes       model.HoleSelector
		want        int
		wantDerived bool
	}{
		{"plain 18", basedata.TeePlain, model.SexMen, "15.4", model.Holes18, 15, false},
		{"plain 18 half up", basedata.TeePlain, model.SexLadies, "12.5", model.Holes18, 13, false},
		{"plain negative", basedata.TeePlain, model.SexMen, "-2.5", model.Holes18, -3, false},
		{"rated men 18", basedata.TeeRated, model.SexMen, "10", model.Holes18, 12, false},
		{"rated men 9f", basedata.TeeRated, model.SexMen, "10", model.HolesFront, 12, false},
		{"rated men 9b", basedata.TeeRated, model.SexMen, "10", model.HolesBack, 12, false},
		{"rated ladies 18", basedata.TeeRated, model.SexLadies, "20", model.Holes18, 29, false},
		{"rated ladies 9f", basedata.TeeRated, model.SexLadies, "20", model.HolesFront, 26, false},
		{"plain 9f derived", basedata.TeePlain, model.SexMen, "15", model.HolesFront, 8, true},
		{"plain 9b derived", basedata.TeePlain, model.SexMen, "14", model.HolesBack, 7, true},
		{"menonly 18", basedata.TeeMenOnly, model.SexMen, "0", model.Holes18, -4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CourseHandicap(testTee(t, tt.tee), tt.sex,
				decimal.RequireFromString(tt.index), tt.holes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Rounded())
			assert.Equal(t, tt.wantDerived, got.Derived)
		})
	}
}

func TestCourseHandicapLinear(t *testing.T) {
	tee := testTee(t, basedata.TeeRated)
	raw := func(idx int64) float64 {
		v, err := CourseHandicap(tee, model.SexLadies, decimal.NewFromInt(idx), model.Holes18)
		require.NoError(t, err)
		return v.Raw.InexactFloat64()
	}
	slope := 137.0 / 113.0
	for _, idx := range []int64{-10, 0, 7, 36, 54} {
		assert.InDelta(t, slope, raw(idx+1)-raw(idx), 1e-9, "index %d", idx)
	}
	assert.InDelta(t, 77.0-72.0, raw(0), 1e-9)
}

func TestCourseHandicapDerivedIsHalf(t *testing.T) {
	for _, teeID := range []string{basedata.TeePlain, basedata.TeeMenOnly} {
		tee := testTee(t, teeID)
		for _, idx := range []string{"0", "7.3", "15.3", "-3.1", "54"} {
			index := decimal.RequireFromString(idx)
			v18, err := CourseHandicap(tee, model.SexMen, index, model.Holes18)
			require.NoError(t, err)
			for _, holes := range []model.HoleSelector{model.HolesFront, model.HolesBack} {
				v9, err := CourseHandicap(tee, model.SexMen, index, holes)
				require.NoError(t, err)
				assert.True(t, v9.Derived)
				assert.True(t, v9.Raw.Equal(v18.Raw.Mul(decimal.RequireFromString("0.5"))),
					"%s %s %s: %s", teeID, idx, holes, v9.Raw)
			}
		}
	}
}

func TestCourseHandicapErrors(t *testing.T) {
	_, err := CourseHandicap(testTee(t, basedata.TeeMenOnly), model.SexLadies,
		decimal.NewFromInt(10), model.Holes18)
	require.ErrorIs(t, err, ErrMissingRatingData)
	var he *Error
	require.True(t, errors.As(err, &he))
	assert.Equal(t, basedata.TeeMenOnly, he.Tee)
	assert.Equal(t, `tee "menonly" has no 18 Holes rating for Ladies`, err.Error())

	_, err = CourseHandicap(nil, model.SexMen, decimal.NewFromInt(10), model.Holes18)
	assert.ErrorIs(t, err, ErrUnknownTee)

	_, err = CourseHandicap(testTee(t, basedata.TeePlain), model.SexMen,
		decimal.NewFromInt(10), model.HoleSelector("27"))
	assert.ErrorIs(t, err, ErrMissingRatingData)
}

func TestEngineCourseHandicap(t *testing.T) {
	e := New(basedata.TestCatalog())

	v, err := e.CourseHandicap("", decimal.NewFromInt(10), model.SexMen,
		basedata.TeeRated, model.Holes18)
	require.NoError(t, err)
	assert.Equal(t, 12, v.Rounded())

	_, err = e.CourseHandicap(basedata.ClubID, decimal.NewFromInt(10), model.SexMen,
		"gold", model.Holes18)
	require.ErrorIs(t, err, ErrUnknownTee)
	assert.Equal(t, `unknown tee "gold" at Test Golf Club`, err.Error())

	_, err = e.CourseHandicap("nowhere", decimal.NewFromInt(10), model.SexMen,
		basedata.TeePlain, model.Holes18)
	require.ErrorIs(t, err, ErrUnknownClub)
	assert.Equal(t, `unknown club "nowhere"`, err.Error())
}
