package handicap

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
)

const (
	teamA = "Team A"
	teamB = "Team B"

	derivedMarker   = "*"
	derivedFootnote = "* 9 hole value derived from the 18 hole rating"
)

type (
	// Entry is a value associated with a player or team label.
	Entry struct {
		Label   string `json:"label"`
		Value   int    `json:"value"`
		Derived bool   `json:"derived,omitempty"`
	}
	// IndexEntry reports a handicap index after format specific adjustments.
	IndexEntry struct {
		Label  string          `json:"label"`
		Index  decimal.Decimal `json:"index"`
		Capped bool            `json:"capped"`
	}
	// Result is the immutable outcome of a calculation.
	Result struct {
		Club             string             `json:"club"`
		Format           string             `json:"format"`
		Holes            model.HoleSelector `json:"holes"`
		CourseHandicaps  []Entry            `json:"courseHandicaps"`
		Adjusted         []IndexEntry       `json:"adjustedIndices,omitempty"`
		PlayingHandicaps []Entry            `json:"playingHandicaps,omitempty"`
		Teams            []Entry            `json:"teams,omitempty"`
		Strokes          []Entry            `json:"strokes,omitempty"`
		Lines            []string           `json:"lines"`
	}
)

// String returns the summary lines joined by newlines.
func (r *Result) String() string {
	return strings.Join(r.Lines, "\n")
}

func values(items []Entry) []int {
	return lo.Map(items, func(e Entry, _ int) int { return e.Value })
}

func joinEntries(items []Entry) string {
	return strings.Join(lo.Map(items, func(e Entry, _ int) string {
		if e.Derived {
			return fmt.Sprintf("%d%s", e.Value, derivedMarker)
		}
		return fmt.Sprintf("%d", e.Value)
	}), " / ")
}

// renderLines builds the display lines. The player labels are listed
// if at least one player has a name.
func renderLines(f Format, res *Result, named bool) []string {
	var out []string
	if named {
		out = append(out, "Players: "+strings.Join(
			lo.Map(res.CourseHandicaps, func(e Entry, _ int) string { return e.Label }),
			" / "))
	}
	out = append(out, fmt.Sprintf("Course Handicaps (%s): %s",
		res.Holes.Label(), joinEntries(res.CourseHandicaps)))

	switch f := f.(type) {
	case Fourball:
		out = append(out,
			fmt.Sprintf("Playing HIs (%s): %s",
				percent(fourballAllowance), joinEntries(res.PlayingHandicaps)),
			"Strokes vs lowest: "+joinEntries(res.Strokes))
	case Matchplay:
		out = append(out,
			fmt.Sprintf("Playing HIs (%s): %s",
				percent(matchplayAllowance), joinEntries(res.PlayingHandicaps)),
			"Strokes vs lowest: "+joinEntries(res.Strokes))
	case Pyms:
		if lo.SomeBy(res.Adjusted, func(e IndexEntry) bool { return e.Capped }) {
			out = append(out, "Pyms HIs (max combined 40): "+strings.Join(
				lo.Map(res.Adjusted, func(e IndexEntry, _ int) string {
					return e.Index.StringFixed(1)
				}), " / "))
		}
		out = append(out, teamLines(res)...)
	case Foursomes, Greensomes:
		out = append(out, teamLines(res)...)
	case BestBall:
		out = append(out, fmt.Sprintf("Playing HIs (%s): %s",
			percent(f.Allowance()), joinEntries(res.PlayingHandicaps)))
	}
	if lo.SomeBy(res.CourseHandicaps, func(e Entry) bool { return e.Derived }) {
		out = append(out, derivedFootnote)
	}
	return out
}

func teamLines(res *Result) []string {
	t := values(res.Teams)
	s := values(res.Strokes)
	return []string{
		fmt.Sprintf("Team A: %d, Team B: %d", t[0], t[1]),
		fmt.Sprintf("Strokes vs lowest: A %d, B %d", s[0], s[1]),
	}
}
