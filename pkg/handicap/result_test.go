//nolint:whitespace,lll,funlen // readability
package handicap

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/testsupport/basedata"
)

func TestResultLines(t *testing.T) {
	named := func(name, hi string) model.PlayerEntry {
		return basedata.NamedEntry(name, model.SexMen, hi, basedata.TeePlain)
	}
	tests := []struct {
		name    string
		format  Format
		holes   model.HoleSelector
		players []model.PlayerEntry
		want    []string
	}{
		{
			name:    "fourball",
			format:  Fourball{},
			players: basedata.Men("10", "15", "20", "5"),
			want: []string{
				"Course Handicaps (18 Holes): 10 / 15 / 20 / 5",
				"Playing HIs (90%): 9 / 14 / 18 / 5",
				"Strokes vs lowest: 4 / 9 / 13 / 0",
			},
		},
		{
			name:    "matchplay with names",
			format:  Matchplay{},
			players: []model.PlayerEntry{named("Alice", "8"), named("Bob", "14")},
			want: []string{
				"Players: Alice / Bob",
				"Course Handicaps (18 Holes): 8 / 14",
				"Playing HIs (100%): 8 / 14",
				"Strokes vs lowest: 0 / 6",
			},
		},
		{
			name:    "partially named",
			format:  Matchplay{},
			players: []model.PlayerEntry{named("Alice", "8"), basedata.Entry(model.SexMen, "14")},
			want: []string{
				"Players: Alice / Player 2",
				"Course Handicaps (18 Holes): 8 / 14",
				"Playing HIs (100%): 8 / 14",
				"Strokes vs lowest: 0 / 6",
			},
		},
		{
			name:    "name looks like a position label",
			format:  Matchplay{},
			players: []model.PlayerEntry{named("Player Two", "12"), basedata.Entry(model.SexMen, "15")},
			want: []string{
				"Players: Player Two / Player 2",
				"Course Handicaps (18 Holes): 12 / 15",
				"Playing HIs (100%): 12 / 15",
				"Strokes vs lowest: 0 / 3",
			},
		},
		{
			name:    "greensomes",
			format:  Greensomes{},
			players: basedata.Men("10", "20", "5", "15"),
			want: []string{
				"Course Handicaps (18 Holes): 10 / 20 / 5 / 15",
				"Team A: 14, Team B: 9",
				"Strokes vs lowest: A 5, B 0",
			},
		},
		{
			name:    "foursomes",
			format:  Foursomes{},
			players: basedata.Men("10", "13", "20", "5"),
			want: []string{
				"Course Handicaps (18 Holes): 10 / 13 / 20 / 5",
				"Team A: 12, Team B: 13",
				"Strokes vs lowest: A 0, B 1",
			},
		},
		{
			name:    "pyms capped",
			format:  Pyms{},
			players: basedata.Men("25", "20", "10", "10"),
			want: []string{
				"Course Handicaps (18 Holes): 25 / 20 / 10 / 10",
				"Pyms HIs (max combined 40): 22.2 / 17.8 / 10.0 / 10.0",
				"Team A: 20, Team B: 10",
				"Strokes vs lowest: A 10, B 0",
			},
		},
		{
			name:    "pyms not capped",
			format:  Pyms{},
			players: basedata.Men("20", "20", "10", "10"),
			want: []string{
				"Course Handicaps (18 Holes): 20 / 20 / 10 / 10",
				"Team A: 20, Team B: 10",
				"Strokes vs lowest: A 10, B 0",
			},
		},
		{
			name:    "best ball",
			format:  BestBall{N: 2, M: 4},
			players: basedata.Men("10", "15", "20", "5"),
			want: []string{
				"Course Handicaps (18 Holes): 10 / 15 / 20 / 5",
				"Playing HIs (85%): 9 / 13 / 17 / 4",
			},
		},
		{
			name:    "derived nine holes",
			format:  Fourball{},
			holes:   model.HolesFront,
			players: basedata.Men("10", "15", "20", "5"),
			want: []string{
				"Course Handicaps (9 Holes (Front)): 5* / 8* / 10* / 3*",
				"Playing HIs (90%): 5 / 7 / 9 / 3",
				"Strokes vs lowest: 2 / 4 / 6 / 0",
				"* 9 hole value derived from the 18 hole rating",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := calc(t, tt.format, tt.holes, tt.players...)
			if diff := cmp.Diff(tt.want, res.Lines); diff != "" {
				t.Errorf("Lines mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(joinLines(tt.want), res.String()); diff != "" {
				t.Errorf("String() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func joinLines(lines []string) string {
	ret := ""
	for i, l := range lines {
		if i > 0 {
			ret += "\n"
		}
		ret += l
	}
	return ret
}
