package common

import (
	"fmt"
	"io"
	"strings"

	"github.com/aarondl/opt/null"
	"github.com/samber/lo"

	"github.com/mpapenbr/handicap-calculator-go/pkg/handicap"
	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
)

// ParsePlayer parses a player given as "name=Ann,sex=ladies,hi=12.4,tee=navy".
// A value without any "=" is taken as handicap index.
// Sex defaults to men, an empty tee is resolved by ApplyDefaultTee.
func ParsePlayer(spec string) (model.PlayerEntry, error) {
	ret := model.PlayerEntry{Sex: model.SexMen}
	if !strings.Contains(spec, "=") {
		ret.HandicapIndex = strings.TrimSpace(spec)
		return ret, nil
	}
	kv, err := ParseKeyValues(spec)
	if err != nil {
		return ret, err
	}
	for k, v := range kv {
		switch k {
		case "name":
			if v != "" {
				ret.Name = null.From(v)
			}
		case "sex":
			if ret.Sex, err = model.ParseSex(v); err != nil {
				return ret, err
			}
		case "hi", "index":
			ret.HandicapIndex = v
		case "tee":
			ret.Tee = v
		default:
			return ret, fmt.Errorf("unknown player attribute %q", k)
		}
	}
	return ret, nil
}

// FormatPlayer is the inverse of ParsePlayer.
func FormatPlayer(p model.PlayerEntry) string {
	parts := []string{}
	if name := p.DisplayName(); name != "" {
		parts = append(parts, "name="+name)
	}
	parts = append(parts, "sex="+string(p.Sex), "hi="+p.HandicapIndex)
	if p.Tee != "" {
		parts = append(parts, "tee="+p.Tee)
	}
	return strings.Join(parts, ",")
}

// ApplyDefaultTee sets the club default tee for players without a tee.
func ApplyDefaultTee(club *model.Club, players []model.PlayerEntry) []model.PlayerEntry {
	return lo.Map(players, func(p model.PlayerEntry, _ int) model.PlayerEntry {
		if p.Tee == "" {
			p.Tee = club.DefaultTee
		}
		return p
	})
}

// WriteResult prints the result with a header line.
func WriteResult(w io.Writer, club *model.Club, f handicap.Format, res *handicap.Result) {
	fmt.Fprintf(w, "%s - %s\n", club.Name, f.Label())
	for _, line := range res.Lines {
		fmt.Fprintln(w, line)
	}
}
