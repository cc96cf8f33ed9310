package model

import (
	"fmt"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"
)

type (
	// PlayerEntry is a player as entered by the user.
	// The handicap index is kept as text until it is validated.
	PlayerEntry struct {
		Name          null.Val[string] `json:"name"`
		Sex           Sex              `json:"sex"`
		HandicapIndex string           `json:"hi"`
		Tee           string           `json:"tee"`
	}

	// Player is a validated snapshot of a PlayerEntry.
	Player struct {
		Name          null.Val[string]
		Sex           Sex
		HandicapIndex decimal.Decimal
		Tee           string
	}

	// Bundle is a named set of calculation inputs.
	Bundle struct {
		Name    string        `json:"name"`
		Club    string        `json:"club"`
		Format  string        `json:"format"`
		Holes   HoleSelector  `json:"holes"`
		Players []PlayerEntry `json:"players"`
		SavedAt time.Time     `json:"savedAt"`
	}

	// Golfer is a saved player record used to prefill player entries.
	Golfer struct {
		Name          string    `json:"name"`
		Sex           Sex       `json:"sex"`
		HandicapIndex string    `json:"hi"`
		Tee           string    `json:"tee"`
		SavedAt       time.Time `json:"savedAt"`
	}
)

// PositionLabel is the fallback label for the player at pos (0-based).
func PositionLabel(pos int) string {
	return fmt.Sprintf("Player %d", pos+1)
}

// Label returns the player name or the positional label.
func (p PlayerEntry) Label(pos int) string {
	if name, ok := p.Name.Get(); ok && name != "" {
		return name
	}
	return PositionLabel(pos)
}

func (p Player) Label(pos int) string {
	if name, ok := p.Name.Get(); ok && name != "" {
		return name
	}
	return PositionLabel(pos)
}

// Entry converts the golfer record into player input.
func (g *Golfer) Entry() PlayerEntry {
	return PlayerEntry{
		Name:          null.From(g.Name),
		Sex:           g.Sex,
		HandicapIndex: g.HandicapIndex,
		Tee:           g.Tee,
	}
}

// DisplayName returns the name or the empty string.
func (p PlayerEntry) DisplayName() string {
	name, _ := p.Name.Get()
	return name
}

func (p Player) DisplayName() string {
	name, _ := p.Name.Get()
	return name
}
