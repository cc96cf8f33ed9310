package handicap

import (
	"errors"
	"fmt"

	"github.com/mpapenbr/handicap-calculator-go/pkg/course"
	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
)

var (
	ErrMissingHandicap    = errors.New("missing handicap")
	ErrInvalidHandicap    = errors.New("invalid handicap")
	ErrHandicapOutOfRange = errors.New("handicap out of range")
	ErrUnknownTee         = errors.New("unknown tee")
	ErrMissingRatingData  = errors.New("missing rating data")
	ErrPlayerCount        = errors.New("wrong number of players")
	ErrUnknownFormat      = errors.New("unknown format")
	ErrUnknownClub        = course.ErrUnknownClub
)

// Error describes the first failure of a calculation.
// Kind is one of the Err* values above and can be checked with errors.Is.
type Error struct {
	Kind   error
	Player int    // 1-based position, 0 if the failure is not player related
	Name   string // player name if given
	Input  string // raw handicap input
	Club   string
	Tee    string
	Sex    model.Sex
	Holes  model.HoleSelector
	Limits Limits
	Need   int
	Got    int
}

func (e *Error) Unwrap() error {
	return e.Kind
}

//nolint:cyclop // one case per kind
func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case ErrMissingHandicap:
		msg = "please enter a handicap index"
	case ErrInvalidHandicap:
		msg = fmt.Sprintf("handicap index %q is not a number", e.Input)
	case ErrHandicapOutOfRange:
		msg = fmt.Sprintf("handicap index %s is outside the allowed range %s",
			e.Input, e.Limits)
	case ErrUnknownTee:
		msg = fmt.Sprintf("unknown tee %q", e.Tee)
		if e.Club != "" {
			msg += " at " + e.Club
		}
	case ErrMissingRatingData:
		msg = fmt.Sprintf("tee %q has no %s rating for %s",
			e.Tee, e.Holes.Label(), e.Sex.Label())
	case ErrPlayerCount:
		msg = fmt.Sprintf("%d players required, got %d", e.Need, e.Got)
	case ErrUnknownClub:
		msg = fmt.Sprintf("unknown club %q", e.Club)
	default:
		msg = e.Kind.Error()
	}
	if e.Player == 0 {
		return msg
	}
	if e.Name != "" {
		return fmt.Sprintf("Player %d (%s): %s", e.Player, e.Name, msg)
	}
	return fmt.Sprintf("Player %d: %s", e.Player, msg)
}

// atPlayer attaches the player position to err if it is an *Error.
func atPlayer(err error, pos int, name string) error {
	var he *Error
	if errors.As(err, &he) {
		he.Player = pos + 1
		he.Name = name
	}
	return err
}
