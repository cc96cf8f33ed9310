package model

import (
	"fmt"
	"strings"
)

type (
	Sex          string
	HoleSelector string

	// Rating is the official rating of a tee for one sex and hole selection.
	Rating struct {
		Slope        int     `yaml:"slope" json:"slope"`
		CourseRating float64 `yaml:"cr" json:"cr"`
		Par          int     `yaml:"par" json:"par"`
	}
	// RatingSet holds the ratings per hole selector. The 18 hole entry is mandatory.
	RatingSet map[HoleSelector]Rating

	Tee struct {
		ID      string
		Name    string
		Color   string
		Ratings map[Sex]RatingSet
	}

	Club struct {
		ID         string
		Name       string
		Logo       string
		DefaultTee string
		Tees       []*Tee // display order
	}
)

const (
	SexMen    Sex = "men"
	SexLadies Sex = "ladies"
)

const (
	Holes18    HoleSelector = "18"
	HolesFront HoleSelector = "9f"
	HolesBack  HoleSelector = "9b"
)

var (
	Sexes         = []Sex{SexMen, SexLadies}
	HoleSelectors = []HoleSelector{Holes18, HolesFront, HolesBack}
)

func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "men", "man", "m":
		return SexMen, nil
	case "ladies", "lady", "women", "l", "w":
		return SexLadies, nil
	default:
		return "", fmt.Errorf("unknown sex %q (use men or ladies)", s)
	}
}

func (s Sex) Label() string {
	switch s {
	case SexMen:
		return "Men"
	case SexLadies:
		return "Ladies"
	default:
		return string(s)
	}
}

func ParseHoleSelector(s string) (HoleSelector, error) {
	switch h := HoleSelector(strings.ToLower(strings.TrimSpace(s))); h {
	case Holes18, HolesFront, HolesBack:
		return h, nil
	default:
		return "", fmt.Errorf("unknown hole selection %q (use 18, 9f or 9b)", s)
	}
}

// IsNine reports whether the selector covers one half of the course.
func (h HoleSelector) IsNine() bool {
	return h == HolesFront || h == HolesBack
}

func (h HoleSelector) Label() string {
	switch h {
	case Holes18:
		return "18 Holes"
	case HolesFront:
		return "9 Holes (Front)"
	case HolesBack:
		return "9 Holes (Back)"
	default:
		return string(h)
	}
}

// Tee returns the tee with the given id.
func (c *Club) Tee(id string) (*Tee, bool) {
	for _, t := range c.Tees {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Rating returns the rating for sex and holes without any fallback.
func (t *Tee) Rating(sex Sex, holes HoleSelector) (Rating, bool) {
	set, ok := t.Ratings[sex]
	if !ok {
		return Rating{}, false
	}
	r, ok := set[holes]
	return r, ok
}
