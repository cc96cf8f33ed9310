package course

import (
	"errors"
	"fmt"

	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
)

// Catalog is the read-only course database.
// It is never modified after creation, a reload creates a new Catalog.
type Catalog struct {
	clubs     []*model.Club
	defaultID string
}

var (
	ErrUnknownClub   = errors.New("unknown club")
	ErrInvalidRating = errors.New("invalid rating data")
	ErrNoClubs       = errors.New("catalog contains no clubs")
)

// New creates a catalog from clubs. An empty defaultID selects the first club.
func New(defaultID string, clubs ...*model.Club) (*Catalog, error) {
	if len(clubs) == 0 {
		return nil, ErrNoClubs
	}
	seen := make(map[string]bool, len(clubs))
	for _, c := range clubs {
		if seen[c.ID] {
			return nil, fmt.Errorf("%w: duplicate club %q", ErrInvalidRating, c.ID)
		}
		seen[c.ID] = true
		if err := validateClub(c); err != nil {
			return nil, err
		}
	}
	if defaultID == "" {
		defaultID = clubs[0].ID
	}
	if !seen[defaultID] {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownClub, defaultID)
	}
	return &Catalog{clubs: clubs, defaultID: defaultID}, nil
}

// Club returns the club with id. The empty id resolves to the default club.
func (c *Catalog) Club(id string) (*model.Club, error) {
	if id == "" {
		id = c.defaultID
	}
	for _, club := range c.clubs {
		if club.ID == id {
			return club, nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownClub, id)
}

// Clubs returns the clubs in display order.
func (c *Catalog) Clubs() []*model.Club {
	ret := make([]*model.Club, len(c.clubs))
	copy(ret, c.clubs)
	return ret
}

func (c *Catalog) DefaultClub() *model.Club {
	//nolint:errcheck // default id is checked in New
	club, _ := c.Club(c.defaultID)
	return club
}

func validateClub(c *model.Club) error {
	if c.ID == "" {
		return fmt.Errorf("%w: club without id", ErrInvalidRating)
	}
	if len(c.Tees) == 0 {
		return fmt.Errorf("%w: club %q has no tees", ErrInvalidRating, c.ID)
	}
	tees := make(map[string]bool, len(c.Tees))
	for _, t := range c.Tees {
		if tees[t.ID] {
			return fmt.Errorf("%w: club %q: duplicate tee %q", ErrInvalidRating, c.ID, t.ID)
		}
		tees[t.ID] = true
		if err := validateTee(t); err != nil {
			return fmt.Errorf("club %q: %w", c.ID, err)
		}
	}
	if c.DefaultTee == "" {
		c.DefaultTee = c.Tees[0].ID
	}
	if _, ok := c.Tee(c.DefaultTee); !ok {
		return fmt.Errorf("%w: club %q default tee %q not found",
			ErrInvalidRating, c.ID, c.DefaultTee)
	}
	return nil
}

// validateTee checks sexes and hole selections in display order so the
// first failure is reported.
func validateTee(t *model.Tee) error {
	rated := 0
	for _, sex := range model.Sexes {
		set, ok := t.Ratings[sex]
		if !ok {
			continue
		}
		rated++
		if _, ok := set[model.Holes18]; !ok {
			return fmt.Errorf("%w: tee %q (%s) has no 18 hole rating",
				ErrInvalidRating, t.ID, sex)
		}
		for _, holes := range model.HoleSelectors {
			r, ok := set[holes]
			if ok && (r.Slope <= 0 || r.Par <= 0 || r.CourseRating <= 0) {
				return fmt.Errorf("%w: tee %q (%s, %s): %+v",
					ErrInvalidRating, t.ID, sex, holes, r)
			}
		}
	}
	if rated == 0 {
		return fmt.Errorf("%w: tee %q has no ratings", ErrInvalidRating, t.ID)
	}
	return nil
}
