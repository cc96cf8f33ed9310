// Package basedata provides course data and player input for tests.
package basedata

import (
	"github.com/aarondl/opt/null"

	"github.com/mpapenbr/handicap-calculator-go/pkg/course"
	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
)

const (
	ClubID = "test"
	// TeePlain has slope 113 and CR == par, so the course handicap equals the index.
	// It has no 9 hole ratings.
	TeePlain = "plain"
	// TeeRated carries 18 and 9 hole ratings for both sexes.
	TeeRated = "rated"
	// TeeMenOnly has no ratings for ladies.
	TeeMenOnly = "menonly"
)

func plainSet() model.RatingSet {
	return model.RatingSet{model.Holes18: {Slope: 113, CourseRating: 72, Par: 72}}
}

func TestClub() *model.Club {
	return &model.Club{
		ID:         ClubID,
		Name:       "Test Golf Club",
		DefaultTee: TeePlain,
		Tees: []*model.Tee{
			{
				ID: TeePlain, Name: "Plain", Color: "#FFFFFF",
				Ratings: map[model.Sex]model.RatingSet{
					model.SexMen:    plainSet(),
					model.SexLadies: plainSet(),
				},
			},
			{
				ID: TeeRated, Name: "Rated", Color: "#000080",
				Ratings: map[model.Sex]model.RatingSet{
					model.SexMen: {
						model.Holes18:    {Slope: 125, CourseRating: 71.3, Par: 70},
						model.HolesFront: {Slope: 126, CourseRating: 35.6, Par: 35},
						model.HolesBack:  {Slope: 125, CourseRating: 35.6, Par: 35},
					},
					model.SexLadies: {
						model.Holes18:    {Slope: 137, CourseRating: 77.0, Par: 72},
						model.HolesFront: {Slope: 136, CourseRating: 38.4, Par: 36},
						model.HolesBack:  {Slope: 139, CourseRating: 38.6, Par: 36},
					},
				},
			},
			{
				ID: TeeMenOnly, Name: "Men only", Color: "#DC143C",
				Ratings: map[model.Sex]model.RatingSet{
					model.SexMen: {model.Holes18: {Slope: 120, CourseRating: 68.0, Par: 72}},
				},
			},
		},
	}
}

// TestCatalog returns a catalog with TestClub as default and a second club.
func TestCatalog() *course.Catalog {
	other := &model.Club{
		ID: "other", Name: "Other Club",
		Tees: []*model.Tee{{
			ID: "white", Name: "White",
			Ratings: map[model.Sex]model.RatingSet{model.SexMen: plainSet()},
		}},
	}
	c, err := course.New(ClubID, TestClub(), other)
	if err != nil {
		panic(err)
	}
	return c
}

// Entry creates player input on the plain tee.
func Entry(sex model.Sex, hi string) model.PlayerEntry {
	return model.PlayerEntry{Sex: sex, HandicapIndex: hi, Tee: TeePlain}
}

// NamedEntry creates named player input on tee.
func NamedEntry(name string, sex model.Sex, hi, tee string) model.PlayerEntry {
	return model.PlayerEntry{
		Name: null.From(name), Sex: sex, HandicapIndex: hi, Tee: tee,
	}
}

// Men creates entries for men on the plain tee.
func Men(his ...string) []model.PlayerEntry {
	ret := make([]model.PlayerEntry, len(his))
	for i, hi := range his {
		ret[i] = Entry(model.SexMen, hi)
	}
	return ret
}
