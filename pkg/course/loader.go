package course

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
)

//go:embed clubs.yaml
var defaultClubs []byte

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultClubs)
})

// Default returns the catalog shipped with the binary.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("embedded course data is invalid: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a YAML (or JSON) file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// file layout. Mappings are walked as nodes to keep the order of clubs and tees.
type (
	fileCatalog struct {
		Default string    `yaml:"default"`
		Clubs   yaml.Node `yaml:"clubs"`
	}
	fileClub struct {
		Name       string    `yaml:"name"`
		Logo       string    `yaml:"logo"`
		DefaultTee string    `yaml:"defaultTee"`
		Tees       yaml.Node `yaml:"tees"`
	}
	fileTee struct {
		Name   string    `yaml:"name"`
		Color  string    `yaml:"color"`
		Men    yaml.Node `yaml:"men"`
		Ladies yaml.Node `yaml:"ladies"`
	}
)

// Parse decodes catalog data. JSON input is accepted as well.
func Parse(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, err
	}
	var clubs []*model.Club
	err := eachPair(&fc.Clubs, func(id string, n *yaml.Node) error {
		club, err := decodeClub(id, n)
		if err != nil {
			return err
		}
		clubs = append(clubs, club)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return New(fc.Default, clubs...)
}

func decodeClub(id string, n *yaml.Node) (*model.Club, error) {
	var fc fileClub
	if err := n.Decode(&fc); err != nil {
		return nil, fmt.Errorf("club %q: %w", id, err)
	}
	club := &model.Club{
		ID:         id,
		Name:       fc.Name,
		Logo:       fc.Logo,
		DefaultTee: fc.DefaultTee,
	}
	if club.Name == "" {
		club.Name = id
	}
	err := eachPair(&fc.Tees, func(teeID string, tn *yaml.Node) error {
		tee, err := decodeTee(teeID, tn)
		if err != nil {
			return fmt.Errorf("club %q: %w", id, err)
		}
		club.Tees = append(club.Tees, tee)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return club, nil
}

func decodeTee(id string, n *yaml.Node) (*model.Tee, error) {
	var ft fileTee
	if err := n.Decode(&ft); err != nil {
		return nil, fmt.Errorf("tee %q: %w", id, err)
	}
	tee := &model.Tee{
		ID:      id,
		Name:    ft.Name,
		Color:   ft.Color,
		Ratings: map[model.Sex]model.RatingSet{},
	}
	if tee.Name == "" {
		tee.Name = id
	}
	for sex, node := range map[model.Sex]*yaml.Node{
		model.SexMen:    &ft.Men,
		model.SexLadies: &ft.Ladies,
	} {
		if node.Kind == 0 {
			continue
		}
		set, err := decodeRatingSet(node)
		if err != nil {
			return nil, fmt.Errorf("tee %q (%s): %w", id, sex, err)
		}
		tee.Ratings[sex] = set
	}
	return tee, nil
}

func decodeRatingSet(n *yaml.Node) (model.RatingSet, error) {
	set := model.RatingSet{}
	err := eachPair(n, func(key string, rn *yaml.Node) error {
		holes, err := model.ParseHoleSelector(key)
		if err != nil {
			return err
		}
		var r model.Rating
		if err := rn.Decode(&r); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		set[holes] = r
		return nil
	})
	return set, err
}

// eachPair calls fn for every key/value of a mapping node in document order.
// An absent node is treated as an empty mapping.
func eachPair(n *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	if n.Kind == 0 {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}
