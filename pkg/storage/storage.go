// Package storage defines the persistence port for saved calculation bundles
// and golfers. Adapters live in the sub packages and register themselves with
// the factory.
package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidName = errors.New("name must not be empty")
)

type (
	// Repository stores records of type T by name.
	// Saving a record with an existing name replaces it.
	Repository[T any] interface {
		Save(ctx context.Context, item *T) error
		// Load returns ErrNotFound if there is no record with that name.
		Load(ctx context.Context, name string) (*T, error)
		// List returns all records ordered by name.
		List(ctx context.Context) ([]*T, error)
		// Delete returns the number of deleted records.
		Delete(ctx context.Context, name string) (int, error)
	}

	Store interface {
		Bundles() Repository[model.Bundle]
		Golfers() Repository[model.Golfer]
		Close() error
	}
)

// CheckName rejects empty or blank names.
func CheckName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidName
	}
	return name, nil
}

// BundleName and GolferName are the key accessors used by the adapters.
func BundleName(b *model.Bundle) string { return b.Name }

func GolferName(g *model.Golfer) string { return g.Name }
