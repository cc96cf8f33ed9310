//nolint:funlen,thelper // test helper
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage"
)

// SavedAt is a fixed timestamp which survives all store roundtrips.
var SavedAt = time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

func SampleBundle(name string) *model.Bundle {
	return &model.Bundle{
		Name:   name,
		Club:   "hindhead",
		Format: "fourball",
		Holes:  model.HolesFront,
		Players: []model.PlayerEntry{
			{Name: null.From("Ann"), Sex: model.SexLadies, HandicapIndex: "12.4", Tee: "navy"},
			{Sex: model.SexMen, HandicapIndex: "8", Tee: "silver"},
			{Name: null.From("Ben"), Sex: model.SexMen, HandicapIndex: "", Tee: "navy"},
			{Sex: model.SexMen, HandicapIndex: "-1.5", Tee: "heather"},
		},
		SavedAt: SavedAt,
	}
}

func SampleGolfer(name string) *model.Golfer {
	return &model.Golfer{
		Name:          name,
		Sex:           model.SexLadies,
		HandicapIndex: "18.2",
		Tee:           "silver",
		SavedAt:       SavedAt,
	}
}

// Run checks the storage.Store contract. The store must be empty.
func Run(t *testing.T, s storage.Store) {
	t.Run("bundles", func(t *testing.T) {
		checkRepository(t, s.Bundles(), SampleBundle,
			func(b *model.Bundle) { b.Format = "pyms" },
			func(t *testing.T, want, got *model.Bundle) {
				assert.Equal(t, want.Name, got.Name)
				assert.Equal(t, want.Club, got.Club)
				assert.Equal(t, want.Format, got.Format)
				assert.Equal(t, want.Holes, got.Holes)
				assert.Equal(t, want.Players, got.Players)
				assert.True(t, want.SavedAt.Equal(got.SavedAt), "savedAt %v", got.SavedAt)
			})
	})
	t.Run("golfers", func(t *testing.T) {
		checkRepository(t, s.Golfers(), SampleGolfer,
			func(g *model.Golfer) { g.HandicapIndex = "17.9" },
			func(t *testing.T, want, got *model.Golfer) {
				assert.Equal(t, want.Name, got.Name)
				assert.Equal(t, want.Sex, got.Sex)
				assert.Equal(t, want.HandicapIndex, got.HandicapIndex)
				assert.Equal(t, want.Tee, got.Tee)
				assert.True(t, want.SavedAt.Equal(got.SavedAt), "savedAt %v", got.SavedAt)
			})
	})
}

func checkRepository[T any](
	t *testing.T,
	r storage.Repository[T],
	sample func(name string) *T,
	modify func(*T),
	check func(t *testing.T, want, got *T),
) {
	ctx := context.Background()

	_, err := r.Load(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)

	err = r.Save(ctx, sample("  "))
	require.ErrorIs(t, err, storage.ErrInvalidName)

	for _, name := range []string{"Sunday four", "Ann & Ben", "Ärger/öäü"} {
		require.NoError(t, r.Save(ctx, sample(name)))
	}
	got, err := r.Load(ctx, "Ann & Ben")
	require.NoError(t, err)
	check(t, sample("Ann & Ben"), got)

	// replace
	changed := sample("Sunday four")
	modify(changed)
	require.NoError(t, r.Save(ctx, changed))
	got, err = r.Load(ctx, "Sunday four")
	require.NoError(t, err)
	check(t, changed, got)

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	check(t, sample("Ann & Ben"), all[0])
	check(t, changed, all[1])
	check(t, sample("Ärger/öäü"), all[2])

	n, err := r.Delete(ctx, "Ann & Ben")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = r.Delete(ctx, "Ann & Ben")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	_, err = r.Load(ctx, "Ann & Ben")
	require.ErrorIs(t, err, storage.ErrNotFound)

	all, err = r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
