//nolint:lll // readability
package golfer

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/handicap-calculator-go/pkg/handicap"
	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage/memory"
	"github.com/mpapenbr/handicap-calculator-go/testsupport/basedata"
)

func TestNewGolfer(t *testing.T) {
	catalog := basedata.TestCatalog()
	g, err := newGolfer(catalog, handicap.DefaultLimits, " Ann ", "ladies", "12.40", "white")
	require.NoError(t, err)
	assert.Equal(t, &model.Golfer{Name: "Ann", Sex: model.SexLadies, HandicapIndex: "12.4", Tee: "white"}, g)

	g, err = newGolfer(catalog, handicap.DefaultLimits, "Bob", "m", "+1", "")
	require.NoError(t, err)
	assert.Equal(t, model.SexMen, g.Sex)
	assert.Equal(t, "1", g.HandicapIndex)
	assert.Empty(t, g.Tee)
}

func TestNewGolferErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    [4]string
		wantErr error
	}{
		{name: "blank name", args: [4]string{" ", "men", "10", ""}, wantErr: storage.ErrInvalidName},
		{name: "missing hi", args: [4]string{"Ann", "men", "", ""}, wantErr: handicap.ErrMissingHandicap},
		{name: "bad hi", args: [4]string{"Ann", "men", "ten", ""}, wantErr: handicap.ErrInvalidHandicap},
		{name: "hi out of range", args: [4]string{"Ann", "men", "55", ""}, wantErr: handicap.ErrHandicapOutOfRange},
		{name: "unknown tee", args: [4]string{"Ann", "men", "10", "gold"}, wantErr: handicap.ErrUnknownTee},
		{name: "bad sex", args: [4]string{"Ann", "x", "10", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newGolfer(basedata.TestCatalog(), handicap.DefaultLimits,
				tt.args[0], tt.args[1], tt.args[2], tt.args[3])
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestListShowDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Golfers()
	saved := time.Date(2025, 6, 1, 9, 30, 0, 0, time.Local)
	require.NoError(t, repo.Save(ctx, &model.Golfer{Name: "Zoe", Sex: model.SexLadies, HandicapIndex: "20", SavedAt: saved}))
	require.NoError(t, repo.Save(ctx, &model.Golfer{Name: "Bob", Sex: model.SexMen, HandicapIndex: "8.2", Tee: "rated", SavedAt: saved}))

	var buf bytes.Buffer
	require.NoError(t, listGolfers(ctx, repo, &buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"NAME", "SEX", "HI", "TEE", "SAVED"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Bob", "men", "8.2", "rated", "2025-06-01", "09:30"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Zoe", "ladies", "20", "-", "2025-06-01", "09:30"}, strings.Fields(lines[2]))

	g, err := repo.Load(ctx, "Zoe")
	require.NoError(t, err)
	buf.Reset()
	showGolfer(&buf, g)
	assert.Equal(t, "Name:  Zoe\nSex:   Ladies\nHI:    20\nTee:   (club default)\nSaved: 2025-06-01 09:30\n", buf.String())

	require.NoError(t, deleteGolfers(ctx, repo, []string{"Zoe"}))
	assert.ErrorIs(t, deleteGolfers(ctx, repo, []string{"Bob", "Zoe"}), storage.ErrNotFound)
	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
