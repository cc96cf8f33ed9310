//nolint:funlen // test code
package calc

import (
	"bytes"
	"context"
	"encoding/json"
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

var fixedNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newOptions(store storage.Store) *options {
	return &options{
		format:  "fourball",
		holes:   "18",
		output:  "text",
		limits:  handicap.DefaultLimits,
		catalog: basedata.TestCatalog(),
		openStore: func(context.Context) (storage.Store, error) {
			return store, nil
		},
		now: func() time.Time { return fixedNow },
	}
}

func TestRunText(t *testing.T) {
	o := newOptions(memory.New())
	o.players = []string{"hi=10", "hi=15", "hi=20", "hi=5"}
	var out bytes.Buffer
	require.NoError(t, o.run(context.Background(), &out))
	assert.Equal(t, "Test Golf Club - Fourball (90%)\n"+
		"Course Handicaps (18 Holes): 10 / 15 / 20 / 5\n"+
		"Playing HIs (90%): 9 / 14 / 18 / 5\n"+
		"Strokes vs lowest: 4 / 9 / 13 / 0\n", out.String())
}

func TestRunJSON(t *testing.T) {
	o := newOptions(memory.New())
	o.format = "matchplay"
	o.output = "json"
	o.players = []string{"name=Ann,hi=8", "14"}
	var out bytes.Buffer
	require.NoError(t, o.run(context.Background(), &out))

	var res struct {
		Format  string           `json:"format"`
		Strokes []handicap.Entry `json:"strokes"`
		Lines   []string         `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, "matchplay", res.Format)
	assert.Equal(t, []handicap.Entry{{Label: "Ann", Value: 0}, {Label: "Player 2", Value: 6}},
		res.Strokes)
	assert.Equal(t, "Players: Ann / Player 2", res.Lines[0])
}

func TestRunSaveAndLoadBundle(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	o := newOptions(store)
	o.format = "greensomes"
	o.players = []string{"hi=10", "hi=20", "hi=5", "hi=15,tee=rated"}
	o.saveAs = "sunday"
	require.NoError(t, o.run(ctx, &bytes.Buffer{}))

	b, err := store.Bundles().Load(ctx, "sunday")
	require.NoError(t, err)
	assert.Equal(t, "greensomes", b.Format)
	assert.Equal(t, basedata.ClubID, b.Club)
	assert.Equal(t, model.Holes18, b.Holes)
	assert.Equal(t, fixedNow, b.SavedAt)
	require.Len(t, b.Players, 4)
	assert.Equal(t, basedata.TeePlain, b.Players[0].Tee, "default tee is stored")
	assert.Equal(t, basedata.TeeRated, b.Players[3].Tee)

	// reuse the players with another format
	o = newOptions(store)
	o.bundle = "sunday"
	o.format = "foursomes"
	o.formatSet = true
	var out bytes.Buffer
	require.NoError(t, o.run(ctx, &out))
	assert.Contains(t, out.String(), "Foursomes (50%) combined")

	// format from bundle
	o = newOptions(store)
	o.bundle = "sunday"
	out.Reset()
	require.NoError(t, o.run(ctx, &out))
	assert.Contains(t, out.String(), "Greensomes (60/40 split)")

	o = newOptions(store)
	o.bundle = "missing"
	assert.ErrorIs(t, o.run(ctx, &out), storage.ErrNotFound)
}

func TestRunGolfers(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Golfers().Save(ctx, &model.Golfer{
		Name: "Bob", Sex: model.SexMen, HandicapIndex: "14", Tee: basedata.TeePlain,
	}))

	o := newOptions(store)
	o.format = "matchplay"
	o.golfers = []string{"Bob"}
	o.players = []string{"name=Ann,hi=8"}
	var out bytes.Buffer
	require.NoError(t, o.run(ctx, &out))
	assert.Contains(t, out.String(), "Players: Bob / Ann\n")
	assert.Contains(t, out.String(), "Strokes vs lowest: 6 / 0\n")

	o.golfers = []string{"Nobody"}
	assert.ErrorIs(t, o.run(ctx, &out), storage.ErrNotFound)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(o *options)
		wantErr error
		msg     string
	}{
		{
			name:    "unknown format",
			modify:  func(o *options) { o.format = "scramble"; o.players = []string{"1", "2"} },
			wantErr: handicap.ErrUnknownFormat,
		},
		{
			name:    "player count",
			modify:  func(o *options) { o.players = []string{"1", "2"} },
			wantErr: handicap.ErrPlayerCount,
			msg:     "4 players required, got 2",
		},
		{
			name:    "unknown club",
			modify:  func(o *options) { o.club = "nowhere"; o.players = []string{"1", "2", "3", "4"} },
			wantErr: handicap.ErrUnknownClub,
		},
		{
			name:   "bad player spec",
			modify: func(o *options) { o.players = []string{"hcp=1"} },
			msg:    `player "hcp=1": unknown player attribute "hcp"`,
		},
		{
			name: "out of range",
			modify: func(o *options) {
				o.format = "matchplay"
				o.players = []string{"hi=10", "name=Ann,hi=60"}
			},
			wantErr: handicap.ErrHandicapOutOfRange,
			msg:     "Player 2 (Ann): handicap index 60 is outside the allowed range [-10, 54]",
		},
		{
			name:    "bad holes",
			modify:  func(o *options) { o.holes = "27"; o.players = []string{"1", "2", "3", "4"} },
			msg:     `unknown hole selection "27" (use 18, 9f or 9b)`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOptions(memory.New())
			tt.modify(o)
			var out bytes.Buffer
			err := o.run(context.Background(), &out)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.msg != "" {
				assert.Equal(t, tt.msg, err.Error())
			}
			assert.Empty(t, out.String())
		})
	}
}
