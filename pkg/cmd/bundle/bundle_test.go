package bundle

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage/memory"
)

func sampleBundle(name, format string) *model.Bundle {
	return &model.Bundle{
		Name:   name,
		Club:   "hindhead",
		Format: format,
		Holes:  model.HolesBack,
		Players: []model.PlayerEntry{
			{Name: null.From("Ann"), Sex: model.SexLadies, HandicapIndex: "12.4", Tee: "silver"},
			{Sex: model.SexMen, HandicapIndex: "8"},
		},
		SavedAt: time.Date(2025, 6, 1, 18, 5, 0, 0, time.Local),
	}
}

func TestListBundles(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Bundles()
	require.NoError(t, repo.Save(ctx, sampleBundle("sunday", "matchplay")))
	require.NoError(t, repo.Save(ctx, sampleBundle("monday", "fourball")))

	var buf bytes.Buffer
	require.NoError(t, listBundles(ctx, repo, &buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"NAME", "CLUB", "FORMAT", "HOLES", "PLAYERS", "SAVED"},
		strings.Fields(lines[0]))
	assert.Equal(t, []string{"monday", "hindhead", "fourball", "9b", "2", "2025-06-01", "18:05"},
		strings.Fields(lines[1]))
	assert.Equal(t, "sunday", strings.Fields(lines[2])[0])
}

func TestShowBundle(t *testing.T) {
	var buf bytes.Buffer
	showBundle(&buf, sampleBundle("sunday", "matchplay"))
	assert.Equal(t, `Name:   sunday
Club:   hindhead
Format: Singles Matchplay (100%)
Holes:  9 Holes (Back)
Saved:  2025-06-01 18:05
  1: name=Ann,sex=ladies,hi=12.4,tee=silver
  2: sex=men,hi=8
`, buf.String())

	buf.Reset()
	showBundle(&buf, sampleBundle("old", "skins"))
	assert.Contains(t, buf.String(), "Format: skins\n")
}
