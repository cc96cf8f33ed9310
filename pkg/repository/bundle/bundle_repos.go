//nolint:whitespace //can't make both the linter and editor happy :(
package bundle

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/handicap-calculator-go/pkg/db/mytypes"
	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/pkg/repository"
)

var ErrNotFound = errors.New("bundle not found")

// Upsert inserts the bundle or replaces the one with the same name
func Upsert(ctx context.Context, conn repository.Querier, b *model.Bundle) error {
	_, err := conn.Exec(ctx, `
insert into bundle (name, club, format, holes, players, saved_at)
values ($1,$2,$3,$4,$5,$6)
on conflict (name) do update set
	club=excluded.club, format=excluded.format, holes=excluded.holes,
	players=excluded.players, saved_at=excluded.saved_at`,
		b.Name, b.Club, b.Format, string(b.Holes),
		mytypes.PlayerEntrySlice(b.Players), b.SavedAt)
	return err
}

func LoadByName(
	ctx context.Context,
	conn repository.Querier,
	name string,
) (*model.Bundle, error) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where name=$1", selector), name)
	var item model.Bundle
	if err := scan(&item, row); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func LoadAll(ctx context.Context, conn repository.Querier) ([]*model.Bundle, error) {
	rows, err := conn.Query(ctx, fmt.Sprintf("%s order by name collate \"C\"", selector))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []*model.Bundle
	for rows.Next() {
		var item model.Bundle
		if err := scan(&item, rows); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, rows.Err()
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByName(ctx context.Context, conn repository.Querier, name string) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from bundle where name=$1", name)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

// little helper
const selector = string(`select name,club,format,holes,players,saved_at from bundle`)

func scan(e *model.Bundle, row pgx.Row) error {
	var holes string
	var players mytypes.PlayerEntrySlice
	if err := row.Scan(&e.Name, &e.Club, &e.Format, &holes, &players, &e.SavedAt); err != nil {
		return err
	}
	e.Holes = model.HoleSelector(holes)
	e.Players = players
	return nil
}
