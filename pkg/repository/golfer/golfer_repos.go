//nolint:whitespace //can't make both the linter and editor happy :(
package golfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/pkg/repository"
)

var ErrNotFound = errors.New("golfer not found")

// Upsert inserts the golfer or replaces the one with the same name
func Upsert(ctx context.Context, conn repository.Querier, g *model.Golfer) error {
	_, err := conn.Exec(ctx, `
insert into golfer (name, sex, hi, tee, saved_at) values ($1,$2,$3,$4,$5)
on conflict (name) do update set
	sex=excluded.sex, hi=excluded.hi, tee=excluded.tee, saved_at=excluded.saved_at`,
		g.Name, string(g.Sex), g.HandicapIndex, g.Tee, g.SavedAt)
	return err
}

func LoadByName(
	ctx context.Context,
	conn repository.Querier,
	name string,
) (*model.Golfer, error) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where name=$1", selector), name)
	var item model.Golfer
	if err := scan(&item, row); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func LoadAll(ctx context.Context, conn repository.Querier) ([]*model.Golfer, error) {
	rows, err := conn.Query(ctx, fmt.Sprintf("%s order by name collate \"C\"", selector))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []*model.Golfer
	for rows.Next() {
		var item model.Golfer
		if err := scan(&item, rows); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, rows.Err()
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByName(ctx context.Context, conn repository.Querier, name string) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from golfer where name=$1", name)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

// little helper
const selector = string(`select name,sex,hi,tee,saved_at from golfer`)

func scan(e *model.Golfer, row pgx.Row) error {
	var sex string
	if err := row.Scan(&e.Name, &sex, &e.HandicapIndex, &e.Tee, &e.SavedAt); err != nil {
		return err
	}
	e.Sex = model.Sex(sex)
	return nil
}
