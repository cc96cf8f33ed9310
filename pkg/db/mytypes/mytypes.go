package mytypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
)

// PlayerEntrySlice is stored as jsonb
type PlayerEntrySlice []model.PlayerEntry

func (h *PlayerEntrySlice) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	case nil:
		*h = nil
		return nil
	default:
		return fmt.Errorf("value is not []byte")
	}
}

func (h PlayerEntrySlice) Value() (driver.Value, error) {
	return json.Marshal(h)
}
