package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ActivityDetails is the free-form detail payload of an activity entry,
// stored as JSONB.
type ActivityDetails map[string]any

// Value implements driver.Valuer so dbr can write the payload as JSONB.
func (d ActivityDetails) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner for reading the JSONB column back.
func (d *ActivityDetails) Scan(src any) error {
	if src == nil {
		*d = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported details type %T", src)
	}
}
