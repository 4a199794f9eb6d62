package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice stores a []string in a single text column as JSON, so
// values containing commas or quotes survive a round trip.

type StringSlice []string

// Value implements the driver.Valuer interface.
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}

	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode StringSlice, %w", err)
	}

	return string(b), nil
}

// Scan implements the sql.Scanner interface.
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("failed to scan StringSlice, %v", value)
	}

	if len(raw) == 0 {
		*s = []string{}
		return nil
	}

	return json.Unmarshal(raw, s)
}
