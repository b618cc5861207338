// Package idlist is a JSONB column holding a set of employee ids.
package idlist

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

type IDs []string

func (ids IDs) Value() (driver.Value, error) {
	if ids == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(ids))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (ids *IDs) Scan(value interface{}) error {
	if value == nil {
		*ids = IDs{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("idlist: cannot scan %T into IDs", value)
	}
	if len(data) == 0 {
		*ids = IDs{}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(ids))
}

// Normalize trims, drops blanks and collapses duplicates keeping first-seen order.
func Normalize(in []string) IDs {
	seen := make(map[string]struct{}, len(in))
	out := make(IDs, 0, len(in))
	for _, id := range in {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (ids IDs) Contains(id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Containment returns the JSON literal used with the jsonb @> operator.
func Containment(id string) string {
	b, _ := json.Marshal([]string{id})
	return string(b)
}
