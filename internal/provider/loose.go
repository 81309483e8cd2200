package provider

import (
	"bytes"
	"encoding/json"
)

// looseString accepts a JSON string, number or boolean and keeps its text.
// null, objects and arrays decode to "".
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
	case data[0] == '{' || data[0] == '[':
		*s = ""
	default:
		*s = looseString(data)
	}

	return nil
}

func (s looseString) String() string {
	return string(s)
}
