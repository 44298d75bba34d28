package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ShowID is an externally assigned show identifier. It is only compared and
// passed back to TVMaze, never interpreted.
type ShowID string

// EpisodeID is an externally assigned episode identifier.
type EpisodeID string

func (id ShowID) String() string    { return string(id) }
func (id EpisodeID) String() string { return string(id) }

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *ShowID) UnmarshalJSON(data []byte) error {
	s, err := decodeOpaqueID(data)
	if err != nil {
		return err
	}
	*id = ShowID(s)
	return nil
}

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *EpisodeID) UnmarshalJSON(data []byte) error {
	s, err := decodeOpaqueID(data)
	if err != nil {
		return err
	}
	*id = EpisodeID(s)
	return nil
}

func decodeOpaqueID(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		// leave the zero value; callers treat an empty id as missing
		return "", nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", fmt.Errorf("identifier must be a number or string, got %s", data)
	}
	return n.String(), nil
}
