// Package models defines the client-side data models of Tempero and their
// JSON wire shapes.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// ID is an opaque record identifier. It decodes from JSON strings and numbers
// alike, so the client works with backends keyed by integers or UUIDs.
type ID string

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("id must be a string or a number")
	}
	*id = ID(n.String())
	return nil
}

// FirstName returns the first word of a full name.
func FirstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
