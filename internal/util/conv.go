package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseID parses a positional or header id, rejecting empty and zero values.
func ParseID(s, field string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || id == 0 {
		return 0, NewValidation("Invalid " + field)
	}
	return uint(id), nil
}

// ParseIndex parses a non-negative module index.
func ParseIndex(s, field string) (int, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || idx < 0 {
		return 0, NewValidation("Invalid " + field)
	}
	return idx, nil
}

// FlexID decodes an id sent either as a JSON number or as a numeric string.
type FlexID uint

func (id *FlexID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	*id = FlexID(v)
	return nil
}

func (id FlexID) Uint() uint { return uint(id) }
