// Package role holds the canonical representation of the roles granted to a caller.
//
// Roles reach the service in several shapes: a single scalar on older tokens, a list on
// newer ones, a TEXT[] column in Postgres and either form in the menu configuration.
// Every boundary decodes into Set so consumers never inspect the raw shape.
package role

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/lib/pq"
)

type Set map[string]struct{}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// New builds a Set from role identifiers, ignoring blanks.
func New(ids ...string) Set {
	set := make(Set, len(ids))

	for _, id := range ids {
		if id = normalize(id); id != "" {
			set[id] = struct{}{}
		}
	}

	return set
}

// Parse splits a comma separated list such as "manager, front-office".
func Parse(raw string) Set {
	return New(strings.Split(raw, ",")...)
}

func (s Set) Has(id string) bool {
	_, ok := s[normalize(id)]

	return ok
}

func (s Set) Intersects(other Set) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}

	for id := range small {
		if _, ok := large[id]; ok {
			return true
		}
	}

	return false
}

func (s Set) IsEmpty() bool {
	return len(s) == 0
}

// Union returns a new Set holding the roles of both sets.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))

	for id := range s {
		out[id] = struct{}{}
	}

	for id := range other {
		out[id] = struct{}{}
	}

	return out
}

// Slice returns the roles sorted alphabetically.
func (s Set) Slice() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}

	slices.Sort(out)

	return out
}

func (s Set) String() string {
	return strings.Join(s.Slice(), ",")
}

func (s Set) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(s.Slice())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal roles: %w", err)
	}

	return data, nil
}

// UnmarshalJSON accepts null, "role" or ["role", ...].
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal roles: %w", err)
	}

	set, err := fromAny(raw)
	if err != nil {
		return err
	}

	*s = set

	return nil
}

// UnmarshalTOML accepts allowed_roles = "role" or allowed_roles = ["role", ...].
func (s *Set) UnmarshalTOML(data any) error {
	set, err := fromAny(data)
	if err != nil {
		return err
	}

	*s = set

	return nil
}

func (s Set) Value() (driver.Value, error) {
	return pq.StringArray(s.Slice()).Value() //nolint:wrapcheck
}

func (s *Set) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("failed to scan roles: %w", err)
	}

	*s = New(arr...)

	return nil
}

func fromAny(raw any) (Set, error) {
	switch val := raw.(type) {
	case nil:
		return Set{}, nil
	case string:
		return New(val), nil
	case []string:
		return New(val...), nil
	case []any:
		ids := make([]string, 0, len(val))

		for _, item := range val {
			id, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("role must be a string, got %T", item)
			}

			ids = append(ids, id)
		}

		return New(ids...), nil
	default:
		return nil, fmt.Errorf("roles must be a string or a list of strings, got %T", raw)
	}
}
