// Package navigation holds the sidebar menu and filters it by the caller's roles.
// The filter only shapes what is displayed; every route is authorized on its own.
package navigation

import (
	_ "embed"
	"errors"
	"fmt"

	"frontdesk/shared/role"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
)

//go:embed menu.toml
var menuData string

type MenuItem struct {
	Title        string   `json:"title"         toml:"title"`
	URL          string   `json:"url"           toml:"url"`
	Icon         string   `json:"icon"          toml:"icon"`
	AllowedRoles role.Set `json:"allowed_roles" toml:"allowed_roles"`
}

// VisibleTo reports whether granted may see the item. Items without roles are public.
func (m MenuItem) VisibleTo(granted role.Set) bool {
	return m.AllowedRoles.IsEmpty() || m.AllowedRoles.Intersects(granted)
}

type MenuGroup struct {
	Title string     `json:"title" toml:"title"`
	Items []MenuItem `json:"items" toml:"items"`
}

// Menu is the full, unfiltered tree. It is read-only once loaded.
type Menu []MenuGroup

type document struct {
	Groups Menu `toml:"groups"`
}

// Load decodes the embedded menu.
func Load() (Menu, error) {
	return Decode(menuData)
}

// Decode parses a menu written in the menu.toml format.
func Decode(data string) (Menu, error) {
	var doc document

	if _, err := toml.Decode(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode menu: %w", err)
	}

	for _, group := range doc.Groups {
		if group.Title == "" {
			return nil, errors.New("menu group without title")
		}
	}

	log.Info().Int("groups", len(doc.Groups)).Msg("navigation menu loaded")

	return doc.Groups, nil
}

// Filter keeps the items granted may see and drops groups left empty.
// Group and item order are preserved; groups is never modified.
func Filter(groups []MenuGroup, granted role.Set) []MenuGroup {
	out := make([]MenuGroup, 0, len(groups))

	for _, group := range groups {
		items := make([]MenuItem, 0, len(group.Items))

		for _, item := range group.Items {
			if item.VisibleTo(granted) {
				items = append(items, item)
			}
		}

		if len(items) == 0 {
			continue
		}

		out = append(out, MenuGroup{Title: group.Title, Items: items})
	}

	return out
}
