// Package permissions holds the route authorization table. Every protected endpoint lists the
// roles allowed to call it; an endpoint without roles is open to any authenticated caller.
package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"frontdesk/shared/role"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

type Permission struct {
	Roles  role.Set `json:"roles"`
	Path   string   `json:"path"`
	Method string   `json:"method"`
	Skip   bool     `json:"skip"`
}

// Allows reports whether granted may call the endpoint.
func (p Permission) Allows(granted role.Set) bool {
	return p.Skip || p.Roles.IsEmpty() || p.Roles.Intersects(granted)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

func normalizePath(path string) string {
	if trimmed := strings.TrimRight(path, "/"); trimmed != "" {
		return trimmed
	}

	return "/"
}

// FindPermissions looks up a chi route pattern such as /v1/rooms/{id}. A trailing slash is ignored.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	path = normalizePath(path)

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return normalizePath(rp.Path) == path && strings.EqualFold(rp.Method, method)
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Decode parses a permission table in the permissions.json format.
func Decode(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &permissions, nil
}

func Get() *PermissionData {
	permissions, err := Decode(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
