package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/permissions"
	"frontdesk/shared/constant"
	"frontdesk/shared/role"
)

func TestGet_EmbeddedTable(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)

	users := data.FindPermissions("/v1/users/{id}", http.MethodDelete)
	assert.True(t, users.Roles.Has(constant.RoleAdmin))
	assert.False(t, users.Allows(role.New(constant.RoleManager)))
}

func TestFindPermissions(t *testing.T) {
	data, err := permissions.Decode([]byte(`{
		"endpoints": [
			{"path": "/v1/rooms", "method": "GET", "roles": ["housekeeping", "front-office"]},
			{"path": "/v1/rooms/{id}/status", "method": "PATCH", "roles": "housekeeping"},
			{"path": "/v1/navigation", "method": "GET"}
		]
	}`))
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		method  string
		granted role.Set
		allowed bool
	}{
		{name: "list role grants access", path: "/v1/rooms", method: http.MethodGet, granted: role.New("front-office"), allowed: true},
		{name: "trailing slash from subrouter", path: "/v1/rooms/", method: "get", granted: role.New("housekeeping"), allowed: true},
		{name: "scalar role", path: "/v1/rooms/{id}/status", method: http.MethodPatch, granted: role.New("manager")},
		{name: "no roles required", path: "/v1/navigation", method: http.MethodGet, granted: role.New(), allowed: true},
		{name: "unknown endpoint is open to authenticated callers", path: "/v1/unknown", method: http.MethodGet, allowed: true},
		{name: "unlisted method falls back to open", path: "/v1/rooms", method: http.MethodPost, granted: role.New("manager"), allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, data.FindPermissions(tt.path, tt.method).Allows(tt.granted))
		})
	}
}
