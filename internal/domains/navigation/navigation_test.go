package navigation_test

import (
	"testing"

	"frontdesk/internal/domains/navigation"
	"frontdesk/shared/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(groups []navigation.MenuGroup) map[string][]string {
	out := map[string][]string{}

	for _, group := range groups {
		for _, item := range group.Items {
			out[group.Title] = append(out[group.Title], item.Title)
		}
	}

	return out
}

func TestFilter_DropsEmptyGroup(t *testing.T) {
	groups := []navigation.MenuGroup{
		{
			Title: "Ops",
			Items: []navigation.MenuItem{
				{Title: "Rooms", AllowedRoles: role.New("front-office")},
			},
		},
	}

	filtered := navigation.Filter(groups, role.New("manager"))

	assert.Empty(t, filtered)
	assert.Len(t, groups[0].Items, 1)
}

func TestFilter(t *testing.T) {
	groups := []navigation.MenuGroup{
		{
			Title: "Overview",
			Items: []navigation.MenuItem{
				{Title: "Dashboard"},
			},
		},
		{
			Title: "Front Office",
			Items: []navigation.MenuItem{
				{Title: "Bookings", AllowedRoles: role.New("front-office", "manager")},
				{Title: "Rooms", AllowedRoles: role.New("housekeeping")},
				{Title: "Customers", AllowedRoles: role.New("front-office")},
			},
		},
		{
			Title: "Administration",
			Items: []navigation.MenuItem{
				{Title: "Users", AllowedRoles: role.New("admin")},
			},
		},
	}

	tests := []struct {
		name    string
		granted role.Set
		want    map[string][]string
	}{
		{
			name:    "no roles sees public items only",
			granted: role.New(),
			want: map[string][]string{
				"Overview": {"Dashboard"},
			},
		},
		{
			name:    "nil roles behave as empty",
			granted: nil,
			want: map[string][]string{
				"Overview": {"Dashboard"},
			},
		},
		{
			name:    "front office keeps item order",
			granted: role.New("front-office"),
			want: map[string][]string{
				"Overview":     {"Dashboard"},
				"Front Office": {"Bookings", "Customers"},
			},
		},
		{
			name:    "any overlapping role grants the item",
			granted: role.New("housekeeping", "admin"),
			want: map[string][]string{
				"Overview":       {"Dashboard"},
				"Front Office":   {"Rooms"},
				"Administration": {"Users"},
			},
		},
		{
			name:    "role identifiers are normalized",
			granted: role.New(" Manager "),
			want: map[string][]string{
				"Overview":     {"Dashboard"},
				"Front Office": {"Bookings"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := navigation.Filter(groups, tt.granted)

			assert.Equal(t, tt.want, titles(filtered))
			assert.Len(t, groups[1].Items, 3)
		})
	}
}

func TestFilter_PreservesGroupOrder(t *testing.T) {
	groups := []navigation.MenuGroup{
		{Title: "B", Items: []navigation.MenuItem{{Title: "b"}}},
		{Title: "A", Items: []navigation.MenuItem{{Title: "a", AllowedRoles: role.New("admin")}}},
		{Title: "C", Items: []navigation.MenuItem{{Title: "c"}}},
	}

	filtered := navigation.Filter(groups, role.New("admin"))

	require.Len(t, filtered, 3)
	assert.Equal(t, "B", filtered[0].Title)
	assert.Equal(t, "A", filtered[1].Title)
	assert.Equal(t, "C", filtered[2].Title)
}

func TestLoad(t *testing.T) {
	menu, err := navigation.Load()
	require.NoError(t, err)
	require.NotEmpty(t, menu)

	assert.Equal(t, "Overview", menu[0].Title)
	assert.True(t, menu[0].Items[0].AllowedRoles.IsEmpty())

	managerView := titles(navigation.Filter(menu, role.New("manager")))
	assert.Contains(t, managerView["Reports"], "Analytics")
	assert.NotContains(t, managerView, "Administration")

	housekeepingView := titles(navigation.Filter(menu, role.New("housekeeping")))
	assert.Equal(t, []string{"Rooms"}, housekeepingView["Front Office"])
	assert.NotContains(t, housekeepingView, "Marketing")
}

func TestDecode(t *testing.T) {
	t.Run("scalar and list roles", func(t *testing.T) {
		menu, err := navigation.Decode(`
[[groups]]
title = "Ops"

  [[groups.items]]
  title = "Rooms"
  url = "/rooms"
  allowed_roles = "Front-Office"

  [[groups.items]]
  title = "Orders"
  url = "/orders"
  allowed_roles = ["housekeeping", "manager"]
`)
		require.NoError(t, err)
		require.Len(t, menu, 1)
		require.Len(t, menu[0].Items, 2)

		assert.Equal(t, []string{"front-office"}, menu[0].Items[0].AllowedRoles.Slice())
		assert.Equal(t, []string{"housekeeping", "manager"}, menu[0].Items[1].AllowedRoles.Slice())
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := navigation.Decode(`[[groups]`)
		assert.Error(t, err)
	})

	t.Run("invalid roles type", func(t *testing.T) {
		_, err := navigation.Decode(`
[[groups]]
title = "Ops"

  [[groups.items]]
  title = "Rooms"
  allowed_roles = 3
`)
		assert.Error(t, err)
	})

	t.Run("group without title", func(t *testing.T) {
		_, err := navigation.Decode(`
[[groups]]

  [[groups.items]]
  title = "Rooms"
`)
		assert.Error(t, err)
	})
}
