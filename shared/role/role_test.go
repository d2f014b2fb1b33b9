package role_test

import (
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"

	"frontdesk/shared/role"
)

func TestNew_Normalizes(t *testing.T) {
	set := role.New(" Manager ", "front-office", "", "MANAGER")

	assert.Equal(t, []string{"front-office", "manager"}, set.Slice())
	assert.True(t, set.Has("manager"))
	assert.True(t, set.Has("Front-Office"))
	assert.False(t, set.Has("admin"))
}

func TestSet_Intersects(t *testing.T) {
	tests := []struct {
		name  string
		left  role.Set
		right role.Set
		want  bool
	}{
		{name: "shared role", left: role.New("manager", "admin"), right: role.New("admin"), want: true},
		{name: "disjoint", left: role.New("manager"), right: role.New("front-office"), want: false},
		{name: "empty left", left: role.New(), right: role.New("admin"), want: false},
		{name: "nil right", left: role.New("admin"), right: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.left.Intersects(tt.right))
			assert.Equal(t, tt.want, tt.right.Intersects(tt.left))
		})
	}
}

func TestParse(t *testing.T) {
	assert.Equal(t, []string{"front-office", "manager"}, role.Parse("manager, front-office,").Slice())
	assert.True(t, role.Parse("").IsEmpty())
}

func TestSet_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "scalar", input: `"Manager"`, want: []string{"manager"}},
		{name: "list", input: `["manager","front-office"]`, want: []string{"front-office", "manager"}},
		{name: "null", input: `null`, want: []string{}},
		{name: "number", input: `3`, wantErr: true},
		{name: "list with number", input: `["manager",1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var set role.Set

			err := json.Unmarshal([]byte(tt.input), &set)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, set.Slice())
		})
	}
}

func TestSet_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(role.New("manager", "admin"))

	assert.NoError(t, err)
	assert.JSONEq(t, `["admin","manager"]`, string(data))
}

func TestSet_UnmarshalTOML(t *testing.T) {
	var doc struct {
		Scalar role.Set `toml:"scalar"`
		List   role.Set `toml:"list"`
	}

	_, err := toml.Decode("scalar = \"housekeeping\"\nlist = [\"admin\", \"Manager\"]\n", &doc)

	assert.NoError(t, err)
	assert.Equal(t, []string{"housekeeping"}, doc.Scalar.Slice())
	assert.Equal(t, []string{"admin", "manager"}, doc.List.Slice())
}

func TestSet_ScanValue(t *testing.T) {
	value, err := role.New("manager", "admin").Value()
	assert.NoError(t, err)
	assert.Equal(t, `{"admin","manager"}`, value)

	var set role.Set
	assert.NoError(t, set.Scan([]byte(`{front-office,MANAGER}`)))
	assert.Equal(t, []string{"front-office", "manager"}, set.Slice())
}
