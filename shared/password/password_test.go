package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	cost = bcrypt.MinCost

	m.Run()
}

func TestHash(t *testing.T) {
	hashed, err := Hash("frontdesk123")
	require.NoError(t, err)

	assert.NotEqual(t, "frontdesk123", hashed)
	assert.NoError(t, Verify("frontdesk123", hashed))

	again, err := Hash("frontdesk123")
	require.NoError(t, err)
	assert.NotEqual(t, hashed, again)

	_, err = Hash("")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Hash(strings.Repeat("a", MaxLength+1))
	assert.ErrorIs(t, err, ErrTooLong)
}

func TestVerify(t *testing.T) {
	hashed, err := Hash("frontdesk123")
	require.NoError(t, err)

	tests := []struct {
		name    string
		plain   string
		hashed  string
		wantErr error
	}{
		{name: "match", plain: "frontdesk123", hashed: hashed},
		{name: "mismatch", plain: "frontdesk124", hashed: hashed, wantErr: ErrInvalidPassword},
		{name: "empty password", plain: "", hashed: hashed, wantErr: ErrInvalidPassword},
		{name: "empty hash", plain: "frontdesk123", hashed: "", wantErr: ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.plain, tt.hashed)
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("malformed hash", func(t *testing.T) {
		err := Verify("frontdesk123", "not-a-bcrypt-hash")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidPassword)
	})
}
