package validator_test

import (
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"frontdesk/shared/failure"
	"frontdesk/shared/role"
	"frontdesk/shared/validator"

	"github.com/stretchr/testify/assert"
)

type createGuest struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email"     validate:"required,email"`
	Guests   int    `json:"guests"    validate:"gte=1,lte=6"`
	Kind     string `json:"kind"      validate:"omitempty,oneof=walk_in online"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"full_name":"Ayu","email":"ayu@example.com","guests":2}`},
		{name: "malformed json", body: `{"full_name":`, wantErr: "failed to decode request body"},
		{name: "missing field uses json name", body: `{"email":"ayu@example.com","guests":2}`, wantErr: "full_name is required"},
		{name: "bad email", body: `{"full_name":"Ayu","email":"ayu","guests":2}`, wantErr: "email must be a valid email address"},
		{name: "range", body: `{"full_name":"Ayu","email":"ayu@example.com","guests":9}`, wantErr: "guests must be less than or equal to 6"},
		{name: "oneof", body: `{"full_name":"Ayu","email":"ayu@example.com","guests":1,"kind":"phone"}`, wantErr: "kind must be one of walk_in online"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req createGuest

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				assert.Equal(t, "Ayu", req.FullName)

				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("ayu@example.com", "email"))
	assert.Error(t, validator.ValidateVar("", "required"))
}

func TestRolesValidation(t *testing.T) {
	type request struct {
		Roles []string `validate:"omitempty,roles"`
		Role  string   `validate:"omitempty,roles"`
		Set   role.Set `validate:"omitempty,roles"`
	}

	tests := []struct {
		name    string
		data    request
		wantErr bool
	}{
		{name: "known roles", data: request{Roles: []string{"manager", "Front-Office"}}},
		{name: "known scalar", data: request{Role: "housekeeping"}},
		{name: "unknown role in list", data: request{Roles: []string{"manager", "chef"}}, wantErr: true},
		{name: "unknown scalar", data: request{Role: "superadmin"}, wantErr: true},
		{name: "known set", data: request{Set: role.New("admin", "manager")}},
		{name: "unknown role in set", data: request{Set: role.New("admin", "chef")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)
			if tt.wantErr {
				assert.ErrorContains(t, err, "must only contain known roles")

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestFileValidation(t *testing.T) {
	type upload struct {
		Image multipart.FileHeader `json:"image" validate:"mimetypes=image/png image/jpeg,maxfilesize=1"`
	}

	header := func(contentType string, size int64) multipart.FileHeader {
		return multipart.FileHeader{
			Filename: "room.png",
			Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
			Size:     size,
		}
	}

	assert.NoError(t, validator.ValidateStruct(&upload{Image: header("image/png", 512*1024)}))
	assert.ErrorContains(t, validator.ValidateStruct(&upload{Image: header("application/pdf", 1024)}), "image must be one of")
	assert.ErrorContains(t, validator.ValidateStruct(&upload{Image: header("image/jpeg", 2<<20)}), "image must be at most 1 MB")

	type inline struct {
		Image string `json:"image" validate:"mimetypes=image/png"`
	}

	assert.NoError(t, validator.ValidateStruct(&inline{Image: "data:image/png;base64,iVBORw0KGgo="}))
	assert.Error(t, validator.ValidateStruct(&inline{Image: "iVBORw0KGgo="}))
}
