package dto

import (
	"strings"
	"time"

	"frontdesk/internal/domains/user/model"
	"frontdesk/shared"
	gDto "frontdesk/shared/dto"
	gModel "frontdesk/shared/model"
	"frontdesk/shared/role"
	"frontdesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string   `json:"email"     validate:"required,email,max=150"`
	Password string   `json:"password"  validate:"required,min=8,max=72"`
	FullName string   `json:"full_name" validate:"required,max=150"`
	Role     string   `json:"role"      validate:"required,roles"`
	Roles    []string `json:"roles"     validate:"omitempty,roles"`
	Active   *bool    `json:"active"`
}

func (r *CreateUserRequest) ToModel(user string, hashedPassword string) model.User {
	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return model.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: hashedPassword,
		FullName: strings.TrimSpace(r.FullName),
		Role:     strings.ToLower(strings.TrimSpace(r.Role)),
		Roles:    role.New(r.Roles...),
		Active:   active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateUserRequest struct {
	FullName string   `db:"full_name" json:"full_name" validate:"omitempty,max=150"`
	Role     string   `db:"role"      json:"role"      validate:"omitempty,roles"`
	Roles    role.Set `db:"roles"     json:"roles"     validate:"omitempty,roles"`
	Active   *bool    `db:"active"    json:"active"`
}

func (r UpdateUserRequest) IsEmpty() bool {
	return r.FullName == "" && r.Role == "" && r.Roles == nil && r.Active == nil
}

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	Roles     role.Set   `json:"roles"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	Active    bool       `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.FullName = model.FullName
	r.Role = model.Role
	r.Roles = model.Roles
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
