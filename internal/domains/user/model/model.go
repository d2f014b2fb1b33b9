package model

import (
	"time"

	"frontdesk/shared/model"
	"frontdesk/shared/role"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFullName  = "full_name"
	FieldRole      = "role"
	FieldRoles     = "roles"
	FieldLastLogin = "last_login"
	FieldActive    = "active"
)

const (
	CacheGetUser    = "user:get"
	CacheGetAllUser = "user:gets"
	CacheCountUser  = "user:count"
)

// User is a staff account. Role is the primary role, Roles holds any additional grants.
type User struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	FullName  string     `db:"full_name"`
	Role      string     `db:"role"`
	Roles     role.Set   `db:"roles"`
	LastLogin *time.Time `db:"last_login"`
	Active    bool       `db:"active"`
	model.Metadata
}

// Granted returns the primary role together with the additional roles.
func (u User) Granted() role.Set {
	return u.Roles.Union(role.New(u.Role))
}
