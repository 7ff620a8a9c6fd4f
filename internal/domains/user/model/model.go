package model

import (
	"hotel/shared/model"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID            = "id"
	FieldEmail         = "email"
	FieldPassword      = "password"
	FieldRole          = "role"
	FieldActive        = "active"
	FieldCancellations = "cancellations"
	FieldLastLogin     = "last_login"
)

const (
	CustomerTableName  = "customers"
	CustomerEntityName = "customer"
	StaffTableName     = "staffs"
	StaffEntityName    = "staff"

	FieldUserID = "user_id"
	FieldName   = "name"
	FieldIDCard = "id_card"
	FieldPhone  = "phone"
)

type User struct {
	ID            string     `db:"id"`
	Email         string     `db:"email"`
	Password      string     `db:"password"`
	Role          string     `db:"role"`
	Active        bool       `db:"active"`
	Cancellations int        `db:"cancellations"`
	LastLogin     *time.Time `db:"last_login"`
	model.Metadata
}

// Profile holds the personal data shared by customers and staff members.
type Profile struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	Name      string     `db:"name"`
	BirthDate *time.Time `db:"birth_date"`
	IDCard    string     `db:"id_card"`
	Email     string     `db:"email"`
	Phone     string     `db:"phone"`
	Address   string     `db:"address"`
}

type Customer struct {
	Profile
	model.Metadata
}

type Staff struct {
	Profile
	model.Metadata
}
