package models

import "time"

// User defines a staff account used for administrative input, based on the
// 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"admin@eduinsight.app"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never serialized
	FullName  string    `json:"fullName" db:"full_name" example:"System Administrator"`
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
