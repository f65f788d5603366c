// Package users declares the user profile record and its repository.
package users

import (
	"time"
)

// User is a stored user profile. Username is the Discord username of the
// member that created the record.
type User struct {
	ID        uint       `gorm:"primaryKey"`
	Username  string     `gorm:"uniqueIndex;not null"`
	Birthday  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name independently of gorm's naming strategy.
func (User) TableName() string {
	return "users"
}
