package entity

import (
	"strings"
	"time"
)

type User struct {
	ID          int64
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Role        Role
	Active      bool
	LastLoginAt *time.Time
	CreatedAt   time.Time
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type OneTimeCode struct {
	ID            int64
	UserID        int64
	Code          string
	ExpiresAt     time.Time
	VerifiedAt    *time.Time
	InvalidatedAt *time.Time
	CreatedAt     time.Time
}

// ---- //

type UserLoginInfo struct {
	ID        int64
	Username  string
	Email     string
	FirstName string
	LastName  string
	Role      Role
	Active    bool
	Password  string
}

func (u UserLoginInfo) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
