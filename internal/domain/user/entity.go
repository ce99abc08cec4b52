package user

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleEmployee Role = "Employee" // Logs work, receives salary
	RoleHR       Role = "HR"       // Verifies employees, raises pay requests
	RoleAdmin    Role = "Admin"    // Pays salaries, manages users
)

type Status string

const (
	StatusActive Status = "Active"
	StatusFired  Status = "Fired"
)

type User struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	Role           Role            `json:"role"`
	Designation    string          `json:"designation"`
	Salary         decimal.Decimal `json:"salary"`
	BankAccount    string          `json:"bank_account"`
	IsVerified     bool            `json:"isVerified"`
	Status         Status          `json:"status"`
	ProfileImage   string          `json:"profileImage"`
	CreationTime   time.Time       `json:"creationTime"`
	LastSignInTime *time.Time      `json:"lastSignInTime,omitempty"`
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"-"`
}

// IsFired reports whether an admin has revoked the user's access.
func (u *User) IsFired() bool {
	return u.Status == StatusFired
}

// CanBePaid checks the preconditions HR needs before raising a pay request.
func (u *User) CanBePaid() bool {
	return u.IsVerified && !u.IsFired()
}

func ValidRoles() []string {
	return []string{string(RoleEmployee), string(RoleHR), string(RoleAdmin)}
}

func ValidStatuses() []string {
	return []string{string(StatusActive), string(StatusFired)}
}

// NormalizeEmail returns the canonical form emails are stored and looked up
// in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
