// Package models defines the account and event listing types persisted by
// the stores.
package models

// Role partitions the account namespace into administrators (who create
// event listings) and students (who browse them). Fixed at registration.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// ParseRole validates a role string. Returns false for anything outside
// the closed enumeration.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleStudent:
		return Role(s), true
	}
	return "", false
}

// Account is a registered identity. The password is stored verbatim and
// compared verbatim on authentication; there is deliberately no hashing
// in this application. CollegeName is present only for students.
//
// Accounts are append-only: created once at registration, never updated
// or deleted.
type Account struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	Role        Role   `json:"role"`
	CollegeName string `json:"collegeName,omitempty"`
}

// Profile is the session-visible projection of an Account: every field
// except the credential. The session record stores exactly one of these.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Role        Role   `json:"role"`
	CollegeName string `json:"collegeName,omitempty"`
}

// Profile derives the credential-free projection of the account.
func (a *Account) Profile() Profile {
	return Profile{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Phone:       a.Phone,
		Role:        a.Role,
		CollegeName: a.CollegeName,
	}
}
