package model

import "encoding/json"

// UserRole is the account type of a RockQuest user
type UserRole string

const (
	UserRolePlayer    UserRole = "player"
	UserRoleGeologist UserRole = "geologist"
)

// User statuses as displayed
const (
	UserStatusActive    = "Active"
	UserStatusSuspended = "Suspended"
)

// User is a RockQuest account as seen by an administrator
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"username"`
	Email    string   `json:"emailAddress"`
	Role     UserRole `json:"type"`
	Active   bool     `json:"isActive"`
	JoinDate string   `json:"joinDate"`
}

// UnmarshalJSON handles the backend's two spellings of name and join date
func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID            string   `json:"id"`
		Username      string   `json:"username"`
		Name          string   `json:"name"`
		Email         string   `json:"emailAddress"`
		Role          UserRole `json:"type"`
		Active        bool     `json:"isActive"`
		JoinDate      string   `json:"joinDate"`
		JoinDateSnake string   `json:"join_date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*u = User{
		ID:       raw.ID,
		Name:     raw.Username,
		Email:    raw.Email,
		Role:     raw.Role,
		Active:   raw.Active,
		JoinDate: raw.JoinDate,
	}
	if u.Name == "" {
		u.Name = raw.Name
	}
	if u.JoinDate == "" {
		u.JoinDate = raw.JoinDateSnake
	}
	if u.JoinDate == "" {
		u.JoinDate = "N/A"
	}
	return nil
}

// Status returns "Active" or "Suspended"
func (u User) Status() string {
	if u.Active {
		return UserStatusActive
	}
	return UserStatusSuspended
}

// Initials returns the first letter of each word of the user's name
func (u User) Initials() string {
	return initials(u.Name)
}
