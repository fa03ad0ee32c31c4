package models

import "time"

// SessionUser is the mocked logged-in user stored under "pluainUser".
type SessionUser struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Age      int       `json:"age,omitempty"`
	Avatar   string    `json:"avatar"`
	Level    int       `json:"level"`
	XP       int       `json:"xp"`
	Coins    int       `json:"coins"`
	Streak   int       `json:"streak"`
	JoinDate time.Time `json:"joinDate"`
}
