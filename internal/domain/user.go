package domain

import "time"

type User struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	Avatar    string
	CreatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
