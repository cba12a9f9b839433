package model

type Role string

const (
	RoleParent Role = "parent"
	RoleChild  Role = "child"
)

type User struct {
	ID               string  `json:"id"`
	Username         string  `json:"username"`
	DisplayName      string  `json:"display_name"`
	Role             Role    `json:"role"`
	MonthlyAllowance float64 `json:"monthly_allowance"`
}

func (u User) IsParent() bool { return u.Role == RoleParent }

func (u User) IsChild() bool { return u.Role == RoleChild }

// Clone returns an independent copy.
func (u User) Clone() User {
	return u
}
