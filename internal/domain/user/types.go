package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

var roleLevels = map[Role]int{
	RoleCustomer: 1,
	RoleAdmin:    2,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleLevels[r]
	return ok
}

// AtLeast reports whether r grants every permission of min.
func (r Role) AtLeast(min Role) bool {
	have, ok := roleLevels[r]
	if !ok {
		return false
	}
	need, ok := roleLevels[min]
	return ok && have >= need
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
