package value

import (
	"fmt"
	"regexp"
)

// UserRole — роль пользователя на площадке.
type UserRole string

const (
	UserRoleBuyer  UserRole = "buyer"
	UserRoleSeller UserRole = "seller"
	UserRoleBoth   UserRole = "both"
)

func (r UserRole) String() string {
	return string(r)
}

func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case UserRoleBuyer, UserRoleSeller, UserRoleBoth:
		return UserRole(s), nil
	default:
		return "", fmt.Errorf("unknown user role %q", s)
	}
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{5,32}$`)

// Username — telegram-ник пользователя, уникален на площадке.
type Username string

func (u Username) String() string {
	return string(u)
}

func ParseUsername(s string) (Username, error) {
	if !usernamePattern.MatchString(s) {
		return "", fmt.Errorf("username must match %s", usernamePattern.String())
	}

	return Username(s), nil
}
