// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole represents the authorization level carried by a token.
type UserRole string

const (
	// RoleOwner may mutate the library.
	RoleOwner UserRole = "owner"

	// RoleGuest is read-only. Anonymous requests are treated as guests.
	RoleGuest UserRole = "guest"
)

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleOwner:
		return 20
	case RoleGuest:
		return 10
	default:
		return 0
	}
}
