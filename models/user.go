package models

import (
	"time"
)

// Role values, ordered from least to most privileged.
const (
	RoleUser       = "USER"
	RoleReviewer   = "REVIEWER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

var roleRank = map[string]int{
	RoleUser:       0,
	RoleReviewer:   1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// rolesAtLeast is the precomputed expansion of the linear hierarchy into
// allow-lists, so route guards and handlers share one membership check.
var rolesAtLeast = func() map[string][]string {
	expanded := make(map[string][]string, len(roleRank))
	for min, minRank := range roleRank {
		for role, rank := range roleRank {
			if rank >= minRank {
				expanded[min] = append(expanded[min], role)
			}
		}
	}
	return expanded
}()

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// RolesAtLeast returns every role whose rank is at least min.
// Unknown roles expand to an empty list, which denies everything.
func RolesAtLeast(min string) []string {
	return rolesAtLeast[min]
}

// RoleAtLeast reports whether role sits at or above min in the hierarchy.
func RoleAtLeast(role, min string) bool {
	r, ok := roleRank[role]
	m, ok2 := roleRank[min]
	return ok && ok2 && r >= m
}

type User struct {
	UserID    string     `gorm:"primaryKey;column:user_id;size:36" json:"user_id"`
	Name      string     `gorm:"column:name" json:"name"`
	Email     string     `gorm:"column:email;unique" json:"email"`
	Password  string     `gorm:"column:password" json:"-"`
	Role      string     `gorm:"column:role" json:"role"`
	Active    bool       `gorm:"column:active;default:true" json:"active"`
	LastLogin *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}
