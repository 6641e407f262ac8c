// Package model contains domain models/data structures.
// Models carry JSON tags only; persistence details live in the repository layer.
package model

import "fmt"

// Currency is the only settlement currency the marketplace supports.
const Currency = "INR"

// Money is an amount in minor units (paise).
type Money int64

// Rupees formats the amount as a decimal rupee string, e.g. "1250.50".
func (m Money) Rupees() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Role identifies what a user may do on the platform.
type Role string

const (
	RoleTrader  Role = "TRADER"
	RolePartner Role = "LOGISTICS_PARTNER"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleTrader, RolePartner, RoleAdmin:
		return true
	}
	return false
}
