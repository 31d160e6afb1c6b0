// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// User roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Membership classifications matched against visibility rules.
// These mirror the slugs of the seeded membership plans; custom plans
// introduce additional classifications at runtime.
const (
	ClassCompetitor = "competitor"
	ClassJudge      = "judge"
	ClassRetailer   = "retailer"
)

// IsValidRole checks if a role value is valid.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleMember
}
