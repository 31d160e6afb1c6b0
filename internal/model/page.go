// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Page statuses
const (
	PageStatusDraft     = "draft"
	PageStatusPublished = "published"
)

// Navigation placements for content pages.
const (
	PlacementNone   = "none"
	PlacementTopNav = "top_nav"
	PlacementSubNav = "sub_nav"
	PlacementFooter = "footer"
)

// ValidPlacements contains all valid navigation placement values.
var ValidPlacements = []string{
	PlacementNone, PlacementTopNav, PlacementSubNav, PlacementFooter,
}

// IsValidPlacement checks if a placement value is valid.
func IsValidPlacement(p string) bool {
	for _, v := range ValidPlacements {
		if v == p {
			return true
		}
	}
	return false
}

// IsValidPageStatus checks if a page status value is valid.
func IsValidPageStatus(s string) bool {
	return s == PageStatusDraft || s == PageStatusPublished
}
