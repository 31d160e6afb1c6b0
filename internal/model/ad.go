// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Ad zones where campaigns can be served.
const (
	AdZoneHeader  = "header"
	AdZoneSidebar = "sidebar"
	AdZoneFooter  = "footer"
)

// ValidAdZones contains all valid ad zone values.
var ValidAdZones = []string{AdZoneHeader, AdZoneSidebar, AdZoneFooter}

// IsValidAdZone checks if an ad zone value is valid.
func IsValidAdZone(zone string) bool {
	for _, z := range ValidAdZones {
		if z == zone {
			return true
		}
	}
	return false
}
