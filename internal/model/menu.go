// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including MenuItem visibility rules, Page placement,
// User, MembershipPlan, Event, and AdCampaign structures.
package model

import (
	"encoding/json"
)

// Menu item icons from the fixed icon set shipped with the frontend.
const (
	IconHome     = "home"
	IconCalendar = "calendar"
	IconTrophy   = "trophy"
	IconUsers    = "users"
	IconSpeaker  = "speaker"
	IconStar     = "star"
	IconInfo     = "info"
	IconMail     = "mail"
)

// ValidIcons contains all valid menu item icon names.
var ValidIcons = []string{
	IconHome, IconCalendar, IconTrophy, IconUsers,
	IconSpeaker, IconStar, IconInfo, IconMail,
}

// IsValidIcon checks if an icon name belongs to the fixed icon set.
func IsValidIcon(icon string) bool {
	for _, i := range ValidIcons {
		if i == icon {
			return true
		}
	}
	return false
}

// VisibilityRule decides whether a menu entry is shown to a viewer.
// A rule is either public (visible to everyone, including anonymous
// visitors) or restricted to a set of membership classifications.
type VisibilityRule struct {
	Public          bool     `json:"public,omitempty"`
	MembershipTypes []string `json:"membership_types,omitempty"`
}

// PublicRule returns a rule visible to all viewers.
func PublicRule() VisibilityRule {
	return VisibilityRule{Public: true}
}

// RestrictedRule returns a rule visible only to the given classifications.
func RestrictedRule(types ...string) VisibilityRule {
	return VisibilityRule{MembershipTypes: types}
}

// Viewer is the membership classification of the current request.
// The zero value is an anonymous visitor.
type Viewer struct {
	Authenticated  bool
	Classification string
}

// Anonymous is the viewer for unauthenticated requests.
var Anonymous = Viewer{}

// Allows reports whether the rule permits the viewer to see the entry.
// Public rules always allow. Restricted rules allow only authenticated
// viewers whose classification is listed; an empty set matches nobody.
func (r VisibilityRule) Allows(v Viewer) bool {
	if r.Public {
		return true
	}
	if !v.Authenticated {
		return false
	}
	for _, t := range r.MembershipTypes {
		if t == v.Classification {
			return true
		}
	}
	return false
}

// Marshal encodes the rule as its JSON storage representation.
func (r VisibilityRule) Marshal() string {
	b, err := json.Marshal(r)
	if err != nil {
		return `{"public":true}`
	}
	return string(b)
}

// ParseVisibility decodes a stored visibility rule. Malformed JSON
// degrades to a public rule rather than failing the whole menu.
func ParseVisibility(s string) VisibilityRule {
	if s == "" {
		return PublicRule()
	}
	var r VisibilityRule
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return PublicRule()
	}
	return r
}
