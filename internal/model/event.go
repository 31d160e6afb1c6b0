// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Competition event types. SPL events are judged on sound pressure,
// SQ events on sound quality.
const (
	EventTypeSPL       = "spl"
	EventTypeSQ        = "sq"
	EventTypeShowShine = "show_shine"
)

// Event statuses
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// ValidEventTypes contains all valid competition event types.
var ValidEventTypes = []string{EventTypeSPL, EventTypeSQ, EventTypeShowShine}

// IsValidEventType checks if an event type value is valid.
func IsValidEventType(t string) bool {
	for _, v := range ValidEventTypes {
		if v == t {
			return true
		}
	}
	return false
}

// IsValidEventStatus checks if an event status value is valid.
func IsValidEventStatus(s string) bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Registration statuses
const (
	RegistrationPendingPayment = "pending_payment"
	RegistrationConfirmed      = "confirmed"
	RegistrationCancelled      = "cancelled"
	RegistrationCheckedIn      = "checked_in"
)

// IsValidRegistrationStatus checks if a registration status value is valid.
func IsValidRegistrationStatus(s string) bool {
	switch s {
	case RegistrationPendingPayment, RegistrationConfirmed, RegistrationCancelled, RegistrationCheckedIn:
		return true
	}
	return false
}
