// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "encoding/json"

// Billing periods for membership plans.
const (
	BillingMonthly  = "monthly"
	BillingYearly   = "yearly"
	BillingLifetime = "lifetime"
)

// IsValidBillingPeriod checks if a billing period value is valid.
func IsValidBillingPeriod(p string) bool {
	return p == BillingMonthly || p == BillingYearly || p == BillingLifetime
}

// MarshalFeatures encodes a plan's feature list for storage.
func MarshalFeatures(features []string) string {
	if len(features) == 0 {
		return "[]"
	}
	b, err := json.Marshal(features)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// ParseFeatures decodes a stored feature list. Malformed JSON yields
// an empty list.
func ParseFeatures(s string) []string {
	if s == "" {
		return nil
	}
	var features []string
	if err := json.Unmarshal([]byte(s), &features); err != nil {
		return nil
	}
	return features
}
