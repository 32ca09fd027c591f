// Package tenant holds per-guild configuration and the approval policy.
package tenant

import "time"

// Settings is the tenant configuration document stored at
// data/{tenantId}/{tenantId}.json.
type Settings struct {
	// ApprovalRoleIDs lists the roles empowered to approve or reject
	// reports. An empty list means tenant administrators only.
	ApprovalRoleIDs []string `json:"approvalRoleIds"`

	// Timezone is an optional IANA zone name used for report date parsing.
	Timezone string `json:"timezone,omitempty"`
}

// Location resolves the tenant timezone, falling back to the given default
// when unset or unparsable.
func (s *Settings) Location(fallback *time.Location) *time.Location {
	if s == nil || s.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}
