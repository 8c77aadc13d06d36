// Package exclusion models VPN traffic-shaping exclusion rules, reads them
// from CSV and builds the per-network payload sent to the dashboard.
package exclusion

import (
	"encoding/json"
	"fmt"
)

// Rule is a protocol/port/destination triple exempted from VPN traffic
// shaping. Rules built from CSV are trimmed and lower-cased.
type Rule struct {
	Protocol    string `json:"protocol"`
	Port        string `json:"port"`
	Destination string `json:"destination"`
}

func (r Rule) String() string {
	return fmt.Sprintf("%s %s:%s", r.Protocol, r.Destination, r.Port)
}

// Set is the exclusion state of one network. MajorApplications entries are
// passed through untouched; this tool never creates them.
type Set struct {
	Custom            []Rule            `json:"custom"`
	MajorApplications []json.RawMessage `json:"majorApplications"`
}

// BuildPayload computes the exclusions written to a network. In merge mode
// the existing custom rules follow the new ones and the existing major
// applications are kept; otherwise only the new rules are sent. Duplicates
// are not removed. The returned slices are never nil.
func BuildPayload(rules []Rule, existing *Set, overwrite bool) Set {
	payload := Set{
		Custom:            make([]Rule, 0, len(rules)),
		MajorApplications: []json.RawMessage{},
	}
	payload.Custom = append(payload.Custom, rules...)

	if overwrite || existing == nil {
		return payload
	}

	payload.Custom = append(payload.Custom, existing.Custom...)
	payload.MajorApplications = append(payload.MajorApplications, existing.MajorApplications...)
	return payload
}
