package enums

import "fmt"

// LeadStatus records whether a captured lead included shipping details.
type LeadStatus string

const (
	LeadStatusShippingAccepted LeadStatus = "shipping_accepted"
	LeadStatusNoShippingInfo   LeadStatus = "no_shipping_info"
)

var validLeadStatuses = []LeadStatus{
	LeadStatusShippingAccepted,
	LeadStatusNoShippingInfo,
}

// String implements fmt.Stringer.
func (l LeadStatus) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LeadStatus.
func (l LeadStatus) IsValid() bool {
	for _, candidate := range validLeadStatuses {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLeadStatus converts raw input into a LeadStatus.
func ParseLeadStatus(value string) (LeadStatus, error) {
	for _, candidate := range validLeadStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lead status %q", value)
}
