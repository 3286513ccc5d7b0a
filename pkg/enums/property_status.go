package enums

import "fmt"

// PropertyStatus tracks where a listing sits in the approval/billing lifecycle.
type PropertyStatus string

const (
	PropertyStatusPendingApproval PropertyStatus = "pending_approval"
	PropertyStatusActive          PropertyStatus = "active"
	PropertyStatusInactive        PropertyStatus = "inactive"
	PropertyStatusIncomplete      PropertyStatus = "incomplete"
)

var validPropertyStatuses = []PropertyStatus{
	PropertyStatusPendingApproval,
	PropertyStatusActive,
	PropertyStatusInactive,
	PropertyStatusIncomplete,
}

// String implements fmt.Stringer.
func (p PropertyStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PropertyStatus.
func (p PropertyStatus) IsValid() bool {
	for _, candidate := range validPropertyStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePropertyStatus converts raw input into a PropertyStatus.
func ParsePropertyStatus(value string) (PropertyStatus, error) {
	for _, candidate := range validPropertyStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid property status %q", value)
}
