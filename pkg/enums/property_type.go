package enums

import "fmt"

// PropertyType distinguishes the two listing categories on the platform.
type PropertyType string

const (
	PropertyTypeFarmhouse PropertyType = "farmhouse"
	PropertyTypeBnB       PropertyType = "bnb"
)

var validPropertyTypes = []PropertyType{
	PropertyTypeFarmhouse,
	PropertyTypeBnB,
}

// String implements fmt.Stringer.
func (p PropertyType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PropertyType.
func (p PropertyType) IsValid() bool {
	for _, candidate := range validPropertyTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePropertyType converts raw input into a PropertyType.
func ParsePropertyType(value string) (PropertyType, error) {
	for _, candidate := range validPropertyTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid property type %q", value)
}
