package forms

import "cac-forms/internal/common/validation"

// ServiceType is one of the programs a person can ask help for.
type ServiceType string

const (
	ServiceGED    ServiceType = "ged"
	ServiceCareer ServiceType = "career"
	ServiceFood   ServiceType = "food"
)

// ServiceTypes lists the valid service types in display order.
var ServiceTypes = []ServiceType{ServiceGED, ServiceCareer, ServiceFood}

// ServiceTypeValues is ServiceTypes as plain strings, for enum rules.
func ServiceTypeValues() []string {
	out := make([]string, len(ServiceTypes))
	for i, s := range ServiceTypes {
		out[i] = string(s)
	}
	return out
}

// Valid reports whether s is a known service type.
func (s ServiceType) Valid() bool {
	_, ok := ServiceSchema(s)
	return ok
}

// ServiceSchema returns the details schema of a service type.
func ServiceSchema(s ServiceType) (validation.Schema, bool) {
	switch s {
	case ServiceGED:
		return GED, true
	case ServiceCareer:
		return Career, true
	case ServiceFood:
		return Food, true
	default:
		return validation.Schema{}, false
	}
}

// ServiceDetails builds the free-form details map sent with a help request:
// every field of the service's schema, blank when the person skipped it.
func ServiceDetails(s ServiceType, data map[string]interface{}) map[string]interface{} {
	schema, ok := ServiceSchema(s)
	if !ok {
		return map[string]interface{}{}
	}
	details := make(map[string]interface{}, len(schema.Fields))
	for _, f := range schema.Fields {
		if v, ok := data[f.Name]; ok && v != nil {
			details[f.Name] = v
			continue
		}
		details[f.Name] = ""
	}
	return details
}
