package volunteer

import (
	"cac-forms/internal/common/validation"
	"cac-forms/internal/forms"
	"cac-forms/internal/submissions"
)

const (
	identityMissingMessage     = "Name and email are required"
	availabilityMissingMessage = "Please select at least one day of availability"
)

var fieldSchema = validation.Schema{
	Name: "volunteer",
	Fields: []validation.Field{
		{Name: "name", Kind: validation.KindString, Required: true, Max: 100},
		{Name: "email", Kind: validation.KindEmail, Required: true, Max: 100, FormatMessage: "Invalid email format"},
		{Name: "phone", Kind: validation.KindPhone, FormatMessage: "Invalid phone number"},
		{Name: "service_area", Kind: validation.KindEnum, Options: forms.ServiceAreas, FormatMessage: "Invalid service area"},
		{Name: "availability", Kind: validation.KindCollection, Required: true, Options: forms.Weekdays,
			Message: availabilityMissingMessage, FormatMessage: "Availability must list days of the week"},
		{Name: "experience", Kind: validation.KindString, Max: 2000},
		{Name: "message", Kind: validation.KindString, Max: 1000},
	},
}

func missingMessage(missing []string) string {
	for _, name := range missing {
		if name == "name" || name == "email" {
			return identityMissingMessage
		}
	}
	return availabilityMissingMessage
}

// InputSchema is the JSON Schema of the request body.
func InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name":         submissions.StringType(),
			"email":        submissions.StringType(),
			"phone":        submissions.StringType(),
			"service_area": submissions.StringType(),
			"availability": map[string]interface{}{
				"type":  []interface{}{"array", "null"},
				"items": map[string]interface{}{"type": "string"},
			},
			"experience": submissions.StringType(),
			"message":    submissions.StringType(),
		},
	}
}
