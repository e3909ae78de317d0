package helprequest

import (
	"cac-forms/internal/common/validation"
	"cac-forms/internal/forms"
	"cac-forms/internal/submissions"
)

var fieldSchema = validation.Schema{
	Name: "help-request",
	Fields: []validation.Field{
		{Name: "service_type", Kind: validation.KindEnum, Required: true, Options: forms.ServiceTypeValues(),
			FormatMessage: "Invalid service type"},
		{Name: "first_name", Kind: validation.KindString, Required: true, Max: 50},
		{Name: "last_name", Kind: validation.KindString, Required: true, Max: 50},
		{Name: "email", Kind: validation.KindEmail, Required: true, Max: 100, FormatMessage: "Invalid email format"},
		{Name: "phone", Kind: validation.KindPhone, Required: true, FormatMessage: "Invalid phone number"},
		{Name: "address", Kind: validation.KindString, Max: 200},
		{Name: "city", Kind: validation.KindString, Max: 100},
		{Name: "state", Kind: validation.KindString, Max: 50},
		{Name: "zip", Kind: validation.KindString, Max: 20},
		{Name: "service_details", Kind: validation.KindObject},
	},
}

// InputSchema is the JSON Schema of the request body.
func InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"service_type": submissions.StringType(),
			"first_name":   submissions.StringType(),
			"last_name":    submissions.StringType(),
			"email":        submissions.StringType(),
			"phone":        submissions.StringType(),
			"address":      submissions.StringType(),
			"city":         submissions.StringType(),
			"state":        submissions.StringType(),
			"zip":          submissions.StringType(),
			"service_details": map[string]interface{}{
				"type": []interface{}{"object", "null"},
			},
		},
	}
}
